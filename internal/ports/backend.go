package ports

// Package ports defines interfaces (hexagonal ports) for the storefront client's collaborators.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"net/http"

	"github.com/oasisnourish/storefront/internal/domain/account"
)

// AuthAPI is the slice of the backend the session store depends on.
type AuthAPI interface {
	// FetchIdentity returns the current identity, (nil, nil) when the backend reports none,
	// or an error. HTTP-level failures are *errors.HTTPError so callers can see the status.
	FetchIdentity(ctx context.Context) (*account.Identity, error)

	// RefreshToken exchanges the refresh cookie for a new access cookie.
	RefreshToken(ctx context.Context) error
}

// AccountAPI covers the side-effecting backend endpoints. Each returns the backend's
// human-readable message, or "" when the response carried none.
type AccountAPI interface {
	SignUp(ctx context.Context, in account.SignUpInput) (string, error)
	SignIn(ctx context.Context, in account.SignInInput) (string, error)
	SignOut(ctx context.Context) (string, error)
	UpdateProfile(ctx context.Context, in account.UpdateProfileInput) (string, error)
	DeleteAccount(ctx context.Context, userID int64) (string, error)
	SendConfirmationLink(ctx context.Context, userID int64) (string, error)
	ConfirmAccount(ctx context.Context, in account.ConfirmAccountInput) (string, error)
	SendResetPasswordLink(ctx context.Context, in account.ForgotPasswordInput) (string, error)
	ResetPassword(ctx context.Context, in account.ResetPasswordInput) (string, error)
}

// Backend is the full REST surface consumed by the client.
type Backend interface {
	AuthAPI
	AccountAPI
}

// CookieStore persists the backend's cookies between process runs.
// Keys identify a cookie scope (typically the backend host).
type CookieStore interface {
	Load(ctx context.Context, key string) ([]*http.Cookie, error)
	Save(ctx context.Context, key string, cookies []*http.Cookie) error
	Delete(ctx context.Context, key string) error
}

// NoticeVariant distinguishes success and failure notices.
type NoticeVariant string

const (
	NoticeSuccess     NoticeVariant = "success"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a transient user-facing message (a toast).
type Notice struct {
	Variant NoticeVariant
	Title   string
}

// Notifier renders notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}
