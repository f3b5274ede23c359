package backend

// Package backend contains hand-written test doubles for the backend and notifier ports.
// FakeBackend keeps one signed-in identity in memory so multi-step flows
// (sign in, update, delete) can be exercised without an HTTP server.

import (
	"context"
	"net/http"
	"sync"

	"github.com/oasisnourish/storefront/internal/domain/account"
	apperrors "github.com/oasisnourish/storefront/internal/errors"
	"github.com/oasisnourish/storefront/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Backend  = (*FakeBackend)(nil)
	_ ports.Notifier = (*RecordingNotifier)(nil)
)

// FakeBackend simulates the storefront REST backend.
// Any *Func field overrides the default behaviour of the matching method.
type FakeBackend struct {
	FetchIdentityFunc func(ctx context.Context) (*account.Identity, error)
	RefreshTokenFunc  func(ctx context.Context) error
	SignInFunc        func(ctx context.Context, in account.SignInInput) (string, error)
	SignUpFunc        func(ctx context.Context, in account.SignUpInput) (string, error)
	DeleteAccountFunc func(ctx context.Context, userID int64) (string, error)

	// Accounts maps email to identity for the default SignIn behaviour.
	Accounts map[string]account.Identity
	// AccessExpired makes the next FetchIdentity return 401 until RefreshToken succeeds.
	AccessExpired bool
	// RefreshFails makes RefreshToken return 401.
	RefreshFails bool

	mu      sync.Mutex
	current *account.Identity
	calls   []string
}

// NewFakeBackend returns a backend with no signed-in identity.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{Accounts: make(map[string]account.Identity)}
}

// SetCurrent replaces the identity the backend reports for the ambient cookie.
func (f *FakeBackend) SetCurrent(id *account.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == nil {
		f.current = nil
		return
	}
	cp := *id
	f.current = &cp
}

// Calls returns the method names invoked so far, in order.
func (f *FakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times method was invoked.
func (f *FakeBackend) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeBackend) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
}

func (f *FakeBackend) FetchIdentity(ctx context.Context) (*account.Identity, error) {
	f.record("FetchIdentity")
	if f.FetchIdentityFunc != nil {
		return f.FetchIdentityFunc(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AccessExpired {
		return nil, Status(http.StatusUnauthorized, "Unauthorized")
	}
	if f.current == nil {
		return nil, nil
	}
	cp := *f.current
	return &cp, nil
}

func (f *FakeBackend) RefreshToken(ctx context.Context) error {
	f.record("RefreshToken")
	if f.RefreshTokenFunc != nil {
		return f.RefreshTokenFunc(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RefreshFails {
		return Status(http.StatusUnauthorized, "Refresh token expired")
	}
	f.AccessExpired = false
	return nil
}

func (f *FakeBackend) SignUp(ctx context.Context, in account.SignUpInput) (string, error) {
	f.record("SignUp")
	if f.SignUpFunc != nil {
		return f.SignUpFunc(ctx, in)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Accounts[in.Email]; exists {
		return "", Status(http.StatusConflict, "Email already exists")
	}
	id := account.Identity{ID: int64(len(f.Accounts) + 1), Name: in.Name, Email: in.Email, Role: account.RoleUnverifiedUser}
	f.Accounts[in.Email] = id
	f.current = &id
	return "", nil
}

func (f *FakeBackend) SignIn(ctx context.Context, in account.SignInInput) (string, error) {
	f.record("SignIn")
	if f.SignInFunc != nil {
		return f.SignInFunc(ctx, in)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.Accounts[in.Email]
	if !ok {
		return "", Status(http.StatusUnauthorized, "Invalid credentials")
	}
	f.current = &id
	f.AccessExpired = false
	return "", nil
}

func (f *FakeBackend) SignOut(_ context.Context) (string, error) {
	f.record("SignOut")
	f.SetCurrent(nil)
	return "", nil
}

func (f *FakeBackend) UpdateProfile(_ context.Context, in account.UpdateProfileInput) (string, error) {
	f.record("UpdateProfile")

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil || f.current.ID != in.ID {
		return "", Status(http.StatusForbidden, "Access denied")
	}
	delete(f.Accounts, f.current.Email)
	f.current.Name = in.Name
	f.current.Email = in.Email
	f.Accounts[in.Email] = *f.current
	return "", nil
}

func (f *FakeBackend) DeleteAccount(ctx context.Context, userID int64) (string, error) {
	f.record("DeleteAccount")
	if f.DeleteAccountFunc != nil {
		return f.DeleteAccountFunc(ctx, userID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil || f.current.ID != userID {
		return "", Status(http.StatusNotFound, "User not found")
	}
	delete(f.Accounts, f.current.Email)
	f.current = nil
	return "", nil
}

func (f *FakeBackend) SendConfirmationLink(_ context.Context, _ int64) (string, error) {
	f.record("SendConfirmationLink")
	return "", nil
}

func (f *FakeBackend) ConfirmAccount(_ context.Context, in account.ConfirmAccountInput) (string, error) {
	f.record("ConfirmAccount")

	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Token == "expired" {
		return "", Status(http.StatusBadRequest, "Confirmation token has expired")
	}
	if f.current != nil {
		f.current.Role = account.RoleUser
		f.Accounts[f.current.Email] = *f.current
	}
	return "", nil
}

func (f *FakeBackend) SendResetPasswordLink(_ context.Context, _ account.ForgotPasswordInput) (string, error) {
	f.record("SendResetPasswordLink")
	return "", nil
}

func (f *FakeBackend) ResetPassword(_ context.Context, _ account.ResetPasswordInput) (string, error) {
	f.record("ResetPassword")
	return "", nil
}

// Status builds the error the HTTP adapter returns for a non-2xx response.
func Status(status int, title string) error {
	return &apperrors.HTTPError{Method: http.MethodGet, Path: "/fake", Status: status, Title: title}
}

// RecordingNotifier captures notices for assertions.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (n *RecordingNotifier) Notify(_ context.Context, notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Notices returns everything notified so far.
func (n *RecordingNotifier) Notices() []ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notice(nil), n.notices...)
}

// Last returns the most recent notice, or the zero Notice.
func (n *RecordingNotifier) Last() ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return ports.Notice{}
	}
	return n.notices[len(n.notices)-1]
}
