package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
	"github.com/oasisnourish/storefront/internal/ports"
)

// SessionVerifier re-runs session verification after a mutation changes who is signed in.
type SessionVerifier interface {
	Verify(ctx context.Context) account.SessionState
}

// CredentialClearer forgets the client's session cookies.
type CredentialClearer interface {
	Clear(ctx context.Context) error
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API         ports.AccountAPI  // Required
	Session     SessionVerifier   // Required
	Credentials CredentialClearer // Optional; cleared after a successful sign-out
	Notifier    ports.Notifier    // Optional
	Logger      *slog.Logger      // Optional
	Metrics     statsd.Sink       // Optional
}

// AuthService holds the sign-in, sign-up and sign-out mutations.
// Every one of them re-verifies the session on success; sign-out clears local cookies first.
type AuthService struct {
	SignIn  *Mutation[account.SignInInput]
	SignUp  *Mutation[account.SignUpInput]
	SignOut *Mutation[struct{}]
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.API == nil {
		return nil, errors.New("AccountAPI is required")
	}
	if opts.Session == nil {
		return nil, errors.New("SessionVerifier is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reverify := func(ctx context.Context) { opts.Session.Verify(ctx) }
	// The backend expires its cookies on sign-out; clearing locally covers a
	// response that arrived without the expiry headers.
	forget := func(ctx context.Context) {
		if opts.Credentials != nil {
			if err := opts.Credentials.Clear(ctx); err != nil {
				logger.WarnContext(ctx, "failed to clear session cookies", "error", err)
			}
		}
		reverify(ctx)
	}

	signIn, err := NewMutation(MutationOptions[account.SignInInput]{
		Name:           "sign_in",
		Op:             opts.API.SignIn,
		SuccessMessage: "Successfully signed in.",
		FailureMessage: "Failed to sign in.",
		OnSuccess:      reverify,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	signUp, err := NewMutation(MutationOptions[account.SignUpInput]{
		Name:           "sign_up",
		Op:             opts.API.SignUp,
		SuccessMessage: "Successfully signed up.",
		FailureMessage: "Failed to sign up. Please try again.",
		OnSuccess:      reverify,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	signOut, err := NewMutation(MutationOptions[struct{}]{
		Name:           "sign_out",
		Op:             func(ctx context.Context, _ struct{}) (string, error) { return opts.API.SignOut(ctx) },
		SuccessMessage: "Successfully signed out.",
		FailureMessage: "Failed to sign out.",
		OnSuccess:      forget,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return &AuthService{SignIn: signIn, SignUp: signUp, SignOut: signOut}, nil
}

// Pending reports whether any auth mutation is in flight.
func (s *AuthService) Pending() bool {
	return AnyPending(s.SignIn, s.SignUp, s.SignOut)
}

