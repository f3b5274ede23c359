package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
	"github.com/oasisnourish/storefront/internal/ports"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	API      ports.AccountAPI // Required
	Session  SessionVerifier  // Required
	Notifier ports.Notifier   // Optional
	Logger   *slog.Logger     // Optional
	Metrics  statsd.Sink      // Optional
}

// AccountService holds the account management mutations.
//
// UpdateProfile, DeleteAccount and ConfirmAccount change the identity the backend
// reports, so they re-verify the session on success. The link senders and
// ResetPassword leave the session alone.
type AccountService struct {
	UpdateProfile         *Mutation[account.UpdateProfileInput]
	DeleteAccount         *Mutation[int64]
	ConfirmAccount        *Mutation[account.ConfirmAccountInput]
	SendConfirmationLink  *Mutation[int64]
	SendResetPasswordLink *Mutation[account.ForgotPasswordInput]
	ResetPassword         *Mutation[account.ResetPasswordInput]
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) (*AccountService, error) {
	if opts.API == nil {
		return nil, errors.New("AccountAPI is required")
	}
	if opts.Session == nil {
		return nil, errors.New("SessionVerifier is required")
	}

	reverify := func(ctx context.Context) { opts.Session.Verify(ctx) }
	svc := &AccountService{}
	var err error

	if svc.UpdateProfile, err = NewMutation(MutationOptions[account.UpdateProfileInput]{
		Name:           "update_profile",
		Op:             opts.API.UpdateProfile,
		SuccessMessage: "Account has been updated successfully.",
		FailureMessage: "Failed to update account.",
		OnSuccess:      reverify,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	if svc.DeleteAccount, err = NewMutation(MutationOptions[int64]{
		Name:           "delete_account",
		Op:             opts.API.DeleteAccount,
		SuccessMessage: "Account has been deleted successfully.",
		FailureMessage: "Failed to delete account.",
		OnSuccess:      reverify,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	if svc.ConfirmAccount, err = NewMutation(MutationOptions[account.ConfirmAccountInput]{
		Name:           "confirm_account",
		Op:             opts.API.ConfirmAccount,
		SuccessMessage: "Your account has been verified.",
		FailureMessage: "Failed to verify account.",
		OnSuccess:      reverify,
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	if svc.SendConfirmationLink, err = NewMutation(MutationOptions[int64]{
		Name:           "send_confirmation_link",
		Op:             opts.API.SendConfirmationLink,
		SuccessMessage: "The confirmation link has been sent to your email.",
		FailureMessage: "Failed to send confirmation link.",
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	if svc.SendResetPasswordLink, err = NewMutation(MutationOptions[account.ForgotPasswordInput]{
		Name:           "send_reset_password_link",
		Op:             opts.API.SendResetPasswordLink,
		SuccessMessage: "The password reset link has been sent to your email.",
		FailureMessage: "Failed to send password reset link.",
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	if svc.ResetPassword, err = NewMutation(MutationOptions[account.ResetPasswordInput]{
		Name:           "reset_password",
		Op:             opts.API.ResetPassword,
		SuccessMessage: "Your password has been reset.",
		FailureMessage: "Failed to reset password.",
		Notifier:       opts.Notifier,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	}); err != nil {
		return nil, err
	}

	return svc, nil
}

// Pending reports whether any account mutation is in flight.
func (s *AccountService) Pending() bool {
	return AnyPending(
		s.UpdateProfile,
		s.DeleteAccount,
		s.ConfirmAccount,
		s.SendConfirmationLink,
		s.SendResetPasswordLink,
		s.ResetPassword,
	)
}
