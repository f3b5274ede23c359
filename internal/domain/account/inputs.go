package account

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[@#$%^&+=!]`)
)

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Email is required"),
		is.Email.Error("Invalid email address"),
	}
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Name must be at least 3 characters long"),
		validation.RuneLength(3, 0).Error("Name must be at least 3 characters long"),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Password must be at least 8 characters long"),
		validation.RuneLength(8, 0).Error("Password must be at least 8 characters long"),
		validation.RuneLength(0, 16).Error("Password must be at most 16 characters long"),
		validation.Match(upperRe).Error("Password must contain at least one uppercase letter"),
		validation.Match(digitRe).Error("Password must contain at least one digit"),
		validation.Match(specialRe).Error("Password must contain at least one special character @#$%^&+=!"),
	}
}

// SignUpInput is the payload for POST /auth/signup.
type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (in SignUpInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Name, nameRules()...),
		validation.Field(&in.Password, passwordRules()...),
	)
}

// SignInInput is the payload for POST /auth/signin.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (in SignInInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Password, validation.Required.Error("Password is required")),
	)
}

// UpdateProfileInput is the payload for PATCH /users/{id}.
type UpdateProfileInput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate will validate the payload
func (in UpdateProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.Name, nameRules()...),
		validation.Field(&in.Email, emailRules()...),
	)
}

// ForgotPasswordInput is the payload for POST /reset-password.
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// Validate will validate the payload
func (in ForgotPasswordInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules()...),
	)
}

// ResetPasswordInput carries the emailed token and the new password for PATCH /reset-password/{token}.
type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (in ResetPasswordInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Token, validation.Required.Error("Reset token is required")),
		validation.Field(&in.Password, passwordRules()...),
	)
}

// ConfirmAccountInput carries the emailed confirmation token for PATCH /confirm/{token}.
type ConfirmAccountInput struct {
	Token string `json:"token"`
}

// Validate will validate the payload
func (in ConfirmAccountInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Token, validation.Required.Error("Confirmation token is required")),
	)
}
