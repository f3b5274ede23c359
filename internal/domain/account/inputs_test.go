package account

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	fe, ok := errs[field]
	require.True(t, ok, "expected error for field %q, got %v", field, errs)
	return fe.Error()
}

func TestSignUpInput_Validate(t *testing.T) {
	valid := SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "Secret#123"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		input SignUpInput
		field string
		msg   string
	}{
		{"short name", SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "Secret#123"}, "name", "Name must be at least 3 characters long"},
		{"bad email", SignUpInput{Name: "Jolene", Email: "nope", Password: "Secret#123"}, "email", "Invalid email address"},
		{"missing email", SignUpInput{Name: "Jolene", Password: "Secret#123"}, "email", "Email is required"},
		{"short password", SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "S#1a"}, "password", "Password must be at least 8 characters long"},
		{"long password", SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "Secret#1234567890"}, "password", "Password must be at most 16 characters long"},
		{"no upper", SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "secret#123"}, "password", "Password must contain at least one uppercase letter"},
		{"no digit", SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "Secret#abc"}, "password", "Password must contain at least one digit"},
		{"no special", SignUpInput{Name: "Jolene", Email: "jo@example.com", Password: "Secret1234"}, "password", "Password must contain at least one special character @#$%^&+=!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.msg, fieldError(t, err, tt.field))
		})
	}
}

func TestSignInInput_Validate(t *testing.T) {
	require.NoError(t, SignInInput{Email: "jo@example.com", Password: "x"}.Validate())

	err := SignInInput{Email: "jo@example.com"}.Validate()
	assert.Equal(t, "Password is required", fieldError(t, err, "password"))
}

func TestUpdateProfileInput_Validate(t *testing.T) {
	require.NoError(t, UpdateProfileInput{ID: 4, Name: "Jolene", Email: "jo@example.com"}.Validate())

	err := UpdateProfileInput{ID: 0, Name: "Jolene", Email: "jo@example.com"}.Validate()
	require.Error(t, err)
	fieldError(t, err, "id")
}

func TestTokenInputs_Validate(t *testing.T) {
	err := ConfirmAccountInput{}.Validate()
	assert.Equal(t, "Confirmation token is required", fieldError(t, err, "token"))

	err = ResetPasswordInput{Password: "Secret#123"}.Validate()
	assert.Equal(t, "Reset token is required", fieldError(t, err, "token"))

	require.NoError(t, ResetPasswordInput{Token: "abc", Password: "Secret#123"}.Validate())
	require.NoError(t, ForgotPasswordInput{Email: "jo@example.com"}.Validate())
}
