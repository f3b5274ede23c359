package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oasisnourish/storefront/internal/domain/account"
	apperrors "github.com/oasisnourish/storefront/internal/errors"
	"github.com/oasisnourish/storefront/internal/ports"
)

var _ ports.Backend = (*Client)(nil)

// Paths holds the backend route prefixes. Zero fields take the defaults.
type Paths struct {
	CurrentUser   string
	Refresh       string
	SignUp        string
	SignIn        string
	SignOut       string
	Users         string
	Confirm       string
	ResetPassword string
}

// DefaultPaths returns the routes the storefront backend serves.
func DefaultPaths() Paths {
	return Paths{
		CurrentUser:   "/users/current",
		Refresh:       "/auth/refresh",
		SignUp:        "/auth/signup",
		SignIn:        "/auth/signin",
		SignOut:       "/auth/signout",
		Users:         "/users",
		Confirm:       "/confirm",
		ResetPassword: "/reset-password",
	}
}

func (p Paths) withDefaults() Paths {
	d := DefaultPaths()
	p.CurrentUser = fallbackString(p.CurrentUser, d.CurrentUser)
	p.Refresh = fallbackString(p.Refresh, d.Refresh)
	p.SignUp = fallbackString(p.SignUp, d.SignUp)
	p.SignIn = fallbackString(p.SignIn, d.SignIn)
	p.SignOut = fallbackString(p.SignOut, d.SignOut)
	p.Users = fallbackString(p.Users, d.Users)
	p.Confirm = fallbackString(p.Confirm, d.Confirm)
	p.ResetPassword = fallbackString(p.ResetPassword, d.ResetPassword)
	return p
}

type identityPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FetchIdentity calls the current-identity endpoint.
// A 200 with a payload yields the identity; any other 2xx or an empty body yields (nil, nil).
// Non-2xx responses come back as *errors.HTTPError so the caller can react to 401.
func (c *Client) FetchIdentity(ctx context.Context) (*account.Identity, error) {
	resp, err := c.Request(ctx, http.MethodGet, c.paths.CurrentUser, nil)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK || len(resp.Body) == 0 {
		return nil, nil
	}

	var p identityPayload
	if err := json.Unmarshal(resp.Body, &p); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode identity")
	}
	id, err := account.NewIdentity(p.ID, p.Name, p.Email, account.RoleFromString(p.Role, account.RoleGuest))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode identity")
	}
	return &id, nil
}

// RefreshToken asks the backend to rotate the access cookie.
func (c *Client) RefreshToken(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodPost, c.paths.Refresh, nil)
	return err
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, in account.SignUpInput) (string, error) {
	return c.message(ctx, http.MethodPost, c.paths.SignUp, in)
}

// SignIn exchanges credentials for session cookies.
func (c *Client) SignIn(ctx context.Context, in account.SignInInput) (string, error) {
	return c.message(ctx, http.MethodPost, c.paths.SignIn, in)
}

// SignOut clears the session cookies server-side.
func (c *Client) SignOut(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodDelete, c.paths.SignOut, nil)
}

// UpdateProfile patches the account's name and email.
func (c *Client) UpdateProfile(ctx context.Context, in account.UpdateProfileInput) (string, error) {
	return c.message(ctx, http.MethodPatch, c.userPath(in.ID), in)
}

// DeleteAccount removes the account.
func (c *Client) DeleteAccount(ctx context.Context, userID int64) (string, error) {
	return c.message(ctx, http.MethodDelete, c.userPath(userID), nil)
}

// SendConfirmationLink emails a new confirmation link to the account.
func (c *Client) SendConfirmationLink(ctx context.Context, userID int64) (string, error) {
	return c.message(ctx, http.MethodPost, c.paths.Confirm+"/"+strconv.FormatInt(userID, 10), nil)
}

// ConfirmAccount redeems an emailed confirmation token.
func (c *Client) ConfirmAccount(ctx context.Context, in account.ConfirmAccountInput) (string, error) {
	return c.message(ctx, http.MethodPatch, c.paths.Confirm+"/"+url.PathEscape(in.Token), nil)
}

// SendResetPasswordLink emails a password reset link.
func (c *Client) SendResetPasswordLink(ctx context.Context, in account.ForgotPasswordInput) (string, error) {
	return c.message(ctx, http.MethodPost, c.paths.ResetPassword, in)
}

// ResetPassword redeems a reset token with a new password.
func (c *Client) ResetPassword(ctx context.Context, in account.ResetPasswordInput) (string, error) {
	body := map[string]string{"password": in.Password}
	return c.message(ctx, http.MethodPatch, c.paths.ResetPassword+"/"+url.PathEscape(in.Token), body)
}

func (c *Client) userPath(id int64) string {
	return c.paths.Users + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) message(ctx context.Context, method, path string, body any) (string, error) {
	resp, err := c.Request(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	return decodeMessage(resp.Body), nil
}
