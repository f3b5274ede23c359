// Package testutil provides testing utilities and helpers for the storefront client.
package testutil

import (
	"github.com/oasisnourish/storefront/internal/domain/account"
)

// IdentityBuilder provides a fluent interface for building identities in tests.
type IdentityBuilder struct {
	id account.Identity
}

// NewIdentity creates an IdentityBuilder for a verified user.
func NewIdentity() *IdentityBuilder {
	return &IdentityBuilder{
		id: account.Identity{
			ID:    1,
			Name:  "Test User",
			Email: "test.user@example.com",
			Role:  account.RoleUser,
		},
	}
}

// WithID sets the identity ID.
func (b *IdentityBuilder) WithID(id int64) *IdentityBuilder {
	b.id.ID = id
	return b
}

// WithName sets the display name.
func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.id.Name = name
	return b
}

// WithEmail sets the email address.
func (b *IdentityBuilder) WithEmail(email string) *IdentityBuilder {
	b.id.Email = email
	return b
}

// WithRole sets the role.
func (b *IdentityBuilder) WithRole(role account.Role) *IdentityBuilder {
	b.id.Role = role
	return b
}

// Unverified marks the identity as awaiting email confirmation.
func (b *IdentityBuilder) Unverified() *IdentityBuilder {
	return b.WithRole(account.RoleUnverifiedUser)
}

// Admin marks the identity as an administrator.
func (b *IdentityBuilder) Admin() *IdentityBuilder {
	return b.WithRole(account.RoleAdmin)
}

// Build returns the identity value.
func (b *IdentityBuilder) Build() account.Identity {
	return b.id
}

// Ptr returns a pointer to a copy of the identity.
func (b *IdentityBuilder) Ptr() *account.Identity {
	id := b.id
	return &id
}

// Session returns a settled session snapshot holding the identity.
func (b *IdentityBuilder) Session() account.SessionState {
	return account.SessionState{Settled: true}.WithIdentity(b.Ptr())
}

// GuestSession returns a settled snapshot with nobody signed in.
func GuestSession() account.SessionState {
	return account.SessionState{Settled: true}
}
