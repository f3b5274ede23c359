package account

// Package account contains domain-level types for the storefront account and session.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
)

// Role represents a customer's authorization role.
// The string form matches the backend's wire representation.
type Role string

const (
	RoleGuest          Role = "GUEST"
	RoleUnverifiedUser Role = "UNVERIFIED_USER"
	RoleUser           Role = "USER"
	RoleAdmin          Role = "ADMIN"
)

// Roles lists every known role in ascending privilege order.
var Roles = []Role{RoleGuest, RoleUnverifiedUser, RoleUser, RoleAdmin}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleUnverifiedUser, RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// RoleFromString returns the role whose wire name exactly matches raw.
// Unknown or empty values map to fallback so a malformed payload never escalates privilege.
func RoleFromString(raw string, fallback Role) Role {
	r := Role(raw)
	if r.IsValid() {
		return r
	}
	return fallback
}

// ErrInvalidIdentity is returned when an identity payload cannot describe a real account.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the authenticated principal as reported by the backend.
// Values are replaced wholesale on every successful fetch, never mutated.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// NewIdentity validates and constructs an Identity.
func NewIdentity(id int64, name, email string, role Role) (Identity, error) {
	if id < 1 {
		return Identity{}, fmt.Errorf("%w: id must be >= 1, got %d", ErrInvalidIdentity, id)
	}
	if !role.IsValid() {
		role = RoleGuest
	}
	return Identity{ID: id, Name: name, Email: email, Role: role}, nil
}

// IsVerified is true for accounts that have confirmed their email.
func (i Identity) IsVerified() bool {
	return i.Role == RoleUser || i.Role == RoleAdmin
}

// Phase names where the session lifecycle currently sits.
type Phase string

const (
	PhaseUnverified      Phase = "unverified"
	PhaseVerifying       Phase = "verifying"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseUnauthenticated Phase = "unauthenticated"
)

// SessionState is an immutable snapshot of the client's belief about the current session.
// Authenticated is true iff Identity is non-nil.
type SessionState struct {
	Identity      *Identity
	Authenticated bool
	Loading       bool
	// Settled is true once at least one verification has completed.
	Settled bool
}

// InitialSessionState is the state at process start: nothing known, check assumed pending.
func InitialSessionState() SessionState {
	return SessionState{Loading: true}
}

// Phase derives the lifecycle phase from the snapshot.
func (s SessionState) Phase() Phase {
	switch {
	case s.Loading:
		// Before the first settle the store optimistically reports a pending check.
		return PhaseVerifying
	case !s.Settled:
		return PhaseUnverified
	case s.Authenticated:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}

// EffectiveRole is the identity's role when authenticated, Guest otherwise.
func (s SessionState) EffectiveRole() Role {
	if s.Authenticated && s.Identity != nil {
		return s.Identity.Role
	}
	return RoleGuest
}

// Clone returns a copy of s that shares no memory with it.
func (s SessionState) Clone() SessionState {
	if s.Identity != nil {
		cp := *s.Identity
		s.Identity = &cp
	}
	return s
}

// WithIdentity returns a copy of s holding id (or no identity when id is nil).
// Identity and Authenticated always change together.
func (s SessionState) WithIdentity(id *Identity) SessionState {
	if id == nil {
		s.Identity = nil
		s.Authenticated = false
		return s
	}
	cp := *id
	s.Identity = &cp
	s.Authenticated = true
	return s
}
