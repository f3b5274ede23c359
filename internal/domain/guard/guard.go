// Package guard decides, per screen, whether the current session may see it.
//
// Evaluate is a pure function of the session snapshot and the screen's requirement.
// It is re-run on every navigation and on every session change.
package guard

import (
	"strings"

	"github.com/oasisnourish/storefront/internal/domain/account"
)

const (
	SignInPath  = "/auth/signin"
	ProfilePath = "/account/profile"
	ConfirmPath = "/auth/confirm"
)

// Kind enumerates guard outcomes.
type Kind int

const (
	// RenderFallback shows a loading placeholder while the session is being verified.
	RenderFallback Kind = iota
	// Redirect sends the user to Decision.Target.
	Redirect
	// RenderChildren shows the screen.
	RenderChildren
	// RenderWarning tells an authenticated user they lack the required role.
	RenderWarning
	// NotFound is returned by the route table for unknown paths.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case RenderFallback:
		return "fallback"
	case Redirect:
		return "redirect"
	case RenderChildren:
		return "render"
	case RenderWarning:
		return "warning"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. Target is set only for Redirect.
type Decision struct {
	Kind   Kind
	Target string
}

func fallback() Decision { return Decision{Kind: RenderFallback} }
func redirect(to string) Decision { return Decision{Kind: Redirect, Target: to} }
func renderChildren() Decision { return Decision{Kind: RenderChildren} }
func renderWarning() Decision { return Decision{Kind: RenderWarning} }

// RoleSet is a set of roles accepted by a screen.
type RoleSet map[account.Role]struct{}

// Roles builds a RoleSet.
func Roles(roles ...account.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s RoleSet) Has(r account.Role) bool {
	_, ok := s[r]
	return ok
}

// GuestOnly is true when the set is exactly {Guest}.
func (s RoleSet) GuestOnly() bool {
	return len(s) == 1 && s.Has(account.RoleGuest)
}

// Requirement describes who may see a screen.
type Requirement struct {
	Roles          RoleSet
	SignInRequired bool
}

// Evaluate applies the guard rules in order; the first match wins.
func Evaluate(state account.SessionState, req Requirement, currentPath string) Decision {
	if state.Phase() == account.PhaseVerifying {
		return fallback()
	}

	role := state.EffectiveRole()

	if req.SignInRequired && !state.Authenticated {
		return redirect(SignInPath)
	}
	if !req.SignInRequired && state.Authenticated && req.Roles.GuestOnly() {
		return redirect(ProfilePath)
	}
	if state.Authenticated && role != account.RoleUnverifiedUser && IsUnverifiedOnly(currentPath) {
		return redirect(ProfilePath)
	}
	if req.Roles.Has(role) {
		return renderChildren()
	}
	if role == account.RoleUnverifiedUser {
		return redirect(ConfirmPath)
	}
	return renderWarning()
}

// IsUnverifiedOnly reports whether path is the pending-verification screen or one of its sub-paths.
func IsUnverifiedOnly(path string) bool {
	p := strings.TrimRight(path, "/")
	return p == ConfirmPath || strings.HasPrefix(p, ConfirmPath+"/")
}
