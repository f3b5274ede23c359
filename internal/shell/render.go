package shell

import (
	"fmt"
	"strings"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/domain/guard"
)

const brand = "Oasis Nourish"

// renderHeader shows the brand, the cart placeholder and either the account
// menu or a sign-in link.
func renderHeader(state account.SessionState) string {
	var b strings.Builder
	b.WriteString("== ")
	b.WriteString(brand)
	b.WriteString(" == Cart (0) | ")

	switch {
	case state.Authenticated && state.Identity != nil:
		fmt.Fprintf(&b, "My Account: %s [Profile, Orders, Wishlist, Reviews, Sign out]", state.Identity.Name)
	case state.Phase() == account.PhaseVerifying:
		b.WriteString("My Account ...")
	default:
		fmt.Fprintf(&b, "Sign in (%s)", guard.SignInPath)
	}
	b.WriteString("\n")
	return b.String()
}

// renderScreen renders the header and the body for the guard's decision.
// hops lists redirects that were followed to reach nav.
func renderScreen(state account.SessionState, nav guard.Navigation, hops []string) string {
	var b strings.Builder
	b.WriteString(renderHeader(state))
	for _, h := range hops {
		fmt.Fprintf(&b, "-> redirected to %s\n", h)
	}

	switch nav.Decision.Kind {
	case guard.RenderFallback:
		fmt.Fprintf(&b, "[%s] Loading...\n", nav.Path)
	case guard.RenderChildren:
		fmt.Fprintf(&b, "[%s] %s\n", nav.Path, nav.Route.Title)
		b.WriteString(screenBody(state, nav))
	case guard.RenderWarning:
		fmt.Fprintf(&b, "[%s] You do not have permission to view this page.\n", nav.Path)
	case guard.NotFound:
		fmt.Fprintf(&b, "[%s] 404: page not found\n", nav.Path)
	case guard.Redirect:
		fmt.Fprintf(&b, "[%s] Too many redirects (last: %s)\n", nav.Path, nav.Decision.Target)
	}
	return b.String()
}

// screenBody adds per-screen details and hints.
func screenBody(state account.SessionState, nav guard.Navigation) string {
	switch nav.Route.Name {
	case "profile":
		if id := state.Identity; id != nil {
			return fmt.Sprintf("  name:  %s\n  email: %s\n  role:  %s\n", id.Name, id.Email, id.Role)
		}
	case "confirm":
		return "  Your account has not yet been confirmed. Check your email for a confirmation link,\n" +
			"  or run send-confirmation to get a new one.\n"
	case "confirm_token":
		return fmt.Sprintf("  Run: confirm %s\n", nav.Params["token"])
	case "reset_password":
		return fmt.Sprintf("  Run: reset %s <new password>\n", nav.Params["token"])
	case "delete_account":
		return "  Run: delete\n"
	case "cart":
		return "  Your cart is empty.\n"
	}
	return ""
}

// describeSession is the one-line answer to whoami.
func describeSession(state account.SessionState) string {
	switch state.Phase() {
	case account.PhaseVerifying:
		return "checking session..."
	case account.PhaseUnverified:
		return "session not checked yet"
	case account.PhaseAuthenticated:
		id := state.Identity
		return fmt.Sprintf("%s <%s> (id %d, %s)", id.Name, id.Email, id.ID, id.Role)
	default:
		return "not signed in"
	}
}
