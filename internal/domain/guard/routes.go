package guard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/oasisnourish/storefront/internal/domain/account"
)

// Route is one navigable screen.
type Route struct {
	Name        string
	Pattern     string
	Title       string
	Requirement Requirement
}

// Navigation is the result of resolving a path and evaluating its guard.
type Navigation struct {
	Path     string
	Route    Route
	Params   map[string]string
	Decision Decision
}

var (
	public     = Requirement{Roles: Roles(account.Roles...)}
	guestOnly  = Requirement{Roles: Roles(account.RoleGuest)}
	unverified = Requirement{Roles: Roles(account.RoleUnverifiedUser), SignInRequired: true}
	verified   = Requirement{Roles: Roles(account.RoleUser, account.RoleAdmin), SignInRequired: true}
)

// DefaultRoutes lists the storefront's screens.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "home", Pattern: "/{$}", Title: "Home", Requirement: public},
		{Name: "cart", Pattern: "/cart", Title: "Cart", Requirement: public},
		{Name: "signin", Pattern: SignInPath, Title: "Sign in", Requirement: guestOnly},
		{Name: "signup", Pattern: "/auth/signup", Title: "Sign up", Requirement: guestOnly},
		{Name: "forgot_password", Pattern: "/auth/forgot-password", Title: "Forgot password", Requirement: guestOnly},
		{Name: "reset_password", Pattern: "/auth/reset-password/{token}", Title: "Reset password", Requirement: guestOnly},
		{Name: "confirm", Pattern: ConfirmPath, Title: "Confirm your account", Requirement: unverified},
		{Name: "confirm_token", Pattern: ConfirmPath + "/{token}", Title: "Confirm your account", Requirement: unverified},
		{Name: "profile", Pattern: ProfilePath, Title: "Profile", Requirement: verified},
		{Name: "delete_account", Pattern: ProfilePath + "/{id}/delete", Title: "Delete account", Requirement: verified},
	}
}

// Table matches paths against routes using http.ServeMux patterns.
type Table struct {
	mux    *http.ServeMux
	routes []Route
}

type matchKey struct{}

type match struct {
	route  *Route
	params map[string]string
}

// NewTable builds a Table. Patterns must be valid ServeMux path patterns without a method or host.
func NewTable(routes []Route) (table *Table, err error) {
	t := &Table{mux: http.NewServeMux(), routes: make([]Route, len(routes))}
	copy(t.routes, routes)

	// ServeMux panics on invalid or conflicting patterns.
	defer func() {
		if r := recover(); r != nil {
			table, err = nil, fmt.Errorf("register routes: %v", r)
		}
	}()

	for i := range t.routes {
		route := &t.routes[i]
		names := wildcards(route.Pattern)
		t.mux.HandleFunc(route.Pattern, func(_ http.ResponseWriter, r *http.Request) {
			m, ok := r.Context().Value(matchKey{}).(*match)
			if !ok {
				return
			}
			m.route = route
			for _, n := range names {
				m.params[n] = r.PathValue(n)
			}
		})
	}
	return t, nil
}

// MustNewTable is NewTable for static route lists.
func MustNewTable(routes []Route) *Table {
	t, err := NewTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the registered routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve finds the route serving p.
func (t *Table) Resolve(p string) (Route, map[string]string, bool) {
	clean := cleanPath(p)
	m := &match{params: map[string]string{}}
	ctx := context.WithValue(context.Background(), matchKey{}, m)
	req := (&http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Path: clean},
		Header: http.Header{},
		Host:   "storefront",
	}).WithContext(ctx)

	t.mux.ServeHTTP(discard{}, req)
	if m.route == nil {
		return Route{}, nil, false
	}
	return *m.route, m.params, true
}

// Navigate resolves p and evaluates its guard against state.
func (t *Table) Navigate(state account.SessionState, p string) Navigation {
	clean := cleanPath(p)
	route, params, ok := t.Resolve(clean)
	if !ok {
		return Navigation{Path: clean, Decision: Decision{Kind: NotFound}}
	}
	return Navigation{
		Path:     clean,
		Route:    route,
		Params:   params,
		Decision: Evaluate(state, route.Requirement, clean),
	}
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func wildcards(pattern string) []string {
	var names []string
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
			name = strings.TrimSuffix(name, "...")
			if name != "" && name != "$" {
				names = append(names, name)
			}
		}
	}
	return names
}

type discard struct{}

func (discard) Header() http.Header         { return http.Header{} }
func (discard) Write(b []byte) (int, error) { return len(b), nil }
func (discard) WriteHeader(int)             {}
