// Package shell is the storefront's line-oriented view layer.
//
// It reads commands, invokes the account mutations, and renders the header and
// the current screen's guard decision. The screen is re-rendered whenever the
// session store reports a change that alters what the user would see.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/oasisnourish/storefront/internal/domain/account"
	"github.com/oasisnourish/storefront/internal/domain/guard"
	"github.com/oasisnourish/storefront/internal/service"
)

const (
	prompt       = "> "
	maxRedirects = 4
)

// Session is the slice of service.SessionStore the shell reads from.
type Session interface {
	State() account.SessionState
	Verify(ctx context.Context) account.SessionState
	Ensure(ctx context.Context) account.SessionState
	Subscribe(fn service.SessionObserver) (unsubscribe func())
}

// Options groups dependencies for Shell.
type Options struct {
	Session Session                 // Required
	Auth    *service.AuthService    // Required
	Account *service.AccountService // Required
	Routes  *guard.Table            // Optional, defaults to guard.DefaultRoutes
	Out     io.Writer               // Required
	Logger  *slog.Logger            // Optional
	// StartPath is the first screen shown; defaults to "/".
	StartPath string
}

// Shell dispatches commands and renders screens.
type Shell struct {
	session Session
	auth    *service.AuthService
	account *service.AccountService
	routes  *guard.Table
	logger  *slog.Logger

	outMu sync.Mutex
	out   io.Writer

	mu       sync.Mutex
	path     string
	rendered string
}

// New constructs a Shell.
func New(opts Options) (*Shell, error) {
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}
	if opts.Auth == nil || opts.Account == nil {
		return nil, errors.New("auth and account services are required")
	}
	if opts.Out == nil {
		return nil, errors.New("output writer is required")
	}

	routes := opts.Routes
	if routes == nil {
		routes = guard.MustNewTable(guard.DefaultRoutes())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.StartPath
	if start == "" {
		start = "/"
	}

	return &Shell{
		session: opts.Session,
		auth:    opts.Auth,
		account: opts.Account,
		routes:  routes,
		logger:  logger.With("component", "shell"),
		out:     opts.Out,
		path:    start,
	}, nil
}

// Path returns the screen currently shown.
func (s *Shell) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Run renders the start screen, verifies the session, then executes lines from in
// until quit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := s.Start(ctx)
	defer stop()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		s.writef("%s", prompt)
		select {
		case <-ctx.Done():
			s.writef("\n")
			return nil
		case line, ok := <-lines:
			if !ok {
				s.writef("\n")
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			quit, err := s.Exec(ctx, line)
			if err != nil {
				s.writef("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Start subscribes to session changes, renders the start screen and verifies the
// session. The returned func unsubscribes.
func (s *Shell) Start(ctx context.Context) (stop func()) {
	unsubscribe := s.session.Subscribe(s.onSessionChange)
	s.show()
	s.session.Verify(ctx)
	return unsubscribe
}

// Exec runs a single command line. It reports whether the shell should exit.
// Errors are usage problems; backend failures surface as notices instead.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := commands()[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	if len(fields)-1 < cmd.minArgs {
		return false, fmt.Errorf("usage: %s", cmd.usage)
	}

	s.logger.DebugContext(ctx, "command", "name", cmd.name)
	err = cmd.run(&commandContext{ctx: ctx, shell: s}, fields[1:])
	if errors.Is(err, errQuit) {
		return true, nil
	}
	return false, err
}

// Navigate moves to p, re-verifying a stale session first, and renders the result.
func (s *Shell) Navigate(ctx context.Context, p string) {
	s.mu.Lock()
	s.path = p
	s.rendered = ""
	s.mu.Unlock()

	s.session.Ensure(ctx)
	s.show()
}

// onSessionChange re-renders when the visible screen changed.
func (s *Shell) onSessionChange(account.SessionState) {
	s.show()
}

// show renders the current screen, following guard redirects.
// Output identical to the last render is suppressed.
func (s *Shell) show() {
	state := s.session.State()

	s.mu.Lock()
	nav, hops := s.resolveLocked(state)
	text := renderScreen(state, nav, hops)
	changed := text != s.rendered
	s.rendered = text
	s.mu.Unlock()

	if changed {
		s.writef("%s", text)
	}
}

// resolveLocked evaluates the current path and follows redirects, updating s.path.
func (s *Shell) resolveLocked(state account.SessionState) (guard.Navigation, []string) {
	var hops []string
	nav := s.routes.Navigate(state, s.path)
	for i := 0; nav.Decision.Kind == guard.Redirect && i < maxRedirects; i++ {
		hops = append(hops, nav.Decision.Target)
		s.path = nav.Decision.Target
		nav = s.routes.Navigate(state, s.path)
	}
	return nav, hops
}

func (s *Shell) writef(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		s.logger.Warn("write to terminal failed", "error", err)
	}
}
