package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/oasisnourish/storefront/internal/domain/account"
	apperrors "github.com/oasisnourish/storefront/internal/errors"
	obserrors "github.com/oasisnourish/storefront/internal/observability/errors"
	"github.com/oasisnourish/storefront/internal/observability/metrics"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
	"github.com/oasisnourish/storefront/internal/ports"
)

// Verification outcomes, used for logging and the session.verify metric.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeAbsent        = "absent"
	OutcomeFetchFailed   = "fetch_failed"
	OutcomeRefreshFailed = "refresh_failed"
	OutcomeRetryFailed   = "retry_failed"
	OutcomeAborted       = "aborted"
)

// DefaultStaleAfter is how long a settled verification is trusted by Ensure.
const DefaultStaleAfter = 5 * time.Minute

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	API     ports.AuthAPI // Required
	Logger  *slog.Logger  // Optional
	Metrics statsd.Sink   // Optional

	// StaleAfter bounds how old a settled verification may be before Ensure re-verifies.
	StaleAfter time.Duration
	// TransportRetries re-issues FetchIdentity when no response was received. HTTP statuses are never retried.
	TransportRetries int
	// RetryBackoff is multiplied by the attempt number between transport retries.
	RetryBackoff time.Duration

	Now func() time.Time
}

// SessionObserver receives a snapshot after every state change.
type SessionObserver func(account.SessionState)

// SessionStore is the single source of truth for who is signed in.
//
// Verify implements the refresh-and-retry protocol: fetch the identity, and on a 401
// refresh the access cookie exactly once and fetch again. Overlapping verifications are
// allowed; each takes a generation number and a result older than the last applied one
// is dropped. Loading stays true while any verification is in flight.
type SessionStore struct {
	api        ports.AuthAPI
	logger     *slog.Logger
	metrics    statsd.Sink
	staleAfter time.Duration
	retries    int
	backoff    time.Duration
	now        func() time.Time

	mu         sync.Mutex
	state      account.SessionState
	inflight   int
	nextGen    uint64
	appliedGen uint64
	settledAt  time.Time
	observers  []observerEntry
	nextObsID  int
}

type observerEntry struct {
	id int
	fn SessionObserver
}

// verification is the outcome of one pass through the protocol.
type verification struct {
	identity  *account.Identity
	outcome   string
	refreshed bool
	err       error
}

// NewSessionStore constructs a SessionStore in the initial Unverified state.
func NewSessionStore(opts SessionStoreOptions) (*SessionStore, error) {
	if opts.API == nil {
		return nil, errors.New("AuthAPI is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	staleAfter := opts.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	retries := max(opts.TransportRetries, 0)

	return &SessionStore{
		api:        opts.API,
		logger:     logger.With("component", "session_store"),
		metrics:    opts.Metrics,
		staleAfter: staleAfter,
		retries:    retries,
		backoff:    opts.RetryBackoff,
		now:        now,
		state:      account.InitialSessionState(),
	}, nil
}

// State returns the current snapshot.
func (s *SessionStore) State() account.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to be called after every state change.
// Observers run outside the store lock, in registration order.
func (s *SessionStore) Subscribe(fn SessionObserver) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Ensure verifies only when the session has never settled or the last settled
// verification is older than StaleAfter. It returns the resulting snapshot.
func (s *SessionStore) Ensure(ctx context.Context) account.SessionState {
	s.mu.Lock()
	fresh := s.state.Settled && s.inflight == 0 && s.now().Sub(s.settledAt) < s.staleAfter
	state := s.state.Clone()
	s.mu.Unlock()

	if fresh {
		return state
	}
	return s.Verify(ctx)
}

// Verify runs the refresh-and-retry protocol and returns the snapshot after it settles.
// It never returns an error: every failure resolves to the Unauthenticated state.
func (s *SessionStore) Verify(ctx context.Context) (state account.SessionState) {
	started := s.now()
	gen, stale := s.begin()

	res := verification{outcome: OutcomeAborted}
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "session verification panicked", "generation", gen, "panic", r)
			res = verification{outcome: OutcomeAborted}
		}
		state = s.settle(ctx, gen, res, stale, started)
	}()

	res = s.resolve(ctx)
	if cancelled(ctx, res.err) {
		// A cancelled caller leaves the previous identity in place.
		res = verification{outcome: OutcomeAborted, refreshed: res.refreshed, err: ctx.Err()}
	}
	return state
}

// cancelled reports whether err came from ctx ending rather than from the backend.
// A status the backend actually returned is still applied.
func cancelled(ctx context.Context, err error) bool {
	ctxErr := ctx.Err()
	if ctxErr == nil || err == nil {
		return false
	}
	return errors.Is(err, ctxErr) || apperrors.IsTransport(err)
}

func (s *SessionStore) begin() (uint64, bool) {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.inflight++
	stale := s.state.Settled && s.now().Sub(s.settledAt) >= s.staleAfter
	s.state.Loading = true
	snapshot, observers := s.state.Clone(), s.observerFuncs()
	s.mu.Unlock()

	notify(observers, snapshot)
	return gen, stale
}

func (s *SessionStore) resolve(ctx context.Context) verification {
	id, err := s.fetch(ctx)
	if err == nil {
		return identityOutcome(id, false)
	}
	if !apperrors.IsUnauthorized(err) {
		s.logger.WarnContext(ctx, "identity fetch failed; treating as signed out",
			"status", apperrors.StatusOf(err),
			"error_type", obserrors.Classify(err),
			"error", err,
		)
		return verification{outcome: OutcomeFetchFailed, err: err}
	}

	if refreshErr := s.api.RefreshToken(ctx); refreshErr != nil {
		s.logger.InfoContext(ctx, "access token refresh failed",
			"status", apperrors.StatusOf(refreshErr),
			"error_type", obserrors.Classify(refreshErr),
		)
		return verification{outcome: OutcomeRefreshFailed, err: refreshErr}
	}

	id, err = s.fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "identity fetch after refresh failed",
			"status", apperrors.StatusOf(err),
			"error_type", obserrors.Classify(err),
			"error", err,
		)
		return verification{outcome: OutcomeRetryFailed, refreshed: true, err: err}
	}
	return identityOutcome(id, true)
}

// fetch calls FetchIdentity, re-issuing it on transport failures only.
func (s *SessionStore) fetch(ctx context.Context) (*account.Identity, error) {
	var (
		id  *account.Identity
		err error
	)
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			s.logger.DebugContext(ctx, "retrying identity fetch", "attempt", attempt, "error", err)
			if waitErr := sleepCtx(ctx, time.Duration(attempt)*s.backoff); waitErr != nil {
				return nil, err
			}
		}
		id, err = s.api.FetchIdentity(ctx)
		if err == nil || !apperrors.IsTransport(err) {
			return id, err
		}
	}
	return id, err
}

func identityOutcome(id *account.Identity, refreshed bool) verification {
	if id == nil {
		return verification{outcome: OutcomeAbsent, refreshed: refreshed}
	}
	return verification{identity: id, outcome: OutcomeAuthenticated, refreshed: refreshed}
}

func (s *SessionStore) settle(ctx context.Context, gen uint64, res verification, stale bool, started time.Time) account.SessionState {
	s.mu.Lock()
	s.inflight--
	applied := gen >= s.appliedGen && res.outcome != OutcomeAborted
	if applied {
		s.appliedGen = gen
		s.state = s.state.WithIdentity(res.identity)
		s.state.Settled = true
		s.settledAt = s.now()
	}
	s.state.Loading = s.inflight > 0
	snapshot, observers := s.state.Clone(), s.observerFuncs()
	s.mu.Unlock()

	if !applied && res.outcome != OutcomeAborted {
		s.logger.DebugContext(ctx, "discarding stale verification result",
			"generation", gen,
			"outcome", res.outcome,
		)
	}
	metrics.EmitSessionVerify(s.metrics, metrics.VerifyMetric{
		Outcome:  res.outcome,
		Refresh:  res.refreshed,
		Stale:    stale,
		Duration: s.now().Sub(started),
		Err:      res.err,
	})

	notify(observers, snapshot)
	return snapshot
}

// observerFuncs must be called with s.mu held.
func (s *SessionStore) observerFuncs() []SessionObserver {
	if len(s.observers) == 0 {
		return nil
	}
	out := make([]SessionObserver, len(s.observers))
	for i, o := range s.observers {
		out[i] = o.fn
	}
	return out
}

func notify(observers []SessionObserver, state account.SessionState) {
	for _, fn := range observers {
		fn(state)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
