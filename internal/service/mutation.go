package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/oasisnourish/storefront/internal/errors"
	obserrors "github.com/oasisnourish/storefront/internal/observability/errors"
	"github.com/oasisnourish/storefront/internal/observability/metrics"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
	"github.com/oasisnourish/storefront/internal/ports"
)

// ErrMutationPending is returned when a mutation is invoked while its previous invocation is still running.
var ErrMutationPending = errors.New("mutation already pending")

// MutationOp performs the side effect and returns the backend's message, if any.
type MutationOp[In any] func(ctx context.Context, in In) (string, error)

// MutationOptions groups dependencies for Mutation.
type MutationOptions[In any] struct {
	Name           string         // Required: used in logs and metrics
	Op             MutationOp[In] // Required
	SuccessMessage string
	FailureMessage string
	// OnSuccess runs after Op succeeds and before the success notice, typically a session re-verify.
	OnSuccess func(ctx context.Context)
	Notifier  ports.Notifier // Optional
	Logger    *slog.Logger   // Optional
	Metrics   statsd.Sink    // Optional
}

// MutationResult reports one invocation.
type MutationResult struct {
	OK      bool
	Message string
	Err     error
}

// Mutation wraps one side-effecting backend call with notification, logging and a pending guard.
// Re-invoking an instance while it is pending is rejected, not queued. Distinct instances are independent.
type Mutation[In any] struct {
	name           string
	op             MutationOp[In]
	successMessage string
	failureMessage string
	onSuccess      func(ctx context.Context)
	notifier       ports.Notifier
	logger         *slog.Logger
	metrics        statsd.Sink

	sem     *semaphore.Weighted
	pending atomic.Bool
}

// NewMutation constructs a Mutation.
func NewMutation[In any](opts MutationOptions[In]) (*Mutation[In], error) {
	if opts.Op == nil {
		return nil, errors.New("mutation op is required")
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, errors.New("mutation name is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Mutation[In]{
		name:           name,
		op:             opts.Op,
		successMessage: opts.SuccessMessage,
		failureMessage: opts.FailureMessage,
		onSuccess:      opts.OnSuccess,
		notifier:       opts.Notifier,
		logger:         logger.With("component", "mutation", "mutation", name),
		metrics:        opts.Metrics,
		sem:            semaphore.NewWeighted(1),
	}, nil
}

// Name returns the mutation's name.
func (m *Mutation[In]) Name() string { return m.name }

// Pending reports whether an invocation is in flight.
func (m *Mutation[In]) Pending() bool { return m.pending.Load() }

// Invoke runs the mutation once. It never panics and never retries.
func (m *Mutation[In]) Invoke(ctx context.Context, in In) (res MutationResult) {
	if !m.sem.TryAcquire(1) {
		m.logger.DebugContext(ctx, "mutation rejected while pending")
		metrics.EmitMutation(m.metrics, metrics.MutationMetric{Name: m.name, Result: metrics.ResultRejected})
		return MutationResult{Err: ErrMutationPending}
	}
	m.pending.Store(true)
	defer func() {
		m.pending.Store(false)
		m.sem.Release(1)
	}()

	started := time.Now()
	logger := m.logger.With("invocation_id", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			res = m.fail(ctx, logger, fmt.Errorf("mutation %s panicked: %v", m.name, r), started)
		}
	}()

	if err := validateInput(in); err != nil {
		return m.fail(ctx, logger, err, started)
	}

	msg, err := m.op(ctx, in)
	if err != nil {
		return m.fail(ctx, logger, err, started)
	}

	if m.onSuccess != nil {
		m.onSuccess(ctx)
	}

	message := strings.TrimSpace(msg)
	if message == "" {
		message = m.successMessage
	}
	m.notify(ctx, ports.NoticeSuccess, message)
	logger.InfoContext(ctx, "mutation succeeded", "duration", time.Since(started))
	metrics.EmitMutation(m.metrics, metrics.MutationMetric{
		Name:     m.name,
		Result:   metrics.ResultSuccess,
		Duration: time.Since(started),
	})

	return MutationResult{OK: true, Message: message}
}

func (m *Mutation[In]) fail(ctx context.Context, logger *slog.Logger, err error, started time.Time) MutationResult {
	message := apperrors.DisplayMessage(err, m.failureMessage)
	result := metrics.ResultError

	switch {
	case apperrors.GetCode(err) == apperrors.ErrCodeValidation && apperrors.StatusOf(err) == 0:
		result = metrics.ResultRejected
		logger.DebugContext(ctx, "mutation input rejected", "field", apperrors.GetField(err), "reason", message)
	case apperrors.IsUserActionable(err):
		logger.InfoContext(ctx, "mutation refused by backend",
			"status", apperrors.StatusOf(err),
			"title", apperrors.TitleOf(err),
		)
	default:
		logger.ErrorContext(ctx, "mutation failed",
			"status", apperrors.StatusOf(err),
			"error_type", obserrors.Classify(err),
			"error", err,
		)
	}

	m.notify(ctx, ports.NoticeDestructive, message)
	metrics.EmitMutation(m.metrics, metrics.MutationMetric{
		Name:     m.name,
		Result:   result,
		Duration: time.Since(started),
		Err:      err,
	})

	return MutationResult{Message: message, Err: err}
}

func (m *Mutation[In]) notify(ctx context.Context, variant ports.NoticeVariant, title string) {
	if m.notifier == nil || title == "" {
		return
	}
	m.notifier.Notify(ctx, ports.Notice{Variant: variant, Title: title})
}

// validateInput runs Validate on inputs that implement validation.Validatable and
// converts the first failing field into an AppError.
func validateInput(in any) error {
	v, ok := in.(validation.Validatable)
	if !ok {
		return nil
	}
	err := v.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]

	appErr := apperrors.ValidationField(first, fieldErrs[first].Error())
	appErr.Cause = err
	return appErr
}

// Pender is anything exposing an in-flight flag.
type Pender interface {
	Pending() bool
}

// AnyPending reports whether any of the given mutations is in flight.
func AnyPending(ms ...Pender) bool {
	for _, m := range ms {
		if m != nil && m.Pending() {
			return true
		}
	}
	return false
}
