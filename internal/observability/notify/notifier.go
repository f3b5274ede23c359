// Package notify fans user-facing notices out to one or more sinks.
package notify

import (
	"context"
	"log/slog"

	"github.com/oasisnourish/storefront/internal/ports"
)

// NotifierFunc adapts a function to ports.Notifier (useful for tests).
type NotifierFunc func(ctx context.Context, n ports.Notice)

// Notify implements ports.Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n ports.Notice) {
	if f == nil {
		return
	}
	f(ctx, n)
}

// Multi delivers each notice to every non-nil notifier, in order.
type Multi []ports.Notifier

// Notify implements ports.Notifier.
func (m Multi) Notify(ctx context.Context, n ports.Notice) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(ctx, n)
		}
	}
}

// LogNotifier records notices in the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements ports.Notifier.
func (l LogNotifier) Notify(ctx context.Context, n ports.Notice) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Variant == ports.NoticeDestructive {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "notice", "variant", string(n.Variant), "title", n.Title)
}

var (
	_ ports.Notifier = NotifierFunc(nil)
	_ ports.Notifier = Multi(nil)
	_ ports.Notifier = LogNotifier{}
)
