package metrics

import (
	"time"

	obserrors "github.com/oasisnourish/storefront/internal/observability/errors"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// VerifyMetric captures one settled session verification.
type VerifyMetric struct {
	// Outcome is the verification branch taken (authenticated, absent, refresh_failed, ...).
	Outcome  string
	Refresh  bool
	Stale    bool
	Duration time.Duration
	Err      error
}

// EmitSessionVerify emits standardised session verification metrics.
func EmitSessionVerify(sink statsd.Sink, in VerifyMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"outcome": in.Outcome,
		"refresh": boolTag(in.Refresh),
		"stale":   boolTag(in.Stale),
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("session.verify", 1, tags)

	if in.Duration > 0 {
		sink.Timing("session.verify.duration", in.Duration, CloneTags(tags))
	}
}

// MutationMetric captures one mutation invocation.
type MutationMetric struct {
	Name     string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitMutation emits standardised mutation metrics.
func EmitMutation(sink statsd.Sink, in MutationMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"mutation": in.Name,
		"result":   in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("mutation.invoke", 1, tags)

	if in.Duration > 0 {
		sink.Timing("mutation.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
