package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/oasisnourish/storefront/internal/errors"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
)

func TestEmitSessionVerify(t *testing.T) {
	rec := &statsd.Recorder{}

	EmitSessionVerify(rec, VerifyMetric{
		Outcome:  "refresh_failed",
		Refresh:  false,
		Stale:    true,
		Duration: 40 * time.Millisecond,
		Err:      &apperrors.HTTPError{Status: http.StatusUnauthorized},
	})

	counts := rec.Samples("session.verify")
	require.Len(t, counts, 1)
	assert.Equal(t, map[string]string{
		"outcome":     "refresh_failed",
		"refresh":     "false",
		"stale":       "true",
		"error_class": "unauthorized",
	}, counts[0].Tags)

	timings := rec.Samples("session.verify.duration")
	require.Len(t, timings, 1)
	assert.InDelta(t, 40.0, timings[0].Value, 0.001)
}

func TestEmitMutation(t *testing.T) {
	rec := &statsd.Recorder{}

	EmitMutation(rec, MutationMetric{Name: "sign_in", Result: ResultRejected, Err: apperrors.Validation("bad")})

	counts := rec.Samples("mutation.invoke")
	require.Len(t, counts, 1)
	assert.Equal(t, map[string]string{"mutation": "sign_in", "result": "rejected"}, counts[0].Tags)
	assert.Empty(t, rec.Samples("mutation.duration"), "zero duration skips the timer")
}

func TestEmit_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitSessionVerify(nil, VerifyMetric{Outcome: "absent"})
		EmitMutation(nil, MutationMetric{Name: "x", Result: ResultSuccess})
	})
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))

	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
