package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_RecordEvaluation(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "rule", 10*time.Millisecond, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "rule", 10*time.Millisecond, errors.New("test"))
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(nil, "rule", 0, nil)
		})
	})

	t.Run("does not panic with empty rule ID", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "", 0, nil)
		})
	})
}

func TestNoopMetrics_RecordCheck(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with allowed=true", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCheck(context.Background(), true, 50*time.Millisecond)
		})
	})

	t.Run("does not panic with allowed=false", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCheck(context.Background(), false, 10*time.Millisecond)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCheck(nil, true, 0)
		})
	})
}

func TestNoopMetrics_RecordViolation(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordViolation(context.Background(), "rule", "block")
		})
	})

	t.Run("does not panic with empty severity", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordViolation(context.Background(), "rule", "")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordViolation(nil, "rule", "warn")
		})
	})
}

func TestNoopMetrics_RecordUnsafeExpression(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordUnsafeExpression(context.Background(), "rule")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordUnsafeExpression(nil, "rule")
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_StartCheckSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartCheckSpan(ctx, "check-1", 3)

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartCheckSpan(ctx, "check-1", 3)

		// Noop spans are not recording
		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartCheckSpan(context.Background(), "", 0)
		})
	})
}

func TestNoopSpanManager_StartRuleSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartRuleSpan(ctx, "max-spread")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartRuleSpan(ctx, "max-spread")

		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty rule ID", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartRuleSpan(context.Background(), "")
		})
	})
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with nil error", func(t *testing.T) {
		_, span := sm.StartCheckSpan(context.Background(), "c", 1)
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartCheckSpan(context.Background(), "c", 1)
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event", attribute.String("key", "value"))
		})
	})

	t.Run("does not panic with no attributes", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(nil, "test_event")
		})
	})

	t.Run("does not panic with empty event name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "")
		})
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// This test verifies that noop implementations can be used
	// in a realistic scenario without any side effects

	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()

	// Simulate a rule-set check
	ctx, checkSpan := spans.StartCheckSpan(ctx, "check-123", 3)

	// Simulate rule evaluations
	for i, ruleID := range []string{"max-spread", "stale-quote", "position-cap"} {
		ctx, ruleSpan := spans.StartRuleSpan(ctx, ruleID)

		start := time.Now()
		// Simulate work
		time.Sleep(1 * time.Millisecond)
		duration := time.Since(start)

		var err error
		if i == 1 {
			err = errors.New("simulated error")
		}

		metrics.RecordEvaluation(ctx, ruleID, duration, err)

		if i == 2 {
			metrics.RecordViolation(ctx, ruleID, "block")
			spans.AddSpanEvent(ctx, "rule_violated", attribute.String("rule_id", ruleID))
		}

		spans.EndSpanWithError(ruleSpan, err)
	}

	metrics.RecordCheck(ctx, false, 100*time.Millisecond)
	spans.EndSpanWithError(checkSpan, nil)

	// If we get here without panicking, the test passes
}
