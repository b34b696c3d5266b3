package rules

import (
	"log/slog"

	"github.com/randalmurphal/rulegate/pkg/rulegate"
	"github.com/randalmurphal/rulegate/pkg/rulegate/audit"
	"github.com/randalmurphal/rulegate/pkg/rulegate/observability"
)

// SetOption configures a Set.
type SetOption func(*Set)

// WithEvaluator sets the expression evaluator used for vetting and checks.
//
// Default: an evaluator with default limits.
func WithEvaluator(eval *rulegate.Evaluator) SetOption {
	return func(s *Set) {
		if eval != nil {
			s.eval = eval
		}
	}
}

// WithLogger sets the structured logger for check and rule events.
//
// Default: slog.Default()
func WithLogger(logger *slog.Logger) SetOption {
	return func(s *Set) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder for check and rule events.
//
// Default: the process-wide OTel recorder.
func WithMetrics(m observability.MetricsRecorder) SetOption {
	return func(s *Set) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSpans enables per-check and per-rule tracing through the given manager.
//
// Default: tracing disabled.
func WithSpans(sm observability.SpanManager) SetOption {
	return func(s *Set) {
		if sm != nil {
			s.spans = sm
			s.tracingEnabled = true
		}
	}
}

// WithAuditStore records every decision to the store as it is made.
// Audit failures are logged, never fatal.
//
// Default: no audit trail.
func WithAuditStore(store audit.Store) SetOption {
	return func(s *Set) {
		s.auditStore = store
	}
}

// WithAuditSnapshots attaches the JSON-serialized evaluation context to
// audit records. Only meaningful together with WithAuditStore.
//
// Default: false (records carry the decision, not the data)
func WithAuditSnapshots(enabled bool) SetOption {
	return func(s *Set) {
		s.auditSnapshots = enabled
	}
}

// WithOnDecision registers a callback invoked for every decision as it is
// made. The callback runs on the Check goroutine; keep it fast.
func WithOnDecision(fn func(Decision)) SetOption {
	return func(s *Set) {
		s.onDecision = fn
	}
}
