package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records rule-gating metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one rule evaluation with its duration and error status.
	RecordEvaluation(ctx context.Context, ruleID string, duration time.Duration, err error)

	// RecordCheck records a full rule-set check.
	RecordCheck(ctx context.Context, allowed bool, duration time.Duration)

	// RecordViolation records a rule violation.
	RecordViolation(ctx context.Context, ruleID, severity string)

	// RecordUnsafeExpression records an expression rejected by the safety gate.
	RecordUnsafeExpression(ctx context.Context, ruleID string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	ruleEvaluations   metric.Int64Counter
	ruleLatency       metric.Float64Histogram
	ruleErrors        metric.Int64Counter
	ruleViolations    metric.Int64Counter
	checkRuns         metric.Int64Counter
	checkLatency      metric.Float64Histogram
	unsafeExpressions metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("rulegate")

	ruleEvaluations, err := meter.Int64Counter("rulegate.rule.evaluations",
		metric.WithDescription("Number of rule evaluations"),
	)
	if err != nil {
		return nil, err
	}

	ruleLatency, err := meter.Float64Histogram("rulegate.rule.latency_ms",
		metric.WithDescription("Rule evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	ruleErrors, err := meter.Int64Counter("rulegate.rule.errors",
		metric.WithDescription("Number of rule evaluation errors"),
	)
	if err != nil {
		return nil, err
	}

	ruleViolations, err := meter.Int64Counter("rulegate.rule.violations",
		metric.WithDescription("Number of rule violations"),
	)
	if err != nil {
		return nil, err
	}

	checkRuns, err := meter.Int64Counter("rulegate.check.runs",
		metric.WithDescription("Number of rule-set checks"),
	)
	if err != nil {
		return nil, err
	}

	checkLatency, err := meter.Float64Histogram("rulegate.check.latency_ms",
		metric.WithDescription("Rule-set check latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	unsafeExpressions, err := meter.Int64Counter("rulegate.expression.unsafe",
		metric.WithDescription("Number of expressions rejected by the safety gate"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		ruleEvaluations:   ruleEvaluations,
		ruleLatency:       ruleLatency,
		ruleErrors:        ruleErrors,
		ruleViolations:    ruleViolations,
		checkRuns:         checkRuns,
		checkLatency:      checkLatency,
		unsafeExpressions: unsafeExpressions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records one rule evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, ruleID string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("rule_id", ruleID),
	}

	m.ruleEvaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ruleLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.ruleErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCheck records a rule-set check.
func (m *otelMetrics) RecordCheck(ctx context.Context, allowed bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("allowed", allowed),
	}
	m.checkRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.checkLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordViolation records a rule violation.
func (m *otelMetrics) RecordViolation(ctx context.Context, ruleID, severity string) {
	m.ruleViolations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rule_id", ruleID),
		attribute.String("severity", severity),
	))
}

// RecordUnsafeExpression records a safety-gate rejection.
func (m *otelMetrics) RecordUnsafeExpression(ctx context.Context, ruleID string) {
	m.unsafeExpressions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rule_id", ruleID),
	))
}
