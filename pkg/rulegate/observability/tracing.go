package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the rulegate tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("rulegate")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCheckSpan starts a span for an entire rule-set check.
	// Returns the context with span and the span itself.
	StartCheckSpan(ctx context.Context, checkID string, ruleCount int) (context.Context, trace.Span)

	// StartRuleSpan starts a span for one rule evaluation.
	// The rule span should be a child of the check span.
	StartRuleSpan(ctx context.Context, ruleID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCheckSpan starts a span for an entire rule-set check.
func (m *otelSpanManager) StartCheckSpan(ctx context.Context, checkID string, ruleCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rulegate.check",
		trace.WithAttributes(
			attribute.String("check.id", checkID),
			attribute.Int("check.rules", ruleCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSpan starts a span for one rule evaluation.
func (m *otelSpanManager) StartRuleSpan(ctx context.Context, ruleID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rulegate.rule."+ruleID,
		trace.WithAttributes(
			attribute.String("rule.id", ruleID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartCheckSpan starts a span for an entire rule-set check.
// Uses the global OTel tracer.
func StartCheckSpan(ctx context.Context, checkID string, ruleCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rulegate.check",
		trace.WithAttributes(
			attribute.String("check.id", checkID),
			attribute.Int("check.rules", ruleCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSpan starts a span for one rule evaluation.
// Uses the global OTel tracer.
func StartRuleSpan(ctx context.Context, ruleID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rulegate.rule."+ruleID,
		trace.WithAttributes(
			attribute.String("rule.id", ruleID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
