package rules

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/google/uuid"
	"github.com/randalmurphal/rulegate/pkg/rulegate"
	"github.com/randalmurphal/rulegate/pkg/rulegate/audit"
	"github.com/randalmurphal/rulegate/pkg/rulegate/message"
	"github.com/randalmurphal/rulegate/pkg/rulegate/observability"
)

// Check evaluates every enabled rule against the snapshot, in declaration
// order, and reports the outcome.
//
// Rule evaluation failures do not stop the check: the failed rule blocks
// (fail closed) and its Decision carries the error. Check itself returns an
// error only when the context is cancelled; the partial report is still
// returned.
//
// Example:
//
//	report, err := set.Check(ctx, map[string]any{
//	    "spread_pips": 4.5,
//	    "quote":       map[string]any{"age_ms": 120},
//	})
//	if err != nil {
//	    // cancelled mid-check
//	}
//	if !report.Allowed {
//	    // inspect report.Blocked()
//	}
func (s *Set) Check(ctx context.Context, snapshot map[string]any) (Report, error) {
	checkID := uuid.NewString()
	start := time.Now()

	observability.LogCheckStart(s.logger, checkID, len(s.rules))

	// Start check span if tracing enabled
	execCtx := ctx
	var checkSpan trace.Span
	if s.tracingEnabled {
		execCtx, checkSpan = s.spans.StartCheckSpan(ctx, checkID, len(s.rules))
	}

	report := Report{CheckID: checkID}

	var checkErr error
	for _, rule := range s.rules {
		if rule.Disabled {
			continue
		}

		// Check for cancellation before evaluating the rule
		select {
		case <-ctx.Done():
			checkErr = ctx.Err()
		default:
		}
		if checkErr != nil {
			break
		}

		d := s.checkRule(execCtx, checkID, rule, snapshot)
		report.Decisions = append(report.Decisions, d)
		if s.onDecision != nil {
			s.onDecision(d)
		}
	}

	report.Allowed = checkErr == nil && len(report.Blocked()) == 0
	report.Elapsed = time.Since(start)
	durationMs := float64(report.Elapsed.Milliseconds())

	s.metrics.RecordCheck(ctx, report.Allowed, report.Elapsed)

	if s.tracingEnabled {
		s.spans.EndSpanWithError(checkSpan, checkErr)
	}

	if checkErr != nil {
		observability.LogCheckError(s.logger, checkID, checkErr, durationMs)
		return report, checkErr
	}
	observability.LogCheckComplete(s.logger, checkID, durationMs, report.Allowed, len(report.Violations()))
	return report, nil
}

// checkRule evaluates one rule with full observability and returns its
// decision.
func (s *Set) checkRule(ctx context.Context, checkID string, rule Rule, snapshot map[string]any) Decision {
	observability.LogRuleStart(s.logger, rule.ID)

	// Start rule span if tracing enabled
	ruleCtx := ctx
	var ruleSpan trace.Span
	if s.tracingEnabled {
		ruleCtx, ruleSpan = s.spans.StartRuleSpan(ctx, rule.ID)
	}

	merged := rule.Params.mergeUnder(snapshot)

	start := time.Now()
	allowed, err := s.eval.Evaluate(rule.Constraint, merged)
	elapsed := time.Since(start)
	elapsedMs := float64(elapsed.Milliseconds())

	s.metrics.RecordEvaluation(ruleCtx, rule.ID, elapsed, err)

	d := Decision{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		CheckID:  checkID,
		Allowed:  err == nil && allowed,
		Severity: rule.Severity,
		Err:      err,
		Elapsed:  elapsed,
	}

	switch {
	case err != nil:
		var evalErr *rulegate.Error
		if errors.As(err, &evalErr) && evalErr.Kind == rulegate.UnsafeExpression {
			s.metrics.RecordUnsafeExpression(ruleCtx, rule.ID)
		}
		observability.LogRuleError(s.logger, rule.ID, err)
	case !allowed:
		if rule.Message != "" {
			d.Message = message.Render(rule.Message, merged)
		}
		observability.LogRuleViolation(s.logger, rule.ID, string(rule.Severity), d.Message)
		s.metrics.RecordViolation(ruleCtx, rule.ID, string(rule.Severity))
		if s.tracingEnabled {
			s.spans.AddSpanEvent(ruleCtx, "rule_violated",
				attribute.String("rule.id", rule.ID),
				attribute.String("severity", string(rule.Severity)),
			)
		}
	default:
		observability.LogRuleComplete(s.logger, rule.ID, elapsedMs, true)
	}

	if s.tracingEnabled {
		s.spans.EndSpanWithError(ruleSpan, err)
	}

	if s.auditStore != nil {
		s.writeAudit(rule, d, merged)
	}

	return d
}

// writeAudit records one decision to the audit store.
// Audit failures are logged, never fatal.
func (s *Set) writeAudit(rule Rule, d Decision, merged map[string]any) {
	rec := audit.New(d.CheckID, d.RuleID, rule.Constraint, d.Allowed)
	if !d.Allowed {
		rec = rec.WithSeverity(string(d.Severity))
	}
	if d.Message != "" {
		rec = rec.WithMessage(d.Message)
	}
	if d.Err != nil {
		rec = rec.WithErrKind(errKind(d.Err))
	}
	if s.auditSnapshots {
		data, err := json.Marshal(merged)
		if err != nil {
			observability.LogAuditError(s.logger, d.RuleID, "serialize", err)
		} else {
			rec = rec.WithSnapshot(data)
		}
	}

	if err := s.auditStore.Save(rec); err != nil {
		observability.LogAuditError(s.logger, d.RuleID, "save", err)
	}
}

// errKind names the failure classification for audit records.
func errKind(err error) string {
	var evalErr *rulegate.Error
	if errors.As(err, &evalErr) {
		return evalErr.Kind.String()
	}
	return "unknown error"
}
