// Package observability provides production-grade observability features
// for rule gating: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds gating context to a logger.
// Returns a new logger with check_id and rule_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "check-123", "max-spread")
//	enriched.Info("doing work") // includes check_id, rule_id
func EnrichLogger(logger *slog.Logger, checkID, ruleID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("check_id", checkID),
		slog.String("rule_id", ruleID),
	)
}

// LogCheckStart logs the start of a rule-set check.
func LogCheckStart(logger *slog.Logger, checkID string, ruleCount int) {
	if logger == nil {
		return
	}
	logger.Info("rule check starting",
		slog.String("check_id", checkID),
		slog.Int("rules", ruleCount),
	)
}

// LogCheckComplete logs rule-set check completion.
func LogCheckComplete(logger *slog.Logger, checkID string, durationMs float64, allowed bool, violations int) {
	if logger == nil {
		return
	}
	logger.Info("rule check completed",
		slog.String("check_id", checkID),
		slog.Float64("duration_ms", durationMs),
		slog.Bool("allowed", allowed),
		slog.Int("violations", violations),
	)
}

// LogCheckError logs rule-set check failure.
func LogCheckError(logger *slog.Logger, checkID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("rule check failed",
		slog.String("check_id", checkID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRuleStart logs rule evaluation start.
func LogRuleStart(logger *slog.Logger, ruleID string) {
	if logger == nil {
		return
	}
	logger.Debug("rule starting",
		slog.String("rule_id", ruleID),
	)
}

// LogRuleComplete logs rule evaluation completion.
func LogRuleComplete(logger *slog.Logger, ruleID string, durationMs float64, allowed bool) {
	if logger == nil {
		return
	}
	logger.Debug("rule evaluated",
		slog.String("rule_id", ruleID),
		slog.Float64("duration_ms", durationMs),
		slog.Bool("allowed", allowed),
	)
}

// LogRuleViolation logs a rule violation.
func LogRuleViolation(logger *slog.Logger, ruleID, severity, message string) {
	if logger == nil {
		return
	}
	logger.Warn("rule violated",
		slog.String("rule_id", ruleID),
		slog.String("severity", severity),
		slog.String("message", message),
	)
}

// LogRuleError logs a rule evaluation error.
func LogRuleError(logger *slog.Logger, ruleID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("rule evaluation failed",
		slog.String("rule_id", ruleID),
		slog.String("error", err.Error()),
	)
}

// LogAuditError logs an audit write failure (non-fatal).
func LogAuditError(logger *slog.Logger, ruleID string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("audit write failed",
		slog.String("rule_id", ruleID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
