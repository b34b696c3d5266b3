package rules

import (
	"time"
)

// Decision is the outcome of one rule against one snapshot.
type Decision struct {
	// RuleID identifies the rule.
	RuleID string
	// RuleName is the rule's human-readable title, if any.
	RuleName string
	// CheckID ties the decision to its Check run.
	CheckID string
	// Allowed is the rule's verdict. False means the constraint did not
	// hold or could not be evaluated.
	Allowed bool
	// Severity is the rule's declared severity.
	Severity Severity
	// Message is the rendered violation annotation, when the rule declares
	// one and the constraint did not hold.
	Message string
	// Err is the evaluation failure, if any.
	Err error
	// Elapsed is the constraint evaluation time.
	Elapsed time.Duration
}

// Blocking reports whether this decision denies the check. Warn-severity
// violations don't block; evaluation failures always do, whatever the
// declared severity.
func (d Decision) Blocking() bool {
	if d.Allowed {
		return false
	}
	return d.Err != nil || d.Severity != SeverityWarn
}

// Report is the outcome of one Check run.
type Report struct {
	// CheckID identifies the run; audit records carry it.
	CheckID string
	// Decisions holds one entry per enabled rule, in declaration order.
	Decisions []Decision
	// Allowed is true when no decision blocks.
	Allowed bool
	// Elapsed is the total check time.
	Elapsed time.Duration
}

// Violations returns the decisions that did not allow, in declaration order.
func (r Report) Violations() []Decision {
	var out []Decision
	for _, d := range r.Decisions {
		if !d.Allowed {
			out = append(out, d)
		}
	}
	return out
}

// Blocked returns the decisions that deny the check, in declaration order.
func (r Report) Blocked() []Decision {
	var out []Decision
	for _, d := range r.Decisions {
		if d.Blocking() {
			out = append(out, d)
		}
	}
	return out
}
