package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors for rule set construction and loading.
var (
	// ErrEmptyRuleID indicates a rule without an ID.
	ErrEmptyRuleID = errors.New("rule id cannot be empty")

	// ErrDuplicateRuleID indicates two rules in a set share an ID.
	ErrDuplicateRuleID = errors.New("duplicate rule id")

	// ErrInvalidSeverity indicates a severity other than block or warn.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrUnsupportedVersion indicates a rule document with an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported rule document version")
)

// RuleError wraps an error with rule context.
// It identifies which rule failed and what operation was attempted.
type RuleError struct {
	// RuleID is the identifier of the rule that failed.
	RuleID string
	// Op is the operation that failed (e.g., "vet").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %s: %v", e.RuleID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RuleError) Unwrap() error {
	return e.Err
}
