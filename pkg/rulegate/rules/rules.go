// Package rules gates actions behind sets of constraint expressions.
//
// A Set holds rules whose constraints are evaluated against a caller-built
// snapshot; Check reports which rules held, which were violated, and
// whether the action is allowed.
package rules

// Severity classifies what a violated rule does to the overall outcome.
type Severity string

const (
	// SeverityBlock denies the action when the rule is violated.
	// Rules without an explicit severity get this.
	SeverityBlock Severity = "block"

	// SeverityWarn records the violation without denying the action.
	SeverityWarn Severity = "warn"
)

// Rule is one gating constraint.
type Rule struct {
	// ID uniquely identifies the rule within a set.
	ID string `yaml:"id" json:"id"`

	// Name is an optional human-readable title.
	Name string `yaml:"name" json:"name,omitempty"`

	// Constraint is the boolean expression evaluated against the snapshot.
	Constraint string `yaml:"constraint" json:"constraint"`

	// Message annotates violations. ${path} placeholders resolve against
	// the snapshot the rule was evaluated with.
	Message string `yaml:"message" json:"message,omitempty"`

	// Severity is block or warn. Empty means block.
	Severity Severity `yaml:"severity" json:"severity,omitempty"`

	// Params are rule-local values the constraint can reference.
	// The snapshot shadows params on key collisions.
	Params Params `yaml:"params" json:"params,omitempty"`

	// Disabled rules stay in the set but are skipped by Check.
	Disabled bool `yaml:"disabled" json:"disabled,omitempty"`
}
