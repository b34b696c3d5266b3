package rules

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/rulegate/pkg/rulegate"
	"github.com/randalmurphal/rulegate/pkg/rulegate/audit"
	"github.com/randalmurphal/rulegate/pkg/rulegate/observability"
)

// Set is an immutable, compiled collection of rules.
// Safe for concurrent use: Check never mutates the set or the snapshot.
type Set struct {
	rules          []Rule
	eval           *rulegate.Evaluator
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	auditStore     audit.Store
	auditSnapshots bool
	onDecision     func(Decision)
}

// NewSet compiles rules into a Set.
//
// Rule IDs must be non-empty and unique; severities must be block, warn,
// or empty (treated as block); every constraint must pass the evaluator's
// static checks. The first offending rule fails the whole set.
func NewSet(ruleList []Rule, opts ...SetOption) (*Set, error) {
	s := &Set{
		eval:    rulegate.New(),
		logger:  slog.Default(),
		metrics: observability.NewMetricsRecorder(),
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rules = make([]Rule, len(ruleList))
	seen := make(map[string]struct{}, len(ruleList))
	for i, r := range ruleList {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyRuleID)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rule %q: %w", r.ID, ErrDuplicateRuleID)
		}
		seen[r.ID] = struct{}{}

		switch r.Severity {
		case "":
			r.Severity = SeverityBlock
		case SeverityBlock, SeverityWarn:
		default:
			return nil, fmt.Errorf("rule %q: %w: %q", r.ID, ErrInvalidSeverity, r.Severity)
		}

		if err := s.eval.Vet(r.Constraint); err != nil {
			return nil, &RuleError{RuleID: r.ID, Op: "vet", Err: err}
		}

		r.Params = r.Params.clone()
		s.rules[i] = r
	}

	return s, nil
}

// Len returns the number of rules in the set, including disabled ones.
func (s *Set) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the set's rules in declaration order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
