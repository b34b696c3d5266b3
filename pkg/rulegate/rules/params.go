package rules

import (
	"github.com/randalmurphal/rulegate/pkg/rulegate"
)

// Params are one rule's local values. Check merges them under the snapshot,
// so a constraint and its violation message see a param only when the
// snapshot does not carry the same key.
//
// Values hold whatever the document decoder produced (int for YAML
// integers, float64 for JSON numbers, []any for lists). The typed accessors
// absorb those shapes; the numeric ones convert through the evaluator's own
// context ingestion, so a param is numeric here exactly when it is numeric
// inside a constraint.
type Params map[string]any

// clone copies the params so later caller mutations don't reach the set.
func (p Params) clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// mergeUnder layers the snapshot over the params. The snapshot wins on key
// collisions. Without params the snapshot is returned as is.
func (p Params) mergeUnder(snapshot map[string]any) map[string]any {
	if len(p) == 0 {
		return snapshot
	}
	merged := make(map[string]any, len(p)+len(snapshot))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range snapshot {
		merged[k] = v
	}
	return merged
}

// Float returns the param as a float64, or fallback when it is missing or
// not numeric.
func (p Params) Float(key string, fallback float64) float64 {
	f, ok := p.number(key)
	if !ok {
		return fallback
	}
	return f
}

// Int returns the param as an int, or fallback when it is missing, not
// numeric, or carries a fractional part.
func (p Params) Int(key string, fallback int) int {
	f, ok := p.number(key)
	if !ok || f != float64(int(f)) {
		return fallback
	}
	return int(f)
}

// Bool returns the param as a bool, or fallback when it is missing or not
// a bool.
func (p Params) Bool(key string, fallback bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return fallback
}

// String returns the param as a string, or fallback when it is missing or
// not a string.
func (p Params) String(key, fallback string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return fallback
}

// StringSlice returns the param as a []string, or fallback when it is
// missing or any element is not a string. Document decoders produce []any
// for lists; typed []string appears when rules are built in Go.
func (p Params) StringSlice(key string, fallback []string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return fallback
			}
			out[i] = s
		}
		return out
	}
	return fallback
}

// Has reports whether the param is present, regardless of type.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// number converts a param through the evaluator's value ingestion: every
// numeric width and json.Number convert, everything else does not.
func (p Params) number(key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	val, err := rulegate.FromAny(v)
	if err != nil || val.Kind() != rulegate.ValueNumber {
		return 0, false
	}
	f, _ := val.Interface().(float64)
	return f, true
}
