package rulegate

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// ValueNumber is a float-precision number.
	ValueNumber ValueKind = iota
	// ValueString is a string.
	ValueString
	// ValueBool is a boolean.
	ValueBool
	// ValueSequence is an ordered list of Values.
	ValueSequence
	// ValueMapping is a string-keyed map of Values.
	ValueMapping
)

// String returns the kind name as used in error messages.
func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueSequence:
		return "sequence"
	case ValueMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Value is the tagged union flowing through evaluation: a number, string,
// bool, sequence, or mapping. Values are created per call and never shared
// or mutated after construction.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
	seq  []Value
	mp   map[string]Value
}

// NewNumber returns a number Value.
func NewNumber(f float64) Value { return Value{kind: ValueNumber, num: f} }

// NewString returns a string Value.
func NewString(s string) Value { return Value{kind: ValueString, str: s} }

// NewBool returns a bool Value.
func NewBool(b bool) Value { return Value{kind: ValueBool, b: b} }

// NewSequence returns a sequence Value holding the given elements.
// The slice is retained; the caller must not mutate it afterwards.
func NewSequence(elems []Value) Value { return Value{kind: ValueSequence, seq: elems} }

// NewMapping returns a mapping Value holding the given entries.
// The map is retained; the caller must not mutate it afterwards.
func NewMapping(entries map[string]Value) Value { return Value{kind: ValueMapping, mp: entries} }

// Kind reports which variant the Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Truthy reports the boolean coercion of the Value: false, numeric zero,
// the empty string, the empty sequence, and the empty mapping are falsy;
// everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueNumber:
		return v.num != 0
	case ValueString:
		return v.str != ""
	case ValueBool:
		return v.b
	case ValueSequence:
		return len(v.seq) > 0
	case ValueMapping:
		return len(v.mp) > 0
	default:
		return false
	}
}

// Equal reports deep equality. Values of different kinds are never equal;
// numbers compare numerically, sequences element-wise, mappings key-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNumber:
		return v.num == o.num
	case ValueString:
		return v.str == o.str
	case ValueBool:
		return v.b == o.b
	case ValueSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case ValueMapping:
		if len(v.mp) != len(o.mp) {
			return false
		}
		for k, ve := range v.mp {
			oe, ok := o.mp[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the Value for messages and logs. Numbers use the shortest
// representation that round-trips; mappings render with sorted keys.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueString:
		return v.str
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueSequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValueMapping:
		keys := make([]string, 0, len(v.mp))
		for k := range v.mp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.mp[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}

// Interface converts the Value back to a plain Go value: float64, string,
// bool, []any, or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case ValueNumber:
		return v.num
	case ValueString:
		return v.str
	case ValueBool:
		return v.b
	case ValueSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	case ValueMapping:
		out := make(map[string]any, len(v.mp))
		for k, e := range v.mp {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a plain Go value into a Value. Supported inputs are
// bools, strings, all integer and float widths, json.Number, []any and
// typed number/string slices, map[string]any, map[string]Value, and Value
// itself. nil and anything else fail with a type-mismatch error: the value
// model has no null.
func FromAny(v any) (Value, error) {
	val, err := fromAny(v)
	if err != nil {
		return Value{}, err
	}
	return val, nil
}

func fromAny(v any) (Value, *Error) {
	switch val := v.(type) {
	case nil:
		return Value{}, errf(TypeMismatch, -1, "nil has no value representation")
	case Value:
		return val, nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case float64:
		return NewNumber(val), nil
	case float32:
		return NewNumber(float64(val)), nil
	case int:
		return NewNumber(float64(val)), nil
	case int8:
		return NewNumber(float64(val)), nil
	case int16:
		return NewNumber(float64(val)), nil
	case int32:
		return NewNumber(float64(val)), nil
	case int64:
		return NewNumber(float64(val)), nil
	case uint:
		return NewNumber(float64(val)), nil
	case uint8:
		return NewNumber(float64(val)), nil
	case uint16:
		return NewNumber(float64(val)), nil
	case uint32:
		return NewNumber(float64(val)), nil
	case uint64:
		return NewNumber(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Value{}, errf(TypeMismatch, -1, "malformed number %q", string(val))
		}
		return NewNumber(f), nil
	case []Value:
		return NewSequence(val), nil
	case []any:
		elems := make([]Value, len(val))
		for i, e := range val {
			ev, err := fromAny(e)
			if err != nil {
				return Value{}, errf(TypeMismatch, -1, "sequence element %d: %s", i, err.Msg)
			}
			elems[i] = ev
		}
		return NewSequence(elems), nil
	case []string:
		elems := make([]Value, len(val))
		for i, s := range val {
			elems[i] = NewString(s)
		}
		return NewSequence(elems), nil
	case []float64:
		elems := make([]Value, len(val))
		for i, f := range val {
			elems[i] = NewNumber(f)
		}
		return NewSequence(elems), nil
	case []int:
		elems := make([]Value, len(val))
		for i, n := range val {
			elems[i] = NewNumber(float64(n))
		}
		return NewSequence(elems), nil
	case map[string]Value:
		return NewMapping(val), nil
	case map[string]any:
		entries := make(map[string]Value, len(val))
		for k, e := range val {
			ev, err := fromAny(e)
			if err != nil {
				return Value{}, errf(TypeMismatch, -1, "mapping key %q: %s", k, err.Msg)
			}
			entries[k] = ev
		}
		return NewMapping(entries), nil
	default:
		return Value{}, errf(TypeMismatch, -1, "unsupported value of type %T", v)
	}
}
