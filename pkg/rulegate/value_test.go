package rulegate

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"bool", true, NewBool(true)},
		{"string", "hi", NewString("hi")},
		{"float64", 1.5, NewNumber(1.5)},
		{"float32", float32(2.5), NewNumber(2.5)},
		{"int", 7, NewNumber(7)},
		{"int8", int8(-3), NewNumber(-3)},
		{"int64", int64(9), NewNumber(9)},
		{"uint", uint(4), NewNumber(4)},
		{"uint64", uint64(11), NewNumber(11)},
		{"json number", json.Number("2.25"), NewNumber(2.25)},
		{"value passes through", NewString("x"), NewString("x")},
		{"any slice", []any{1, "a"}, NewSequence([]Value{NewNumber(1), NewString("a")})},
		{"string slice", []string{"a", "b"}, NewSequence([]Value{NewString("a"), NewString("b")})},
		{"float slice", []float64{1, 2}, NewSequence([]Value{NewNumber(1), NewNumber(2)})},
		{"int slice", []int{3, 4}, NewSequence([]Value{NewNumber(3), NewNumber(4)})},
		{"value slice", []Value{NewBool(true)}, NewSequence([]Value{NewBool(true)})},
		{"any map", map[string]any{"k": 1}, NewMapping(map[string]Value{"k": NewNumber(1)})},
		{"value map", map[string]Value{"k": NewString("v")}, NewMapping(map[string]Value{"k": NewString("v")})},
		{"nested", map[string]any{"s": []any{map[string]any{"x": 1}}},
			NewMapping(map[string]Value{"s": NewSequence([]Value{NewMapping(map[string]Value{"x": NewNumber(1)})})})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.in)
			if err != nil {
				t.Fatalf("FromAny(%v) unexpected error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("FromAny(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"struct", struct{ X int }{1}},
		{"channel", make(chan int)},
		{"func", func() {}},
		{"nil inside slice", []any{1, nil}},
		{"nil inside map", map[string]any{"k": nil}},
		{"bad json number", json.Number("abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.in)
			if err == nil {
				t.Fatalf("FromAny(%v) succeeded, want type mismatch", tt.in)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *Error: %v", err, err)
			}
			if e.Kind != TypeMismatch {
				t.Errorf("kind = %v, want %v", e.Kind, TypeMismatch)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", NewBool(true), true},
		{"false", NewBool(false), false},
		{"nonzero number", NewNumber(0.1), true},
		{"negative number", NewNumber(-1), true},
		{"zero", NewNumber(0), false},
		{"nonempty string", NewString("a"), true},
		{"empty string", NewString(""), false},
		{"nonempty sequence", NewSequence([]Value{NewNumber(0)}), true},
		{"empty sequence", NewSequence(nil), false},
		{"nonempty mapping", NewMapping(map[string]Value{"a": NewNumber(0)}), true},
		{"empty mapping", NewMapping(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers equal", NewNumber(1.5), NewNumber(1.5), true},
		{"numbers differ", NewNumber(1.5), NewNumber(2), false},
		{"strings equal", NewString("x"), NewString("x"), true},
		{"bools equal", NewBool(false), NewBool(false), true},
		{"number and string never equal", NewNumber(1), NewString("1"), false},
		{"number and bool never equal", NewNumber(1), NewBool(true), false},
		{"sequences equal", NewSequence([]Value{NewNumber(1), NewString("a")}),
			NewSequence([]Value{NewNumber(1), NewString("a")}), true},
		{"sequences differ in length", NewSequence([]Value{NewNumber(1)}),
			NewSequence([]Value{NewNumber(1), NewNumber(2)}), false},
		{"sequences differ in element", NewSequence([]Value{NewNumber(1)}),
			NewSequence([]Value{NewNumber(2)}), false},
		{"empty sequences equal", NewSequence(nil), NewSequence([]Value{}), true},
		{"mappings equal", NewMapping(map[string]Value{"a": NewNumber(1)}),
			NewMapping(map[string]Value{"a": NewNumber(1)}), true},
		{"mappings differ in key", NewMapping(map[string]Value{"a": NewNumber(1)}),
			NewMapping(map[string]Value{"b": NewNumber(1)}), false},
		{"mappings differ in value", NewMapping(map[string]Value{"a": NewNumber(1)}),
			NewMapping(map[string]Value{"a": NewNumber(2)}), false},
		{"nested equal", NewMapping(map[string]Value{"s": NewSequence([]Value{NewNumber(1)})}),
			NewMapping(map[string]Value{"s": NewSequence([]Value{NewNumber(1)})}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer valued number", NewNumber(2), "2"},
		{"fractional number", NewNumber(1.7), "1.7"},
		{"negative number", NewNumber(-0.5), "-0.5"},
		{"string", NewString("hello"), "hello"},
		{"bool", NewBool(true), "true"},
		{"sequence", NewSequence([]Value{NewNumber(1), NewString("a")}), "[1, a]"},
		{"empty sequence", NewSequence(nil), "[]"},
		{"mapping sorts keys", NewMapping(map[string]Value{
			"b": NewNumber(2),
			"a": NewNumber(1),
		}), "{a: 1, b: 2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Interface(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"number", 1.5},
		{"string", "x"},
		{"bool", true},
		{"sequence", []any{1.0, "a"}},
		{"mapping", map[string]any{"k": 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			back, err := FromAny(v.Interface())
			if err != nil {
				t.Fatalf("round trip error: %v", err)
			}
			if !back.Equal(v) {
				t.Errorf("round trip changed value: %v -> %v", v, back)
			}
		})
	}
}

func TestValueKind_String(t *testing.T) {
	tests := []struct {
		kind ValueKind
		want string
	}{
		{ValueNumber, "number"},
		{ValueString, "string"},
		{ValueBool, "bool"},
		{ValueSequence, "sequence"},
		{ValueMapping, "mapping"},
		{ValueKind(99), "invalid"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ValueKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
