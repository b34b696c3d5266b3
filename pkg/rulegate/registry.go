package rulegate

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// precTier orders the binary precedence levels, lowest binding first.
type precTier int

const (
	tierOr precTier = iota
	tierAnd
	tierEquality
	tierRelational
	tierAdditive
	tierMultiplicative
	tierUnary
)

// operatorEntry pairs a binary operator with its precedence tier.
type operatorEntry struct {
	tier  precTier
	apply func(left, right Value) (Value, *Error)
}

// The registries are built once at package init and never mutated, so
// concurrent evaluations read them without synchronization. Nothing outside
// these tables is reachable from expression text.
var (
	binaryOps = map[string]operatorEntry{
		"or":  {tierOr, opOr},
		"and": {tierAnd, opAnd},
		"==":  {tierEquality, opEqual},
		"!=":  {tierEquality, opNotEqual},
		"in":  {tierEquality, opIn},
		"<":   {tierRelational, opLess},
		">":   {tierRelational, opGreater},
		"<=":  {tierRelational, opLessEqual},
		">=":  {tierRelational, opGreaterEqual},
		"+":   {tierAdditive, opAdd},
		"-":   {tierAdditive, opSubtract},
		"*":   {tierMultiplicative, opMultiply},
		"/":   {tierMultiplicative, opDivide},
		"%":   {tierMultiplicative, opModulo},
	}

	unaryOps = map[string]func(Value) (Value, *Error){
		"not": opNot,
		"-":   opNegate,
	}

	functions = map[string]func([]Value) (Value, error){
		"abs":   fnAbs,
		"min":   fnMin,
		"max":   fnMax,
		"round": fnRound,
		"len":   fnLen,
		"sum":   fnSum,
		"avg":   fnAvg,
		"sqrt":  fnSqrt,
		"log":   fnLog,
		"exp":   fnExp,
		"floor": fnFloor,
		"ceil":  fnCeil,
		"any":   fnAny,
		"all":   fnAll,
	}
)

// Logical operators evaluate both operands (the evaluator computes operands
// while parsing) and yield the boolean of their truthiness.

func opAnd(l, r Value) (Value, *Error) {
	return NewBool(l.Truthy() && r.Truthy()), nil
}

func opOr(l, r Value) (Value, *Error) {
	return NewBool(l.Truthy() || r.Truthy()), nil
}

func opEqual(l, r Value) (Value, *Error) {
	return NewBool(l.Equal(r)), nil
}

func opNotEqual(l, r Value) (Value, *Error) {
	return NewBool(!l.Equal(r)), nil
}

// opIn tests membership: element of a sequence, substring of a string, or
// key of a mapping.
func opIn(l, r Value) (Value, *Error) {
	switch r.kind {
	case ValueSequence:
		for _, e := range r.seq {
			if e.Equal(l) {
				return NewBool(true), nil
			}
		}
		return NewBool(false), nil
	case ValueString:
		if l.kind != ValueString {
			return Value{}, errf(TypeMismatch, -1, "substring test needs a string left operand, got %s", l.kind)
		}
		return NewBool(strings.Contains(r.str, l.str)), nil
	case ValueMapping:
		if l.kind != ValueString {
			return Value{}, errf(TypeMismatch, -1, "mapping membership needs a string key, got %s", l.kind)
		}
		_, ok := r.mp[l.str]
		return NewBool(ok), nil
	default:
		return Value{}, errf(TypeMismatch, -1, "right operand of in must be a sequence, string, or mapping, got %s", r.kind)
	}
}

// orderValues compares two numbers or two strings, returning -1, 0, or 1.
// Any other pairing is a type mismatch.
func orderValues(l, r Value) (int, *Error) {
	switch {
	case l.kind == ValueNumber && r.kind == ValueNumber:
		switch {
		case l.num < r.num:
			return -1, nil
		case l.num > r.num:
			return 1, nil
		default:
			return 0, nil
		}
	case l.kind == ValueString && r.kind == ValueString:
		return strings.Compare(l.str, r.str), nil
	default:
		return 0, errf(TypeMismatch, -1, "cannot order %s against %s", l.kind, r.kind)
	}
}

func opLess(l, r Value) (Value, *Error) {
	c, err := orderValues(l, r)
	if err != nil {
		return Value{}, err
	}
	return NewBool(c < 0), nil
}

func opGreater(l, r Value) (Value, *Error) {
	c, err := orderValues(l, r)
	if err != nil {
		return Value{}, err
	}
	return NewBool(c > 0), nil
}

func opLessEqual(l, r Value) (Value, *Error) {
	c, err := orderValues(l, r)
	if err != nil {
		return Value{}, err
	}
	return NewBool(c <= 0), nil
}

func opGreaterEqual(l, r Value) (Value, *Error) {
	c, err := orderValues(l, r)
	if err != nil {
		return Value{}, err
	}
	return NewBool(c >= 0), nil
}

// opAdd adds numbers, concatenates strings, and concatenates sequences.
func opAdd(l, r Value) (Value, *Error) {
	switch {
	case l.kind == ValueNumber && r.kind == ValueNumber:
		return NewNumber(l.num + r.num), nil
	case l.kind == ValueString && r.kind == ValueString:
		return NewString(l.str + r.str), nil
	case l.kind == ValueSequence && r.kind == ValueSequence:
		out := make([]Value, 0, len(l.seq)+len(r.seq))
		out = append(out, l.seq...)
		out = append(out, r.seq...)
		return NewSequence(out), nil
	default:
		return Value{}, errf(TypeMismatch, -1, "cannot add %s and %s", l.kind, r.kind)
	}
}

func opSubtract(l, r Value) (Value, *Error) {
	if l.kind != ValueNumber || r.kind != ValueNumber {
		return Value{}, errf(TypeMismatch, -1, "cannot subtract %s from %s", r.kind, l.kind)
	}
	return NewNumber(l.num - r.num), nil
}

func opMultiply(l, r Value) (Value, *Error) {
	if l.kind != ValueNumber || r.kind != ValueNumber {
		return Value{}, errf(TypeMismatch, -1, "cannot multiply %s by %s", l.kind, r.kind)
	}
	return NewNumber(l.num * r.num), nil
}

// The zero right operand is rejected by the evaluator before opDivide and
// opModulo are reached.

func opDivide(l, r Value) (Value, *Error) {
	if l.kind != ValueNumber || r.kind != ValueNumber {
		return Value{}, errf(TypeMismatch, -1, "cannot divide %s by %s", l.kind, r.kind)
	}
	return NewNumber(l.num / r.num), nil
}

func opModulo(l, r Value) (Value, *Error) {
	if l.kind != ValueNumber || r.kind != ValueNumber {
		return Value{}, errf(TypeMismatch, -1, "cannot take %s modulo %s", l.kind, r.kind)
	}
	return NewNumber(math.Mod(l.num, r.num)), nil
}

func opNot(v Value) (Value, *Error) {
	return NewBool(!v.Truthy()), nil
}

func opNegate(v Value) (Value, *Error) {
	if v.kind != ValueNumber {
		return Value{}, errf(TypeMismatch, -1, "cannot negate %s", v.kind)
	}
	return NewNumber(-v.num), nil
}

// Registered functions are pure: no I/O, no callbacks into the evaluator.
// Their internal failures are plain errors; the evaluator wraps them with
// the call site.

// spreadArgs lets aggregate functions accept either variadic arguments or a
// single sequence argument.
func spreadArgs(args []Value) []Value {
	if len(args) == 1 && args[0].kind == ValueSequence {
		return args[0].seq
	}
	return args
}

// numericArgs spreads and converts arguments, requiring every one to be a
// number.
func numericArgs(args []Value) ([]float64, error) {
	vals := spreadArgs(args)
	out := make([]float64, len(vals))
	for i, v := range vals {
		if v.kind != ValueNumber {
			return nil, fmt.Errorf("argument %d must be a number, got %s", i+1, v.kind)
		}
		out[i] = v.num
	}
	return out, nil
}

// oneNumber enforces a single numeric argument.
func oneNumber(args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expects exactly one argument, got %d", len(args))
	}
	if args[0].kind != ValueNumber {
		return 0, fmt.Errorf("argument must be a number, got %s", args[0].kind)
	}
	return args[0].num, nil
}

func fnAbs(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	return NewNumber(math.Abs(x)), nil
}

func fnMin(args []Value) (Value, error) {
	nums, err := numericArgs(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, errors.New("no values")
	}
	m := nums[0]
	for _, x := range nums[1:] {
		if x < m {
			m = x
		}
	}
	return NewNumber(m), nil
}

func fnMax(args []Value) (Value, error) {
	nums, err := numericArgs(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, errors.New("no values")
	}
	m := nums[0]
	for _, x := range nums[1:] {
		if x > m {
			m = x
		}
	}
	return NewNumber(m), nil
}

// fnRound rounds half away from zero, optionally to a digit count.
func fnRound(args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return Value{}, fmt.Errorf("expects one or two arguments, got %d", len(args))
	}
	if args[0].kind != ValueNumber {
		return Value{}, fmt.Errorf("argument must be a number, got %s", args[0].kind)
	}
	x := args[0].num
	if len(args) == 1 {
		return NewNumber(math.Round(x)), nil
	}
	if args[1].kind != ValueNumber {
		return Value{}, fmt.Errorf("digit count must be a number, got %s", args[1].kind)
	}
	pow := math.Pow(10, math.Trunc(args[1].num))
	return NewNumber(math.Round(x*pow) / pow), nil
}

// fnLen counts runes of a string, elements of a sequence, or entries of a
// mapping.
func fnLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("expects exactly one argument, got %d", len(args))
	}
	v := args[0]
	switch v.kind {
	case ValueString:
		return NewNumber(float64(utf8.RuneCountInString(v.str))), nil
	case ValueSequence:
		return NewNumber(float64(len(v.seq))), nil
	case ValueMapping:
		return NewNumber(float64(len(v.mp))), nil
	default:
		return Value{}, fmt.Errorf("%s has no length", v.kind)
	}
}

func fnSum(args []Value) (Value, error) {
	nums, err := numericArgs(args)
	if err != nil {
		return Value{}, err
	}
	total := 0.0
	for _, x := range nums {
		total += x
	}
	return NewNumber(total), nil
}

func fnAvg(args []Value) (Value, error) {
	nums, err := numericArgs(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, errors.New("no values")
	}
	total := 0.0
	for _, x := range nums {
		total += x
	}
	return NewNumber(total / float64(len(nums))), nil
}

func fnSqrt(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	if x < 0 {
		return Value{}, errors.New("negative argument")
	}
	return NewNumber(math.Sqrt(x)), nil
}

func fnLog(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	if x <= 0 {
		return Value{}, errors.New("argument must be positive")
	}
	return NewNumber(math.Log(x)), nil
}

func fnExp(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	return NewNumber(math.Exp(x)), nil
}

func fnFloor(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	return NewNumber(math.Floor(x)), nil
}

func fnCeil(args []Value) (Value, error) {
	x, err := oneNumber(args)
	if err != nil {
		return Value{}, err
	}
	return NewNumber(math.Ceil(x)), nil
}

// fnAny reports whether any argument is truthy; with no arguments it
// reports false.
func fnAny(args []Value) (Value, error) {
	for _, v := range spreadArgs(args) {
		if v.Truthy() {
			return NewBool(true), nil
		}
	}
	return NewBool(false), nil
}

// fnAll reports whether every argument is truthy; with no arguments it
// reports true.
func fnAll(args []Value) (Value, error) {
	for _, v := range spreadArgs(args) {
		if !v.Truthy() {
			return NewBool(false), nil
		}
	}
	return NewBool(true), nil
}
