/*
Package rulegate evaluates sandboxed boolean constraint expressions against
a caller-supplied context.

# Overview

rulegate implements a small expression language for gating decisions from
externally editable configuration text: trading rules, validation
conditions, release gates. An expression like

	spread_pips < normal_spread * 2.0

is evaluated against a context mapping in a single synchronous call that
either returns a boolean or reports one structured error. Expression text
can never execute code: the only things reachable from it are a fixed
operator table, a fixed function table, and the context the caller passed
in. A textual safety gate additionally rejects suspicious input (dunder
names, import/exec/eval/open/file) before the lexer ever sees it.

Evaluation is eager and single-pass: the recursive-descent parser computes
values while it parses, keeps no AST, and caches nothing between calls.

# Expression Syntax

	or_expr    := and_expr ('or' and_expr)*
	and_expr   := eq_expr ('and' eq_expr)*
	eq_expr    := rel_expr (('==' | '!=' | 'in') rel_expr)*
	rel_expr   := add_expr (('<' | '>' | '<=' | '>=') add_expr)*
	add_expr   := mul_expr (('+' | '-') mul_expr)*
	mul_expr   := unary (('*' | '/' | '%') unary)*
	unary      := ('not' | '-') unary | primary
	primary    := Number | String | call | path | '(' or_expr ')'
	call       := Function '(' (or_expr (',' or_expr)*)? ')'
	path       := Identifier ('.' Identifier)*

Numbers are unsigned decimal literals with at most one dot (no exponent);
negative values are written with unary minus. Strings take single or double
quotes; a backslash escapes the next character verbatim. There are no
boolean literals: compare against numbers or strings, or rely on
truthiness.

# Operators

Binding order, loosest first: or, and, equality (== != in), relational
(< > <= >=), additive (+ -), multiplicative (* / %), unary (not, -).
Operators of one tier fold left to right.

	==  !=     Deep equality; values of different kinds are simply unequal
	in         Membership: element in sequence, substring in string, key in mapping
	<  >  <=  >=   Numeric order, or lexicographic over two strings
	+          Add numbers, concatenate strings or sequences
	-  *  /  %     Numeric arithmetic; % is the floating remainder
	and  or    Truthiness of both operands; both sides are always evaluated
	not  -     Truthiness negation; numeric negation

Division or modulo by exactly zero fails with DivisionByZero before the
operator is applied, whatever the left operand.

# Functions

The function table is fixed:

	abs min max round len sum avg sqrt log exp floor ceil any all

All are pure. min, max, sum, avg, any, and all accept either variadic
arguments or a single sequence argument, so both max(1, 2) and max(spreads)
work. round takes an optional digit count and rounds half away from zero.
len counts string runes, sequence elements, or mapping entries. A function
failing internally (sqrt of a negative, avg of nothing, wrong arity)
reports FunctionInvocation with the cause attached.

# Context and Paths

The context is a map[string]any the core never mutates. Identifier paths
walk it one segment at a time:

	a.b.c

indexes mappings by key and falls back to exported struct fields for other
values; the first missing segment fails with PathNotFound. Leaf values
convert through FromAny: Go numbers of any width become float-precision
numbers, slices become sequences, string-keyed maps become mappings. nil
has no representation and fails with TypeMismatch.

# Errors

Every failure is an *Error carrying a Kind (UnsafeExpression, LexError,
UnexpectedToken, UnknownFunction, PathNotFound, DivisionByZero,
FunctionInvocation, TrailingTokens, TypeMismatch, DepthExceeded, Internal),
a byte offset where known, and a message:

	_, err := rulegate.Eval("1 / 0 == 0", nil)
	var e *rulegate.Error
	if errors.As(err, &e) {
	    fmt.Println(e.Kind, e.Pos) // division by zero 2
	}

Evaluation fails closed: unexpected internal faults surface as Internal
errors, never as a boolean.

# Examples

	ok, err := rulegate.Eval("portfolio_correlation < 0.7 and risk_pct < 5.0",
	    map[string]any{"portfolio_correlation": 0.6, "risk_pct": 3.0})
	// ok == true

	ok, err = rulegate.Eval("max(spreads) < 3.0 and avg(spreads) < 2.0",
	    map[string]any{"spreads": []float64{1.2, 1.8, 2.1}})
	// ok == true

	ok, err = rulegate.Eval("market.session == 'london'",
	    map[string]any{"market": map[string]any{"session": "london"}})
	// ok == true

An empty or all-whitespace expression passes vacuously:

	ok, _ := rulegate.Eval("", nil) // true

# Limits

New applies a 1000-character expression cap and a nesting depth limit of
64; both are tunable:

	e := rulegate.New(
	    rulegate.WithMaxExpressionLength(4096),
	    rulegate.WithMaxDepth(128),
	)
	ok, err := e.Evaluate(expr, ctx)

# Truthiness

The final value coerces to the returned boolean: false, numeric zero, the
empty string, the empty sequence, and the empty mapping are falsy;
everything else is truthy.

# Concurrency

Evaluators hold no per-call state and the operator/function tables are
built once and never mutated, so any number of goroutines may call
Evaluate concurrently without locking.
*/
package rulegate
