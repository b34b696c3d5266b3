package rulegate

import (
	"fmt"
)

// Kind classifies evaluation failures. Every error returned by Evaluate
// carries exactly one Kind, so callers need a single check site.
type Kind int

const (
	// UnsafeExpression indicates the expression tripped the safety gate
	// (length cap or denylist pattern) before lexing.
	UnsafeExpression Kind = iota + 1

	// LexError indicates a character or literal the lexer could not tokenize,
	// including unterminated strings.
	LexError

	// UnexpectedToken indicates a grammar violation at a known position.
	UnexpectedToken

	// UnknownFunction indicates a call to a name outside the function table.
	UnknownFunction

	// PathNotFound indicates an identifier path with a missing segment.
	PathNotFound

	// DivisionByZero indicates / or % with a right operand of exactly zero.
	DivisionByZero

	// FunctionInvocation indicates a registered function rejected its
	// arguments or failed internally; the cause is available via Unwrap.
	FunctionInvocation

	// TrailingTokens indicates leftover tokens after a complete expression.
	TrailingTokens

	// TypeMismatch indicates operands or context values of the wrong type
	// for the attempted operation.
	TypeMismatch

	// DepthExceeded indicates expression nesting beyond the configured limit.
	DepthExceeded

	// Internal indicates an unclassified fault inside the evaluator.
	// Evaluation fails closed: such faults surface as errors, never as
	// a boolean result.
	Internal
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case UnsafeExpression:
		return "unsafe expression"
	case LexError:
		return "lex error"
	case UnexpectedToken:
		return "unexpected token"
	case UnknownFunction:
		return "unknown function"
	case PathNotFound:
		return "path not found"
	case DivisionByZero:
		return "division by zero"
	case FunctionInvocation:
		return "function invocation failed"
	case TrailingTokens:
		return "trailing tokens"
	case TypeMismatch:
		return "type mismatch"
	case DepthExceeded:
		return "depth exceeded"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the single error type produced by evaluation. It carries the
// failure Kind, the byte offset into the expression where the failure was
// detected (-1 when no position applies), a human-readable message, and an
// optional underlying cause.
type Error struct {
	// Kind is the failure classification.
	Kind Kind
	// Pos is the byte offset into the expression, or -1 when unknown.
	Pos int
	// Msg is the human-readable detail.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Pos >= 0 {
		s += fmt.Sprintf(" at offset %d", e.Pos)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// errf builds an Error with a formatted message.
func errf(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
