package rulegate

import (
	"strings"
)

// Default limits applied by New.
const (
	// DefaultMaxExpressionLength is the pre-lex length cap in characters.
	DefaultMaxExpressionLength = 1000
	// DefaultMaxDepth bounds expression nesting (parentheses, function
	// arguments, unary chains).
	DefaultMaxDepth = 64
)

// Evaluator evaluates constraint expressions against caller-supplied
// contexts. It holds only configured limits: it is immutable after New and
// safe for concurrent use from multiple goroutines.
type Evaluator struct {
	maxExprLen int
	maxDepth   int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxExpressionLength overrides the expression length cap.
// Non-positive values are ignored.
func WithMaxExpressionLength(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxExprLen = n
		}
	}
}

// WithMaxDepth overrides the nesting depth limit.
// Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxExprLen: DefaultMaxExpressionLength,
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEvaluator = New()

// Eval evaluates an expression using an Evaluator with default limits.
func Eval(expression string, context map[string]any) (bool, error) {
	return defaultEvaluator.Evaluate(expression, context)
}

// Evaluate evaluates a constraint expression against the context and
// coerces the result to a boolean. An empty or all-whitespace expression
// passes vacuously. Every failure is reported as an *Error carrying its
// Kind; evaluation fails closed and never turns an internal fault into a
// boolean result.
//
// Evaluate is a pure function of its inputs: repeated calls with the same
// expression and context return the same result or the same error kind.
func (e *Evaluator) Evaluate(expression string, context map[string]any) (result bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = errf(Internal, -1, "recovered from panic: %v", r)
		}
	}()

	if strings.TrimSpace(expression) == "" {
		return true, nil
	}
	if serr := checkSafe(expression, e.maxExprLen); serr != nil {
		return false, serr
	}
	toks, lerr := tokenize(expression)
	if lerr != nil {
		return false, lerr
	}
	p := &parser{toks: toks, ctx: context, maxDepth: e.maxDepth}
	v, perr := p.parseExpression()
	if perr != nil {
		return false, perr
	}
	if t := p.cur(); t.kind != tokenEOF {
		return false, errf(TrailingTokens, t.pos, "unexpected %s after complete expression", t.describe())
	}
	return v.Truthy(), nil
}

// Vet statically checks an expression without evaluating it: the safety
// gate and the lexer run, the grammar and the context do not. Rule loaders
// use it to reject bad constraint text at load time.
func (e *Evaluator) Vet(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return nil
	}
	if serr := checkSafe(expression, e.maxExprLen); serr != nil {
		return serr
	}
	if _, lerr := tokenize(expression); lerr != nil {
		return lerr
	}
	return nil
}

// MaxExpressionLength reports the configured length cap.
func (e *Evaluator) MaxExpressionLength() int { return e.maxExprLen }

// MaxDepth reports the configured nesting limit.
func (e *Evaluator) MaxDepth() int { return e.maxDepth }
