package rulegate

import (
	"strconv"
	"strings"
)

// parser consumes the token stream left to right, computing values as
// grammar rules reduce. No AST is built: each rule parses and immediately
// evaluates, so operands are always evaluated eagerly.
type parser struct {
	toks     []token
	pos      int
	ctx      map[string]any
	depth    int
	maxDepth int
}

func (p *parser) cur() token { return p.toks[p.pos] }

// advance consumes the current token. The terminating EOF token is never
// consumed, so cur is always valid.
func (p *parser) advance() {
	if p.toks[p.pos].kind != tokenEOF {
		p.pos++
	}
}

// enter counts one nesting level, failing beyond the limit. Parentheses,
// function arguments, and unary chains all pass through here, so stack
// growth is bounded regardless of input shape.
func (p *parser) enter(pos int) *Error {
	p.depth++
	if p.depth > p.maxDepth {
		return errf(DepthExceeded, pos, "nesting exceeds %d levels", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// parseExpression parses one full expression, entering the precedence
// ladder at its lowest tier.
func (p *parser) parseExpression() (Value, *Error) {
	if err := p.enter(p.cur().pos); err != nil {
		return Value{}, err
	}
	defer p.leave()
	return p.parseBinary(tierOr)
}

// parseBinary left-folds operators of the given tier, parsing each operand
// one tier tighter.
func (p *parser) parseBinary(tier precTier) (Value, *Error) {
	if tier == tierUnary {
		return p.parseUnary()
	}
	left, err := p.parseBinary(tier + 1)
	if err != nil {
		return Value{}, err
	}
	for {
		t := p.cur()
		if t.kind != tokenOperator {
			return left, nil
		}
		entry, ok := binaryOps[t.text]
		if !ok || entry.tier != tier {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(tier + 1)
		if err != nil {
			return Value{}, err
		}
		// A zero right operand fails before the operator is applied.
		if (t.text == "/" || t.text == "%") && right.kind == ValueNumber && right.num == 0 {
			return Value{}, errf(DivisionByZero, t.pos, "right operand of %s is zero", t.text)
		}
		v, aerr := entry.apply(left, right)
		if aerr != nil {
			if aerr.Pos < 0 {
				aerr.Pos = t.pos
			}
			return Value{}, aerr
		}
		left = v
	}
}

func (p *parser) parseUnary() (Value, *Error) {
	t := p.cur()
	if t.kind == tokenOperator {
		if fn, ok := unaryOps[t.text]; ok {
			p.advance()
			if err := p.enter(t.pos); err != nil {
				return Value{}, err
			}
			operand, err := p.parseUnary()
			p.leave()
			if err != nil {
				return Value{}, err
			}
			v, aerr := fn(operand)
			if aerr != nil {
				if aerr.Pos < 0 {
					aerr.Pos = t.pos
				}
				return Value{}, aerr
			}
			return v, nil
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Value, *Error) {
	t := p.cur()
	switch t.kind {
	case tokenNumber:
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return Value{}, errf(LexError, t.pos, "invalid number literal %q", t.text)
		}
		return NewNumber(f), nil
	case tokenString:
		p.advance()
		return NewString(t.text), nil
	case tokenFunction:
		return p.parseCall(t)
	case tokenIdentifier:
		return p.parsePath(t)
	case tokenLParen:
		p.advance()
		v, err := p.parseExpression()
		if err != nil {
			return Value{}, err
		}
		if p.cur().kind != tokenRParen {
			return Value{}, errf(UnexpectedToken, p.cur().pos, "expected ) to close group, found %s", p.cur().describe())
		}
		p.advance()
		return v, nil
	case tokenEOF:
		return Value{}, errf(UnexpectedToken, t.pos, "expression ended where a value was expected")
	default:
		return Value{}, errf(UnexpectedToken, t.pos, "expected a value, found %s", t.describe())
	}
}

// parseCall parses and invokes a function call. name is the current
// Function token.
func (p *parser) parseCall(name token) (Value, *Error) {
	p.advance()
	if p.cur().kind != tokenLParen {
		return Value{}, errf(UnexpectedToken, p.cur().pos, "expected ( after %s, found %s", name.text, p.cur().describe())
	}
	p.advance()
	var args []Value
	if p.cur().kind != tokenRParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return Value{}, err
			}
			args = append(args, arg)
			if p.cur().kind != tokenComma {
				break
			}
			p.advance()
		}
	}
	if p.cur().kind != tokenRParen {
		return Value{}, errf(UnexpectedToken, p.cur().pos, "expected ) to close %s call, found %s", name.text, p.cur().describe())
	}
	p.advance()
	fn, ok := functions[name.text]
	if !ok {
		return Value{}, errf(UnknownFunction, name.pos, "%s is not a registered function", name.text)
	}
	v, err := fn(args)
	if err != nil {
		return Value{}, &Error{Kind: FunctionInvocation, Pos: name.pos, Msg: name.text, Err: err}
	}
	return v, nil
}

// parsePath parses a dotted identifier path and resolves it against the
// context. first is the current Identifier token.
func (p *parser) parsePath(first token) (Value, *Error) {
	p.advance()
	segments := []string{first.text}
	for p.cur().kind == tokenDot {
		p.advance()
		seg := p.cur()
		// Registered function names double as path segments.
		if seg.kind != tokenIdentifier && seg.kind != tokenFunction {
			return Value{}, errf(UnexpectedToken, seg.pos, "expected identifier after ., found %s", seg.describe())
		}
		p.advance()
		segments = append(segments, seg.text)
	}
	if p.cur().kind == tokenLParen {
		return Value{}, errf(UnknownFunction, first.pos, "%s is not a registered function", strings.Join(segments, "."))
	}
	return resolvePath(p.ctx, segments, first.pos)
}
