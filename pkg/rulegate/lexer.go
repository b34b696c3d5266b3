package rulegate

import (
	"strings"
	"unicode/utf8"
)

// tokenize converts an expression into its token sequence, terminated by an
// EOF token. It is deterministic: the same input always yields the same
// sequence. Positions are byte offsets into the input.
func tokenize(input string) ([]token, *Error) {
	toks := make([]token, 0, len(input)/4+1)
	n := len(input)
	i := 0
	for i < n {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(input[i+1])):
			// Maximal run of digits with at most one dot. No exponent, no
			// sign: unary minus belongs to the grammar, not the lexer.
			start := i
			sawDot := false
			for i < n {
				d := input[i]
				if isDigit(d) {
					i++
					continue
				}
				if d == '.' && !sawDot {
					sawDot = true
					i++
					continue
				}
				break
			}
			toks = append(toks, token{tokenNumber, input[start:i], start})

		case isWordStart(c):
			start := i
			for i < n && isWordChar(input[i]) {
				i++
			}
			word := input[start:i]
			toks = append(toks, token{classifyWord(word), word, start})

		case c == '\'' || c == '"':
			start := i
			quote := c
			i++
			var sb strings.Builder
			closed := false
			for i < n {
				ch := input[i]
				if ch == '\\' {
					if i+1 >= n {
						break
					}
					// Backslash escapes the next character verbatim.
					sb.WriteByte(input[i+1])
					i += 2
					continue
				}
				if ch == quote {
					i++
					closed = true
					break
				}
				sb.WriteByte(ch)
				i++
			}
			if !closed {
				return nil, errf(LexError, start, "unterminated string")
			}
			toks = append(toks, token{tokenString, sb.String(), start})

		case i+1 < n && isDoubleOp(input[i:i+2]):
			toks = append(toks, token{tokenOperator, input[i : i+2], i})
			i += 2

		default:
			switch c {
			case '<', '>', '!', '+', '-', '%', '*', '/':
				toks = append(toks, token{tokenOperator, string(c), i})
			case '(':
				toks = append(toks, token{tokenLParen, "(", i})
			case ')':
				toks = append(toks, token{tokenRParen, ")", i})
			case '.':
				toks = append(toks, token{tokenDot, ".", i})
			case ',':
				toks = append(toks, token{tokenComma, ",", i})
			default:
				r, _ := utf8.DecodeRuneInString(input[i:])
				return nil, errf(LexError, i, "unexpected character %q", r)
			}
			i++
		}
	}
	toks = append(toks, token{tokenEOF, "", n})
	return toks, nil
}

// classifyWord assigns a word token its kind: registered function names win,
// then the word operators, then plain identifier.
func classifyWord(w string) tokenKind {
	if _, ok := functions[w]; ok {
		return tokenFunction
	}
	switch w {
	case "and", "or", "not", "in":
		return tokenOperator
	}
	return tokenIdentifier
}

func isDoubleOp(s string) bool {
	switch s {
	case "<=", ">=", "==", "!=":
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool { return isWordStart(c) || isDigit(c) }
