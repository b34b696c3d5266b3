package rulegate

import "fmt"

// tokenKind classifies a lexical unit.
type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdentifier
	tokenString
	tokenOperator
	tokenFunction
	tokenLParen
	tokenRParen
	tokenDot
	tokenComma
	tokenEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokenNumber:
		return "number"
	case tokenIdentifier:
		return "identifier"
	case tokenString:
		return "string"
	case tokenOperator:
		return "operator"
	case tokenFunction:
		return "function"
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	case tokenDot:
		return "."
	case tokenComma:
		return ","
	case tokenEOF:
		return "end of expression"
	default:
		return "invalid"
	}
}

// token is one lexical unit. pos is the byte offset of its first character
// in the source expression; string tokens carry their unescaped contents.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// describe renders the token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokenEOF:
		return "end of expression"
	case tokenLParen, tokenRParen, tokenDot, tokenComma:
		return fmt.Sprintf("%q", t.text)
	default:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
}
