package rulegate

import (
	"regexp"
	"unicode/utf8"
)

// denylist holds the textual patterns rejected before lexing: dunder-style
// names and the spawn points of host-language code execution. The scan is
// case-insensitive over the raw expression. It is a pre-filter, not the
// safety boundary itself: the grammar only ever reaches the operator and
// function tables and the caller's context.
var denylist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)__\w+__`),
	regexp.MustCompile(`(?i)\bimport\b`),
	regexp.MustCompile(`(?i)\bexec\s*\(`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
	regexp.MustCompile(`(?i)\bopen\s*\(`),
	regexp.MustCompile(`(?i)\bfile\s*\(`),
}

// checkSafe rejects expressions over the length cap or matching a denylist
// pattern. It runs strictly before the lexer. The cap counts characters,
// not bytes.
func checkSafe(expr string, maxLen int) *Error {
	if n := utf8.RuneCountInString(expr); n > maxLen {
		return errf(UnsafeExpression, -1, "expression length %d exceeds limit %d", n, maxLen)
	}
	for _, pat := range denylist {
		if loc := pat.FindStringIndex(expr); loc != nil {
			return errf(UnsafeExpression, loc[0], "disallowed pattern %q", expr[loc[0]:loc[1]])
		}
	}
	return nil
}
