package sqlparse

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokSymbol // one of ( ) , = * ;
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

// lex splits a statement into tokens. Identifiers and keywords come back as
// tokIdent; keyword matching is the parser's job and is case-insensitive.
func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		r := rune(s[i])
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(' || r == ')' || r == ',' || r == '=' || r == '*' || r == ';':
			toks = append(toks, token{kind: tokSymbol, text: string(r)})
			i++

		case r == '\'':
			text, next, err := lexString(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: text})
			i = next

		case unicode.IsDigit(r) || r == '-':
			start := i
			i++
			for i < len(s) && (unicode.IsDigit(rune(s[i])) || s[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: s[start:i]})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(s) && (unicode.IsLetter(rune(s[i])) || unicode.IsDigit(rune(s[i])) || s[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: s[start:i]})

		default:
			return nil, fmt.Errorf("sqlparse: unexpected character %q", r)
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

// lexString reads a single-quoted literal starting at s[i]; '' inside the
// literal escapes a quote. Returns the unescaped text and the index past the
// closing quote.
func lexString(s string, i int) (string, int, error) {
	var b strings.Builder
	i++ // opening quote
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return b.String(), i + 1, nil
		}
		b.WriteByte(s[i])
		i++
	}
	return "", 0, fmt.Errorf("sqlparse: unterminated string literal")
}
