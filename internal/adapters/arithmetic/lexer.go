package arithmetic

import (
	"fmt"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int // rune offset in the input
}

func (t token) String() string {
	if t.kind == tokNumber {
		return fmt.Sprintf("number %s", t.text)
	}
	return t.kind.String()
}

var operators = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// lexError is a tokenizing failure; the evaluator turns it into a syntax error.
type lexError struct {
	pos int
	msg string
}

func (e *lexError) Error() string {
	return fmt.Sprintf("%s at position %d", e.msg, e.pos)
}

// tokenize splits the input into tokens, dropping whitespace. The returned
// slice always ends with a tokEOF token.
func tokenize(input string) ([]token, error) {
	runes := []rune(input)
	var tokens []token

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isDigit(r):
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			if i < len(runes) && runes[i] == '.' {
				i++
				if i >= len(runes) || !isDigit(runes[i]) {
					return nil, &lexError{pos: i, msg: "expected digits after decimal point"}
				}
				for i < len(runes) && isDigit(runes[i]) {
					i++
				}
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		default:
			kind, ok := operators[r]
			if !ok {
				return nil, &lexError{pos: i, msg: fmt.Sprintf("unexpected character %q", r)}
			}
			tokens = append(tokens, token{kind: kind, text: string(r), pos: i})
			i++
		}
	}

	return append(tokens, token{kind: tokEOF, pos: len(runes)}), nil
}

// isDigit accepts ASCII digits only; unicode.IsDigit would let other scripts through.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
