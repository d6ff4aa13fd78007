package arithmetic

import (
	"errors"
	"fmt"
	"strconv"
)

var errDivisionByZero = errors.New("division by zero")

// node is an expression tree node. Trees live for a single evaluation.
type node interface {
	eval() (float64, error)
}

type number float64

func (n number) eval() (float64, error) {
	return float64(n), nil
}

type negation struct {
	operand node
}

func (n *negation) eval() (float64, error) {
	v, err := n.operand.eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryOp struct {
	op          tokenKind
	left, right node
}

func (b *binaryOp) eval() (float64, error) {
	x, err := b.left.eval()
	if err != nil {
		return 0, err
	}
	y, err := b.right.eval()
	if err != nil {
		return 0, err
	}

	switch b.op {
	case tokPlus:
		return x + y, nil
	case tokMinus:
		return x - y, nil
	case tokStar:
		return x * y, nil
	case tokSlash:
		if y == 0 {
			return 0, errDivisionByZero
		}
		return x / y, nil
	default:
		return 0, fmt.Errorf("unsupported operator %s", b.op)
	}
}

// parseError is a grammar violation at a given token.
type parseError struct {
	tok token
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s, found %s at position %d", e.msg, e.tok, e.tok.pos)
}

// parser is a recursive-descent parser over a token slice:
//
//	expr    := term (('+' | '-') term)*
//	term    := factor (('*' | '/') factor)*
//	factor  := ['-'] primary
//	primary := NUMBER | '(' expr ')'
type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, &parseError{tok: p.peek(), msg: "empty expression"}
	}

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &parseError{tok: tok, msg: "unexpected trailing input"}
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokPlus && op != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryOp{op: op, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokStar && op != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &binaryOp{op: op, left: left, right: right}
	}
}

func (p *parser) parseFactor() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &negation{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		// Out-of-range literals come back as ±Inf and are rejected after evaluation.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &parseError{tok: tok, msg: "malformed number"}
		}
		return number(v), nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &parseError{tok: closing, msg: "expected ')'"}
		}
		return inner, nil
	default:
		return nil, &parseError{tok: tok, msg: "expected a number or '('"}
	}
}
