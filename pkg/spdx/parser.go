package spdx

import (
	"strings"
)

// Parse turns a raw license string into an expression tree. It never fails:
// empty or malformed input degrades to Leaf("unknown") so a bad license
// string can't abort a scan. Identifier leaves are normalized to canonical
// SPDX form; callers keep the raw string for diagnostics.
//
// Grammar, lowest to highest precedence:
//
//	Or    := And (OR And)*
//	And   := Unary (AND Unary)*
//	Unary := '(' Or ')' | Identifier (WITH ExceptionId)?
//
// A "/" separator is a legacy shorthand for OR: "MIT/Apache-2.0" parses the
// same as "MIT OR Apache-2.0".
func Parse(raw string) Expr {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "unknown") {
		return Leaf{ID: "unknown"}
	}

	// Multi-word spellings ("Apache License 2.0") have to be normalized
	// before tokenizing or the tokenizer would split them apart.
	// Single-token spellings are normalized again per leaf.
	trimmed = Normalize(trimmed)

	// Rewrite the legacy slash separator before tokenizing.
	rewritten := strings.ReplaceAll(trimmed, "/", " OR ")

	p := &parser{tokens: tokenize(rewritten)}
	expr, err := p.parseOr()
	if err != nil || !p.atEnd() {
		return Leaf{ID: "unknown"}
	}
	return expr
}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

func errUnexpected(tok string) error {
	return &parseError{msg: "unexpected token: " + tok}
}

// tokenize splits the input into parentheses and whitespace-separated words.
func tokenize(s string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range s {
		switch r {
		case '(', ')':
			flush()
			tokens = append(tokens, string(r))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() string {
	if p.atEnd() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

// Keywords are matched case-insensitively: lowercase "or"/"and" show up in
// registry metadata even though SPDX specifies uppercase.
func isKeyword(tok, kw string) bool {
	return strings.EqualFold(tok, kw)
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && isKeyword(p.peek(), "OR") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && isKeyword(p.peek(), "AND") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return nil, &parseError{msg: "unexpected end of expression"}
	case tok == "(":
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, &parseError{msg: "missing closing parenthesis"}
		}
		p.next()
		return inner, nil
	case tok == ")" || isKeyword(tok, "OR") || isKeyword(tok, "AND") || isKeyword(tok, "WITH"):
		return nil, errUnexpected(tok)
	default:
		p.next()
		leaf := Leaf{ID: Normalize(tok)}
		if !p.atEnd() && isKeyword(p.peek(), "WITH") {
			p.next()
			exc := p.next()
			if exc == "" || exc == "(" || exc == ")" {
				return nil, &parseError{msg: "missing exception identifier"}
			}
			return With{Inner: leaf, Exception: exc}, nil
		}
		return leaf, nil
	}
}
