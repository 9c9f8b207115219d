package parser

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/source"
	"github.com/velalang/vela/internal/token"
)

// parsePattern parses a match-arm pattern: wildcard, identifier,
// literal, or a named variant with optional sub-patterns (spec.md §3).
func (p *Parser) parsePattern() ast.Pattern {
	pos := p.curSpan()
	switch p.cur.Type {
	case token.IDENT:
		name := p.cur.Lexeme
		if name == "_" {
			p.advance()
			return &ast.WildcardPattern{Pos: pos}
		}
		p.advance()
		if p.cur.Type == token.LBRACE || p.cur.Type == token.LPAREN {
			return p.parseVariantPattern(pos, name)
		}
		if isUpper(name) {
			// Bare upper-case name with no payload: a unit variant.
			return &ast.VariantPattern{Pos: pos, Name: name}
		}
		return &ast.IdentPattern{Pos: pos, Name: name}
	case token.INT, token.FLOAT, token.STRING, token.CHAR:
		lit := p.parsePrimary().(*ast.Literal)
		return &ast.LiteralPattern{Pos: pos, Value: lit}
	case token.LPAREN:
		p.advance()
		inner := p.parsePattern()
		p.expect(token.RPAREN, "')'")
		return inner
	default:
		p.errorf(p.cur, "expected pattern, found '"+p.cur.Lexeme+"'", "")
		p.advance()
		return &ast.WildcardPattern{Pos: pos}
	}
}

// parseVariantPattern parses a variant pattern's sub-patterns, which may
// be a field-record form `Name { field: pat, ... }` or a positional form
// `Name(pat, ...)`.
func (p *Parser) parseVariantPattern(pos source.Span, name string) ast.Pattern {
	vp := &ast.VariantPattern{Pos: pos, Name: name}
	if p.cur.Type == token.LBRACE {
		p.advance()
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			// field-record sub-pattern: `field: pat` or bare `field`
			// (shorthand binding field to a same-named identifier).
			fieldName := p.expect(token.IDENT, "field name").Lexeme
			if p.cur.Type == token.COLON {
				p.advance()
				vp.Fields = append(vp.Fields, p.parsePattern())
			} else {
				vp.Fields = append(vp.Fields, &ast.IdentPattern{Pos: p.curSpan(), Name: fieldName})
			}
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		p.expect(token.RBRACE, "'}'")
		return vp
	}
	p.advance() // (
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		vp.Fields = append(vp.Fields, p.parsePattern())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN, "')'")
	return vp
}

func isUpper(s string) bool {
	if len(s) == 0 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}
