package parser

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/source"
	"github.com/velalang/vela/internal/token"
)

// parseTypeExpr parses any of the type-expression variants of spec.md
// §3: simple, generic instance, fixed array/vector, view, nullable,
// function, record, and union types.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	base := p.parseTypeAtom()
	for p.cur.Type == token.QUESTION {
		pos := p.curSpan()
		p.advance()
		base = &ast.NullableType{Pos: pos, Elem: base}
	}
	return base
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	pos := p.curSpan()
	switch p.cur.Type {
	case token.LPAREN:
		return p.parseFunctionTypeFromParen(pos)
	case token.LBRACE:
		return p.parseRecordOrUnionType(pos)
	case token.IDENT:
		name := p.cur.Lexeme
		p.advance()
		switch name {
		case "Array":
			return p.parseFixedArrayType(pos)
		case "Vector":
			return p.parseVectorType(pos)
		case "View":
			return p.parseViewType(pos)
		}
		if p.cur.Type == token.LT {
			return p.parseGenericInstance(pos, name)
		}
		if p.cur.Type == token.LBRACE && isUpper(name) {
			return p.parseUnionTypeFrom(pos, name)
		}
		return &ast.SimpleType{Pos: pos, Name: name}
	default:
		p.errorf(p.cur, "expected type, found '"+p.cur.Lexeme+"'", "")
		tok := p.cur
		p.advance()
		return &ast.SimpleType{Pos: p.span(tok), Name: "Unit"}
	}
}

func (p *Parser) parseGenericInstance(pos source.Span, name string) ast.TypeExpr {
	p.advance() // <
	var args []ast.TypeExpr
	for p.cur.Type != token.GT && p.cur.Type != token.EOF {
		args = append(args, p.parseTypeExpr())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.GT, "'>'")
	return &ast.GenericInstanceType{Pos: pos, Name: name, Args: args}
}

// parseConstArg parses the second argument of Array<T, N>/Vector<T, N>,
// which is a const expression (a literal integer in α1, per spec.md §4.4.2).
func (p *Parser) parseConstArg() ast.Expression {
	return p.parseExpression(precLowest)
}

func (p *Parser) parseFixedArrayType(pos source.Span) ast.TypeExpr {
	p.expect(token.LT, "'<'")
	elem := p.parseTypeExpr()
	fa := &ast.FixedArrayType{Pos: pos, Elem: elem}
	if p.cur.Type == token.COMMA {
		p.advance()
		fa.N = p.parseConstArg()
	}
	p.expect(token.GT, "'>'")
	return fa
}

func (p *Parser) parseVectorType(pos source.Span) ast.TypeExpr {
	p.expect(token.LT, "'<'")
	elem := p.parseTypeExpr()
	vt := &ast.VectorType{Pos: pos, Elem: elem}
	if p.cur.Type == token.COMMA {
		p.advance()
		vt.N = p.parseConstArg()
	}
	p.expect(token.GT, "'>'")
	return vt
}

func (p *Parser) parseViewType(pos source.Span) ast.TypeExpr {
	p.expect(token.LT, "'<'")
	vt := &ast.ViewType{Pos: pos}
	if p.cur.Type == token.IDENT && p.cur.Lexeme == "mut" {
		vt.Mutable = true
		p.advance()
	}
	vt.Elem = p.parseTypeExpr()
	p.expect(token.GT, "'>'")
	return vt
}

func (p *Parser) parseFunctionTypeFromParen(pos source.Span) ast.TypeExpr {
	p.advance() // (
	ft := &ast.FunctionType{Pos: pos}
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		ft.Params = append(ft.Params, p.parseTypeExpr())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN, "')'")
	if p.cur.Type == token.ARROW {
		p.advance()
		ft.Return = p.parseTypeExpr()
	}
	ft.Effects = p.parseEffectClause()
	ft.ErrorDomain = p.parseErrorClause()
	return ft
}

func (p *Parser) parseRecordOrUnionType(pos source.Span) ast.TypeExpr {
	fields := p.parseRecordTypeFields()
	return &ast.RecordType{Pos: pos, Fields: fields}
}

func (p *Parser) parseRecordTypeFields() []*ast.RecordTypeField {
	p.expect(token.LBRACE, "'{'")
	var fields []*ast.RecordTypeField
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		name := p.expect(token.IDENT, "field name").Lexeme
		p.expect(token.COLON, "':'")
		typ := p.parseTypeExpr()
		fields = append(fields, &ast.RecordTypeField{Name: name, Type: typ})
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return fields
}

// parseUnionTypeFrom parses a standalone discriminated-union type
// expression: `Name1{...} | Name2{...} | ...`. The first variant name
// has already been consumed by the caller (parseTypeAtom), which peeked
// an upper-case identifier followed by `{`.
func (p *Parser) parseUnionTypeFrom(pos source.Span, firstName string) ast.TypeExpr {
	u := &ast.UnionType{Pos: pos}
	first := &ast.UnionVariant{Name: firstName, Fields: p.parseRecordTypeFields()}
	u.Variants = append(u.Variants, first)
	for p.cur.Type == token.PIPE {
		p.advance()
		name := p.expect(token.IDENT, "variant name").Lexeme
		var fields []*ast.RecordTypeField
		if p.cur.Type == token.LBRACE {
			fields = p.parseRecordTypeFields()
		}
		u.Variants = append(u.Variants, &ast.UnionVariant{Name: name, Fields: fields})
	}
	return u
}
