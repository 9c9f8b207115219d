package parser

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/source"
	"github.com/velalang/vela/internal/token"
)

func (p *Parser) precedenceOf(t token.Type) int {
	if pr, ok := binaryPrec[t]; ok {
		return pr
	}
	return precLowest
}

// parseExpression implements Pratt-style precedence climbing per
// spec.md §4.3's table.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		prec := p.precedenceOf(p.cur.Type)
		if prec <= minPrec || prec == precLowest {
			break
		}
		op := p.cur
		if op.Type == token.DOT_DOT || op.Type == token.DOT_DOT_EQ {
			pos := p.curSpan()
			inclusive := op.Type == token.DOT_DOT_EQ
			p.advance()
			high := p.parseExpression(precRange)
			left = &ast.RangeExpr{Pos: pos, Low: left, High: high, Inclusive: inclusive}
			continue
		}
		p.advance()
		right := p.parseExpression(prec)
		left = &ast.BinaryExpr{Pos: p.span(op), Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case token.BANG, token.MINUS, token.TILDE:
		pos := p.curSpan()
		op := p.cur.Lexeme
		p.advance()
		operand := p.parseExpression(precPrefix)
		return &ast.UnaryExpr{Pos: pos, Op: op, Operand: operand}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case token.LPAREN:
			pos := p.curSpan()
			p.advance()
			var args []ast.Expression
			for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
				args = append(args, p.parseExpression(precLowest))
				if p.cur.Type == token.COMMA {
					p.advance()
				}
			}
			p.expect(token.RPAREN, "')'")
			expr = &ast.CallExpr{Pos: pos, Callee: expr, Args: args}
		case token.DOT:
			pos := p.curSpan()
			p.advance()
			field := p.expect(token.IDENT, "field name").Lexeme
			expr = &ast.FieldAccessExpr{Pos: pos, Target: expr, Field: field}
		case token.LBRACKET:
			pos := p.curSpan()
			p.advance()
			idx := p.parseExpression(precLowest)
			p.expect(token.RBRACKET, "']'")
			expr = &ast.IndexExpr{Pos: pos, Target: expr, Index: idx}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	pos := p.curSpan()
	switch p.cur.Type {
	case token.INT:
		lit := &ast.Literal{Pos: pos, Kind: ast.LitInt, Text: p.cur.Lexeme}
		p.advance()
		return lit
	case token.FLOAT:
		lit := &ast.Literal{Pos: pos, Kind: ast.LitFloat, Text: p.cur.Lexeme}
		p.advance()
		return lit
	case token.STRING:
		lit := &ast.Literal{Pos: pos, Kind: ast.LitString, Text: p.cur.Lexeme}
		p.advance()
		return lit
	case token.CHAR:
		lit := &ast.Literal{Pos: pos, Kind: ast.LitChar, Text: p.cur.Lexeme}
		p.advance()
		return lit
	case token.KW_TRUE:
		p.advance()
		return &ast.Literal{Pos: pos, Kind: ast.LitBool, Text: "true"}
	case token.KW_FALSE:
		p.advance()
		return &ast.Literal{Pos: pos, Kind: ast.LitBool, Text: "false"}
	case token.KW_NULL:
		p.advance()
		return &ast.Literal{Pos: pos, Kind: ast.LitNull, Text: "null"}
	case token.IDENT:
		name := p.cur.Lexeme
		p.advance()
		if p.cur.Type == token.LBRACE && isRecordOpener(name) {
			return p.parseRecordLiteralNamed(pos, name)
		}
		return &ast.Identifier{Pos: pos, Name: name}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expect(token.RPAREN, "')'")
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseRecordLiteralNamed(pos, "")
	case token.KW_OK:
		p.advance()
		return &ast.OkExpr{Pos: pos, Value: p.parseExpression(precPrefix)}
	case token.KW_ERR:
		return p.parseErrExpr()
	case token.KW_CHECK:
		return p.parseCheckExpr()
	case token.KW_ENSURE:
		return p.parseEnsureExpr()
	case token.KW_MAP_ERROR:
		return p.parseMapErrorExpr()
	case token.KW_MATCH:
		p.advance()
		scrut := p.parseExpression(precLowest)
		arms := p.parseMatchArms()
		return &ast.MatchExpr{Pos: pos, Scrutinee: scrut, Arms: arms}
	case token.KW_FUNCTION:
		return p.parseAnonFunction()
	case token.KW_UNSAFE_CAST:
		return p.parseUnsafeCast()
	case token.KW_COMPTIME:
		p.advance()
		return &ast.ComptimeExpr{Pos: pos, Value: p.parseExpression(precPrefix)}
	case token.KW_WITH:
		return p.parseContextBlock()
	default:
		p.errorf(p.cur, "expected expression, found '"+p.cur.Lexeme+"'", "")
		tok := p.cur
		p.advance()
		return &ast.Literal{Pos: p.span(tok), Kind: ast.LitUnit, Text: "()"}
	}
}

// isRecordOpener decides whether `Name {` starts a record literal rather
// than a bare identifier followed by an unrelated block (an `if`/`while`/
// `for`/`match` condition's block). Record and variant type names are
// capitalized by convention, so only those trigger the record-literal
// reading; this keeps `if cond { ... }` unambiguous without parens.
func isRecordOpener(name string) bool {
	return isUpper(name)
}

func (p *Parser) parseRecordFields() []*ast.RecordField {
	p.expect(token.LBRACE, "'{'")
	var fields []*ast.RecordField
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		fpos := p.curSpan()
		name := p.expect(token.IDENT, "field name").Lexeme
		p.expect(token.COLON, "':'")
		value := p.parseExpression(precLowest)
		fields = append(fields, &ast.RecordField{Pos: fpos, Name: name, Value: value})
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return fields
}

func (p *Parser) parseRecordLiteralNamed(pos source.Span, typeName string) ast.Expression {
	fields := p.parseRecordFields()
	return &ast.RecordLiteral{Pos: pos, TypeName: typeName, Fields: fields}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.curSpan()
	p.advance() // [
	var elems []ast.Expression
	for p.cur.Type != token.RBRACKET && p.cur.Type != token.EOF {
		elems = append(elems, p.parseExpression(precLowest))
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACKET, "']'")
	return &ast.ArrayLiteral{Pos: pos, Elements: elems}
}

func (p *Parser) parseErrExpr() ast.Expression {
	pos := p.curSpan()
	p.advance() // err
	variant := p.expect(token.IDENT, "error variant name").Lexeme
	var fields []*ast.RecordField
	if p.cur.Type == token.LBRACE {
		fields = p.parseRecordFields()
	}
	return &ast.ErrExpr{Pos: pos, Variant: variant, Fields: fields}
}

func (p *Parser) parseCheckExpr() ast.Expression {
	pos := p.curSpan()
	p.advance() // check
	value := p.parseExpression(precPrefix)
	c := &ast.CheckExpr{Pos: pos, Value: value}
	if p.cur.Type == token.KW_WITH {
		p.advance()
		c.Frame = p.parseRecordFields()
	}
	return c
}

func (p *Parser) parseEnsureExpr() ast.Expression {
	pos := p.curSpan()
	p.advance() // ensure
	cond := p.parseExpression(precOr)
	p.expect(token.KW_ELSE, "'else'")
	p.expect(token.KW_ERR, "'err'")
	elseErr := p.parseErrExpr()
	return &ast.EnsureExpr{Pos: pos, Cond: cond, ElseError: elseErr}
}

func (p *Parser) parseMapErrorExpr() ast.Expression {
	pos := p.curSpan()
	p.advance() // map_error
	value := p.parseExpression(precPrefix)
	if p.cur.Type != token.IDENT || p.cur.Lexeme != "using" {
		p.errorf(p.cur, "expected 'using', found '"+p.cur.Lexeme+"'", "")
	} else {
		p.advance()
	}
	p.expect(token.LPAREN, "'('")
	param := p.expect(token.IDENT, "mapper parameter").Lexeme
	p.expect(token.FAT_ARROW, "'=>'")
	mapper := p.parseExpression(precLowest)
	p.expect(token.RPAREN, "')'")
	return &ast.MapErrorExpr{Pos: pos, Value: value, Param: param, Mapper: mapper}
}

func (p *Parser) parseAnonFunction() ast.Expression {
	pos := p.curSpan()
	p.advance() // function
	a := &ast.AnonFunctionExpr{Pos: pos}
	a.Params = p.parseParamList()
	if p.cur.Type == token.ARROW {
		p.advance()
		a.ReturnType = p.parseTypeExpr()
	}
	a.Effects = p.parseEffectClause()
	a.ErrorDomain = p.parseErrorClause()
	a.Body = p.parseBlock()
	return a
}

func (p *Parser) parseUnsafeCast() ast.Expression {
	pos := p.curSpan()
	p.advance() // unsafe_cast
	p.expect(token.LT, "'<'")
	target := p.parseTypeExpr()
	p.expect(token.GT, "'>'")
	p.expect(token.LPAREN, "'('")
	value := p.parseExpression(precLowest)
	p.expect(token.RPAREN, "')'")
	return &ast.UnsafeCastExpr{Pos: pos, Target: target, Value: value}
}

func (p *Parser) parseContextBlock() ast.Expression {
	pos := p.curSpan()
	p.advance() // with
	p.expect(token.KW_CONTEXT, "'context'")
	p.expect(token.LBRACE, "'{'")
	var entries []*ast.ContextEntry
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		key := p.expect(token.IDENT, "context key").Lexeme
		p.expect(token.COLON, "':'")
		value := p.parseExpression(precLowest)
		entries = append(entries, &ast.ContextEntry{Key: key, Value: value})
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	p.expect(token.KW_IN, "'in'")
	body := p.parseBlock()
	return &ast.ContextBlockExpr{Pos: pos, Entries: entries, Body: body}
}
