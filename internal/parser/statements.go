package parser

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/token"
)

func (p *Parser) parsePackageDecl() *ast.PackageDecl {
	pos := p.curSpan()
	p.advance() // package
	name := p.expect(token.IDENT, "package name").Lexeme
	decl := &ast.PackageDecl{Pos: pos, Name: name}
	if p.cur.Type == token.LPAREN {
		p.advance()
		for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
			decl.Exports = append(decl.Exports, p.cur.Lexeme)
			p.advance()
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		p.expect(token.RPAREN, "')'")
	}
	p.consumeSemiOrSync()
	return decl
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	pos := p.curSpan()
	p.advance() // import
	path := p.expect(token.STRING, "import path").Lexeme
	decl := &ast.ImportDecl{Pos: pos, Path: path}
	if p.cur.Type == token.KW_AS {
		p.advance()
		decl.Alias = p.expect(token.IDENT, "import alias").Lexeme
	}
	p.consumeSemiOrSync()
	return decl
}

func (p *Parser) consumeSemiOrSync() {
	if p.cur.Type == token.SEMI {
		p.advance()
		return
	}
	if p.cur.Type == token.EOF || p.cur.Type == token.RBRACE {
		return
	}
	p.errorf(p.cur, "expected ';', found '"+p.cur.Lexeme+"'", "insert a ';' to terminate the statement")
	p.synchronize()
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.KW_CONST:
		return p.parseConstDecl()
	case token.KW_VAR:
		return p.parseVarDecl()
	case token.KW_PUB:
		pub := true
		p.advance()
		if p.cur.Type != token.KW_FUNCTION {
			p.errorf(p.cur, "expected 'function' after 'pub'", "")
			p.synchronize()
			return nil
		}
		return p.parseFunctionDecl(pub)
	case token.KW_FUNCTION:
		return p.parseFunctionDecl(false)
	case token.KW_TYPE:
		return p.parseTypeDecl()
	case token.KW_ERROR:
		return p.parseErrorDecl()
	case token.KW_DOMAIN:
		return p.parseDomainDecl()
	case token.KW_USE:
		return p.parseUseErrorDecl()
	case token.KW_RETURN:
		return p.parseReturnStmt()
	case token.KW_DEFER:
		return p.parseDeferStmt()
	case token.KW_IF:
		return p.parseIfStmt()
	case token.KW_WHILE:
		return p.parseWhileStmt()
	case token.KW_FOR:
		return p.parseForStmt()
	case token.KW_MATCH:
		return p.parseMatchStmt()
	case token.KW_BREAK:
		pos := p.curSpan()
		p.advance()
		p.consumeSemiOrSync()
		return &ast.BreakStmt{Pos: pos}
	case token.KW_CONTINUE:
		pos := p.curSpan()
		p.advance()
		p.consumeSemiOrSync()
		return &ast.ContinueStmt{Pos: pos}
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMI:
		p.advance()
		return nil
	case token.EOF:
		return nil
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.curSpan()
	p.expect(token.LBRACE, "'{'")
	b := &ast.Block{Pos: pos}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		before := p.cur
		stmt := p.parseStatement()
		if stmt != nil {
			b.Statements = append(b.Statements, stmt)
		}
		if p.cur == before {
			p.errorf(p.cur, "unexpected token '"+p.cur.Lexeme+"' in block", "")
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return b
}

func (p *Parser) parseConstDecl() *ast.ConstDecl {
	pos := p.curSpan()
	p.advance() // const
	decl := &ast.ConstDecl{Pos: pos}
	if p.cur.Type == token.LPAREN {
		decl.Pattern = p.parsePattern()
	} else {
		decl.Name = p.expect(token.IDENT, "constant name").Lexeme
	}
	if p.cur.Type == token.COLON {
		p.advance()
		decl.Type = p.parseTypeExpr()
	}
	p.expect(token.ASSIGN, "'='")
	decl.Value = p.parseExpression(precLowest)
	p.consumeSemiOrSync()
	return decl
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.curSpan()
	p.advance() // var
	decl := &ast.VarDecl{Pos: pos}
	decl.Name = p.expect(token.IDENT, "variable name").Lexeme
	if p.cur.Type == token.COLON {
		p.advance()
		decl.Type = p.parseTypeExpr()
	}
	if p.cur.Type == token.ASSIGN {
		p.advance()
		decl.Value = p.parseExpression(precLowest)
	}
	p.consumeSemiOrSync()
	return decl
}

func (p *Parser) parseTypeParamList() []*ast.TypeParam {
	if p.cur.Type != token.LT {
		return nil
	}
	p.advance()
	var params []*ast.TypeParam
	for p.cur.Type != token.GT && p.cur.Type != token.EOF {
		tp := &ast.TypeParam{Pos: p.curSpan()}
		switch p.cur.Type {
		case token.KW_IN:
			tp.Variance = ast.Contravariant
			p.advance()
		case token.KW_OUT:
			tp.Variance = ast.Covariant
			p.advance()
		}
		if p.cur.Type == token.KW_CONST {
			tp.IsConst = true
			p.advance()
		}
		tp.Name = p.expect(token.IDENT, "type parameter name").Lexeme
		if tp.IsConst {
			p.expect(token.COLON, "':'")
			tp.ConstType = p.parseTypeExpr()
		} else if p.cur.Type == token.COLON {
			p.advance()
			tp.Constraint = p.parseTypeExpr()
		}
		params = append(params, tp)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.GT, "'>'")
	return params
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN, "'('")
	var params []*ast.Param
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		param := &ast.Param{Pos: p.curSpan()}
		if p.cur.Type == token.KW_INOUT {
			param.Inout = true
			p.advance()
		}
		param.Name = p.expect(token.IDENT, "parameter name").Lexeme
		p.expect(token.COLON, "':'")
		param.Type = p.parseTypeExpr()
		params = append(params, param)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN, "')'")
	return params
}

func (p *Parser) parseEffectClause() []string {
	if p.cur.Type != token.KW_EFFECTS {
		return nil
	}
	p.advance()
	p.expect(token.LBRACKET, "'['")
	var effects []string
	for p.cur.Type != token.RBRACKET && p.cur.Type != token.EOF {
		effects = append(effects, p.cur.Lexeme)
		p.advance()
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACKET, "']'")
	return effects
}

func (p *Parser) parseErrorClause() string {
	if p.cur.Type != token.KW_ERROR {
		return ""
	}
	p.advance()
	return p.expect(token.IDENT, "error domain name").Lexeme
}

func (p *Parser) parseFunctionDecl(pub bool) *ast.FunctionDecl {
	pos := p.curSpan()
	p.advance() // function
	f := &ast.FunctionDecl{Pos: pos, Pub: pub}
	f.Name = p.expect(token.IDENT, "function name").Lexeme
	f.TypeParams = p.parseTypeParamList()
	f.Params = p.parseParamList()
	if p.cur.Type == token.ARROW {
		p.advance()
		f.ReturnType = p.parseTypeExpr()
	}
	f.Effects = p.parseEffectClause()
	f.ErrorDomain = p.parseErrorClause()
	f.Body = p.parseBlock()
	return f
}

func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	pos := p.curSpan()
	p.advance() // type
	t := &ast.TypeDecl{Pos: pos}
	t.Name = p.expect(token.IDENT, "type name").Lexeme
	t.TypeParams = p.parseTypeParamList()
	p.expect(token.ASSIGN, "'='")
	if p.cur.Type == token.IDENT && (p.cur.Lexeme == "copy" || p.cur.Lexeme == "move") {
		t.CopyMove = p.cur.Lexeme
		p.advance()
	}
	t.Underlying = p.parseTypeExpr()
	p.consumeSemiOrSync()
	return t
}

func (p *Parser) parseFieldList() []*ast.Param {
	p.expect(token.LBRACE, "'{'")
	var fields []*ast.Param
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		f := &ast.Param{Pos: p.curSpan()}
		f.Name = p.expect(token.IDENT, "field name").Lexeme
		p.expect(token.COLON, "':'")
		f.Type = p.parseTypeExpr()
		fields = append(fields, f)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return fields
}

func (p *Parser) parseErrorVariant() *ast.ErrorVariant {
	v := &ast.ErrorVariant{Pos: p.curSpan()}
	v.Name = p.expect(token.IDENT, "variant name").Lexeme
	if p.cur.Type == token.LBRACE {
		v.Fields = p.parseFieldList()
	}
	return v
}

func (p *Parser) parseErrorDecl() *ast.ErrorDecl {
	pos := p.curSpan()
	p.advance() // error
	e := &ast.ErrorDecl{Pos: pos}
	e.Name = p.expect(token.IDENT, "error type name").Lexeme
	p.expect(token.LBRACE, "'{'")
	if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
		// `error Name { field: Type, ... }`: a single variant named Name.
		v := &ast.ErrorVariant{Pos: pos, Name: e.Name}
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			f := &ast.Param{Pos: p.curSpan()}
			f.Name = p.expect(token.IDENT, "field name").Lexeme
			p.expect(token.COLON, "':'")
			f.Type = p.parseTypeExpr()
			v.Fields = append(v.Fields, f)
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		e.Variants = append(e.Variants, v)
	}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		e.Variants = append(e.Variants, p.parseErrorVariant())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return e
}

func (p *Parser) parseDomainDecl() *ast.DomainDecl {
	pos := p.curSpan()
	p.advance() // domain
	d := &ast.DomainDecl{Pos: pos}
	d.Name = p.expect(token.IDENT, "domain name").Lexeme
	p.expect(token.ASSIGN, "'='")
	if p.cur.Type == token.LBRACE {
		p.advance()
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			d.Variants = append(d.Variants, p.parseErrorVariant())
			if p.cur.Type == token.COMMA {
				p.advance()
			}
		}
		p.expect(token.RBRACE, "'}'")
		// The closing brace ends an inline domain; a trailing ';' is optional.
		if p.cur.Type == token.SEMI {
			p.advance()
		}
		return d
	} else {
		d.UnionOf = append(d.UnionOf, p.expect(token.IDENT, "error type name").Lexeme)
		for p.cur.Type == token.PIPE {
			p.advance()
			d.UnionOf = append(d.UnionOf, p.expect(token.IDENT, "error type name").Lexeme)
		}
	}
	p.consumeSemiOrSync()
	return d
}

func (p *Parser) parseUseErrorDecl() *ast.UseErrorDecl {
	pos := p.curSpan()
	p.advance() // use
	p.expect(token.KW_ERROR, "'error'")
	name := p.expect(token.IDENT, "error domain name").Lexeme
	p.consumeSemiOrSync()
	return &ast.UseErrorDecl{Pos: pos, Domain: name}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.curSpan()
	p.advance()
	r := &ast.ReturnStmt{Pos: pos}
	if p.cur.Type != token.SEMI && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		r.Value = p.parseExpression(precLowest)
	}
	p.consumeSemiOrSync()
	return r
}

func (p *Parser) parseDeferStmt() *ast.DeferStmt {
	pos := p.curSpan()
	p.advance()
	d := &ast.DeferStmt{Pos: pos, Value: p.parseExpression(precLowest)}
	p.consumeSemiOrSync()
	return d
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.curSpan()
	p.advance() // if
	s := &ast.IfStmt{Pos: pos}
	s.Cond = p.parseExpression(precLowest)
	s.Then = p.parseBlock()
	if p.cur.Type == token.KW_ELSE {
		p.advance()
		if p.cur.Type == token.KW_IF {
			s.Else = p.parseIfStmt()
		} else {
			s.Else = p.parseBlock()
		}
	}
	return s
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.curSpan()
	p.advance()
	return &ast.WhileStmt{Pos: pos, Cond: p.parseExpression(precLowest), Body: p.parseBlock()}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	pos := p.curSpan()
	p.advance() // for
	name := p.expect(token.IDENT, "loop variable").Lexeme
	p.expect(token.KW_IN, "'in'")
	iter := p.parseExpression(precLowest)
	body := p.parseBlock()
	return &ast.ForStmt{Pos: pos, Binding: name, Iterable: iter, Body: body}
}

func (p *Parser) parseMatchArms() []*ast.MatchArm {
	p.expect(token.LBRACE, "'{'")
	var arms []*ast.MatchArm
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		arm := &ast.MatchArm{Pos: p.curSpan()}
		arm.Pattern = p.parsePattern()
		if p.cur.Type == token.KW_IF {
			p.advance()
			arm.Guard = p.parseExpression(precLowest)
		}
		p.expect(token.ARROW, "'->'")
		arm.Body = p.parseExpression(precLowest)
		arms = append(arms, arm)
		if p.cur.Type == token.SEMI || p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return arms
}

func (p *Parser) parseMatchStmt() *ast.MatchStmt {
	pos := p.curSpan()
	p.advance() // match
	scrut := p.parseExpression(precLowest)
	arms := p.parseMatchArms()
	return &ast.MatchStmt{Pos: pos, Scrutinee: scrut, Arms: arms}
}

var assignOps = map[token.Type]string{
	token.ASSIGN: "=",
}

func (p *Parser) parseExprOrAssignStmt() ast.Statement {
	pos := p.curSpan()
	expr := p.parseExpression(precLowest)
	if op, ok := assignOps[p.cur.Type]; ok {
		p.advance()
		value := p.parseExpression(precLowest)
		p.consumeSemiOrSync()
		return &ast.AssignStmt{Pos: pos, Target: expr, Op: op, Value: value}
	}
	p.consumeSemiOrSync()
	return &ast.ExprStmt{Pos: pos, Value: expr}
}
