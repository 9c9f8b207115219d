package analyzer

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/errdomain"
	"github.com/velalang/vela/internal/symbols"
	"github.com/velalang/vela/internal/types"
)

// pass1DeclareModule collects every top-level declaration into the
// symbol table, error-domain table, and function-signature table,
// reporting duplicate names. It gates the rest of the pipeline: when a
// function or type reuses a name that is already declared, the module
// has no coherent scope for passes 2-7 to resolve against, so those
// passes are skipped.
func (p *pipeline) pass1DeclareModule(m *ast.Module) {
	defaultDomain := ""

	p.declareAmbientPrimitives()

	for _, stmt := range m.Statements {
		switch s := stmt.(type) {
		case *ast.UseErrorDecl:
			defaultDomain = s.Domain

		case *ast.FunctionDecl:
			p.declareFunction(s, defaultDomain)

		case *ast.TypeDecl:
			p.declareType(s)

		case *ast.ErrorDecl:
			p.declareStandaloneError(s)

		case *ast.DomainDecl:
			p.declareDomain(s)

		case *ast.ConstDecl:
			p.declareConst(s)

		case *ast.VarDecl:
			p.declareVar(s)
		}
	}
}

func (p *pipeline) declareFunction(s *ast.FunctionDecl, defaultDomain string) {
	errDomain := s.ErrorDomain
	if errDomain == "" {
		errDomain = defaultDomain
	}
	sig := &funcSig{decl: s, effects: s.Effects, errorDomain: errDomain, pub: s.Pub}
	if _, exists := p.funcSigs[s.Name]; exists {
		p.errorAt(s.Pos, "duplicate declaration of function '"+s.Name+"'", "")
		p.fatal = true
		return
	}
	p.funcSigs[s.Name] = sig
	sym := &symbols.Symbol{Name: s.Name, Kind: symbols.KindFunction, DeclSpan: s.Pos,
		Effects: s.Effects, ErrorDomain: errDomain, Pub: s.Pub}
	if !p.symbols.Declare(sym) {
		p.errorAt(s.Pos, "duplicate declaration of '"+s.Name+"'", "")
		p.fatal = true
	}
	p.hover.Add(s.Pos, "function "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

func (p *pipeline) declareType(s *ast.TypeDecl) {
	if _, exists := p.typeDecls[s.Name]; exists {
		p.errorAt(s.Pos, "duplicate declaration of type '"+s.Name+"'", "")
		p.fatal = true
		return
	}
	p.typeDecls[s.Name] = s
	if s.CopyMove != "" {
		p.copyMove[s.Name] = s.CopyMove
	}
	sym := &symbols.Symbol{Name: s.Name, Kind: symbols.KindTypeDef, DeclSpan: s.Pos}
	if !p.symbols.Declare(sym) {
		p.errorAt(s.Pos, "duplicate declaration of '"+s.Name+"'", "")
		p.fatal = true
	}
	p.hover.Add(s.Pos, "type "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

func (p *pipeline) declareStandaloneError(s *ast.ErrorDecl) {
	// Every variant registers in the standalone table under its own
	// name, the name a union-of-names domain (`domain D = Name | ...;`)
	// refers to. The field-list form `error Name { field: Type }` has a
	// single variant called Name, so it registers as Name.
	for _, v := range s.Variants {
		var fieldNames []string
		for _, f := range v.Fields {
			fieldNames = append(fieldNames, f.Name)
		}
		variant := errdomain.Variant{Name: v.Name, FieldNames: fieldNames}
		if !p.domains.DeclareStandalone(variant) {
			p.errorAt(v.Pos, "duplicate error variant '"+v.Name+"'", "")
		}
	}
	p.hover.Add(s.Pos, "error "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

func (p *pipeline) declareDomain(s *ast.DomainDecl) {
	if len(s.UnionOf) > 0 {
		missing, ok := p.domains.DeclareUnion(s.Name, s.UnionOf)
		if !ok {
			p.errorAt(s.Pos, "duplicate declaration of domain '"+s.Name+"'", "")
			return
		}
		for _, m := range missing {
			p.errorAt(s.Pos, "domain '"+s.Name+"' references undeclared error type '"+m+"'", "")
		}
		return
	}
	var variants []errdomain.Variant
	for _, v := range s.Variants {
		var fieldNames []string
		for _, f := range v.Fields {
			fieldNames = append(fieldNames, f.Name)
		}
		variants = append(variants, errdomain.Variant{Name: v.Name, FieldNames: fieldNames})
	}
	if !p.domains.DeclareInline(s.Name, variants) {
		p.errorAt(s.Pos, "duplicate declaration of domain '"+s.Name+"'", "")
	}
	p.hover.Add(s.Pos, "domain "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

func (p *pipeline) declareConst(s *ast.ConstDecl) {
	if s.Name == "" {
		return // pattern-bound top-level const: skip name registration
	}
	sym := &symbols.Symbol{Name: s.Name, Kind: symbols.KindConstant, DeclSpan: s.Pos, Mutable: false}
	if !p.symbols.Declare(sym) {
		p.errorAt(s.Pos, "duplicate declaration of '"+s.Name+"'", "")
	}
	p.hover.Add(s.Pos, "const "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

func (p *pipeline) declareVar(s *ast.VarDecl) {
	sym := &symbols.Symbol{Name: s.Name, Kind: symbols.KindVariable, DeclSpan: s.Pos, Mutable: true}
	if !p.symbols.Declare(sym) {
		p.errorAt(s.Pos, "duplicate declaration of '"+s.Name+"'", "")
	}
	p.hover.Add(s.Pos, "var "+s.Name)
	p.locations.AddDef(s.Name, s.Pos)
}

// declareAmbientPrimitives seeds the root scope with the primitive
// effectful operations pass 4 gates (read_file, print, now, ...), plus
// any name the configuration's effect table adds, so pass 3 recognises
// them as callable instead of flagging every such call as an undefined
// identifier. Their signature is left open (unknown parameter and
// return types) since the calling convention for each primitive is not
// itself part of the type-checking contract; only the effect they
// require, enforced entirely by pass 4, is.
func (p *pipeline) declareAmbientPrimitives() {
	names := make(map[string]bool, len(primitiveEffects))
	for name := range primitiveEffects {
		names[name] = true
	}
	if p.cfg != nil {
		for name := range p.cfg.Effects {
			names[name] = true
		}
	}
	for name := range names {
		eff, _ := p.effectFor(name)
		fnType := p.ctx.Intern(&types.Function{Return: types.Unknown, Effects: []string{eff}})
		p.symbols.Declare(&symbols.Symbol{Name: name, Kind: symbols.KindFunction, Type: fnType})
	}
}
