package analyzer

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/types"
)

func resultTypeOf(t types.Type) (*types.Result, bool) {
	r, ok := t.(*types.Result)
	return r, ok
}

// pass5ErrorDomainCheckModule verifies ok/err/check/ensure are only
// used inside fallible functions, that every `err Variant{...}` names a
// real case of the enclosing function's domain with the right fields,
// and that `check` only narrows into a domain that is a superset of
// the checked expression's own domain (spec.md §4.5).
func (p *pipeline) pass5ErrorDomainCheckModule(m *ast.Module) {
	for _, stmt := range m.Statements {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		domain := fn.ErrorDomain
		if sig, ok := p.funcSigs[fn.Name]; ok {
			domain = sig.errorDomain // includes a `use error D;` default
		}
		p.errDomainCheckBlock(fn.Body, domain)
	}
}

func (p *pipeline) errDomainCheckBlock(b *ast.Block, domain string) {
	for _, stmt := range b.Statements {
		p.errDomainCheckStmt(stmt, domain)
	}
}

func (p *pipeline) errDomainCheckStmt(stmt ast.Statement, domain string) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.VarDecl:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.ReturnStmt:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.DeferStmt:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.ExprStmt:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.AssignStmt:
		p.errDomainCheckExpr(s.Value, domain)
	case *ast.IfStmt:
		p.errDomainCheckExpr(s.Cond, domain)
		p.errDomainCheckBlock(s.Then, domain)
		if s.Else != nil {
			p.errDomainCheckStmt(s.Else, domain)
		}
	case *ast.WhileStmt:
		p.errDomainCheckExpr(s.Cond, domain)
		p.errDomainCheckBlock(s.Body, domain)
	case *ast.ForStmt:
		p.errDomainCheckExpr(s.Iterable, domain)
		p.errDomainCheckBlock(s.Body, domain)
	case *ast.MatchStmt:
		p.errDomainCheckExpr(s.Scrutinee, domain)
		for _, arm := range s.Arms {
			p.errDomainCheckExpr(arm.Body, domain)
		}
	case *ast.Block:
		p.errDomainCheckBlock(s, domain)
	}
}

func (p *pipeline) errDomainCheckExpr(e ast.Expression, domain string) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ast.OkExpr:
		p.errDomainCheckExpr(ex.Value, domain)
	case *ast.ErrExpr:
		p.checkErrVariantDomain(ex, domain)
		for _, f := range ex.Fields {
			p.errDomainCheckExpr(f.Value, domain)
		}
	case *ast.CheckExpr:
		p.errDomainCheckExpr(ex.Value, domain)
		p.checkCheckPropagation(ex, domain)
	case *ast.EnsureExpr:
		p.errDomainCheckExpr(ex.Cond, domain)
		p.errDomainCheckExpr(ex.ElseError, domain)
	case *ast.MapErrorExpr:
		p.errDomainCheckExpr(ex.Value, domain)
	case *ast.BinaryExpr:
		p.errDomainCheckExpr(ex.Left, domain)
		p.errDomainCheckExpr(ex.Right, domain)
	case *ast.UnaryExpr:
		p.errDomainCheckExpr(ex.Operand, domain)
	case *ast.CallExpr:
		p.errDomainCheckExpr(ex.Callee, domain)
		for _, a := range ex.Args {
			p.errDomainCheckExpr(a, domain)
		}
	case *ast.FieldAccessExpr:
		p.errDomainCheckExpr(ex.Target, domain)
	case *ast.IndexExpr:
		p.errDomainCheckExpr(ex.Target, domain)
		p.errDomainCheckExpr(ex.Index, domain)
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			p.errDomainCheckExpr(el, domain)
		}
	case *ast.RecordLiteral:
		for _, f := range ex.Fields {
			p.errDomainCheckExpr(f.Value, domain)
		}
	case *ast.RangeExpr:
		p.errDomainCheckExpr(ex.Low, domain)
		p.errDomainCheckExpr(ex.High, domain)
	case *ast.MatchExpr:
		p.errDomainCheckExpr(ex.Scrutinee, domain)
		for _, arm := range ex.Arms {
			p.errDomainCheckExpr(arm.Body, domain)
		}
	case *ast.AnonFunctionExpr:
		p.errDomainCheckBlock(ex.Body, ex.ErrorDomain)
	case *ast.UnsafeCastExpr:
		p.errDomainCheckExpr(ex.Value, domain)
	case *ast.ComptimeExpr:
		p.errDomainCheckExpr(ex.Value, domain)
	case *ast.ContextBlockExpr:
		for _, entry := range ex.Entries {
			p.errDomainCheckExpr(entry.Value, domain)
		}
		p.errDomainCheckBlock(ex.Body, domain)
	}
}

func (p *pipeline) checkErrVariantDomain(ex *ast.ErrExpr, domain string) {
	if domain == "" {
		p.errorAt(ex.Pos, "'err' used outside a function with a declared error domain", "")
		return
	}
	d, ok := p.domains.Lookup(domain)
	if !ok {
		return // domain itself already reported missing in pass 1
	}
	variant, found := d.Variant(ex.Variant)
	if !found {
		p.errorAt(ex.Pos, "'"+ex.Variant+"' is not a variant of error domain '"+domain+"'", "")
		return
	}
	given := make(map[string]bool, len(ex.Fields))
	for _, f := range ex.Fields {
		given[f.Name] = true
		if !containsString(variant.FieldNames, f.Name) {
			p.errorAt(f.Pos, "variant '"+ex.Variant+"' has no field '"+f.Name+"'", "")
		}
	}
	for _, fn := range variant.FieldNames {
		if !given[fn] {
			p.errorAt(ex.Pos, "missing field '"+fn+"' in 'err "+ex.Variant+"' construction", "")
		}
	}
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// checkCheckPropagation applies the domain-subset propagation rule: a
// `check` expression is only legal when the checked value's own error
// domain (inferred from its static type during pass 3) is a subset of
// the enclosing function's domain, so every error it can produce is
// already representable in the caller.
func (p *pipeline) checkCheckPropagation(ex *ast.CheckExpr, domain string) {
	if domain == "" {
		p.errorAt(ex.Pos, "'check' used outside a function with a declared error domain", "")
		return
	}
	t, ok := p.exprTypes[ex.Value]
	if !ok {
		return
	}
	res, ok := resultTypeOf(t)
	if !ok || res.Domain == "" || res.Domain == domain {
		return
	}
	if !p.domains.IsSubsetDomain(res.Domain, domain) {
		p.errorAt(ex.Pos, "'check' propagates domain '"+res.Domain+"' which is not a subset of the enclosing function's domain '"+domain+"'", "add the missing variants to '"+domain+"', or use 'map_error' to translate them")
	}
}
