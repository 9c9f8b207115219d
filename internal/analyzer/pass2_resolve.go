package analyzer

import (
	"strconv"

	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/types"
)

// pass2ResolveModule resolves every declared type expression — type
// aliases, function signatures, top-level var/const annotations — into
// the interned types.Type representation, and records named-type
// underlyings so pass 3 can look up field and variant shapes.
func (p *pipeline) pass2ResolveModule(m *ast.Module) {
	// Seed named-type placeholders first so mutually-referencing types
	// resolve without needing a topological order.
	for name, decl := range p.typeDecls {
		_ = decl
		p.resolved[name] = p.ctx.Intern(&types.Named{Name: name})
	}

	for name, decl := range p.typeDecls {
		named := p.resolved[name].(*types.Named)
		underlying := p.resolveTypeExpr(decl.Underlying)
		named.SetUnderlying(underlying)
	}

	for _, stmt := range m.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			p.resolveFunctionSig(s)
		case *ast.ConstDecl:
			if s.Type != nil {
				p.resolveTypeExpr(s.Type)
			}
		case *ast.VarDecl:
			if s.Type != nil {
				p.resolveTypeExpr(s.Type)
			}
		}
	}
}

func (p *pipeline) resolveFunctionSig(s *ast.FunctionDecl) {
	sig, ok := p.funcSigs[s.Name]
	if !ok {
		return
	}
	for _, param := range s.Params {
		sig.paramTypes = append(sig.paramTypes, p.resolveTypeExpr(param.Type))
	}
	if s.ReturnType != nil {
		sig.returnType = p.resolveTypeExpr(s.ReturnType)
	} else {
		sig.returnType = types.Unit
	}
}

// resolveTypeExpr turns an ast.TypeExpr into an interned types.Type,
// consulting the fixed primitive/capability tables, the generic
// built-ins (Array/Vector/View), and user type declarations in that
// order, per spec.md §4.4.2's resolution-order rule.
func (p *pipeline) resolveTypeExpr(t ast.TypeExpr) types.Type {
	if t == nil {
		return types.Unit
	}
	switch te := t.(type) {
	case *ast.SimpleType:
		return p.resolveSimpleTypeName(te.Name)
	case *ast.GenericInstanceType:
		return p.resolveGenericInstance(te)
	case *ast.FixedArrayType:
		elem := p.resolveTypeExpr(te.Elem)
		n := p.constIntOf(te.N)
		return p.ctx.Intern(&types.Array{Elem: elem, N: n})
	case *ast.VectorType:
		elem := p.resolveTypeExpr(te.Elem)
		n := p.constIntOf(te.N)
		return p.ctx.Intern(&types.Vector{Elem: elem, N: n})
	case *ast.ViewType:
		elem := p.resolveTypeExpr(te.Elem)
		return p.ctx.Intern(&types.View{Elem: elem, Mutable: te.Mutable})
	case *ast.NullableType:
		elem := p.resolveTypeExpr(te.Elem)
		return p.ctx.Intern(&types.Nullable{Elem: elem})
	case *ast.FunctionType:
		var params []types.Type
		for _, pt := range te.Params {
			params = append(params, p.resolveTypeExpr(pt))
		}
		ret := p.resolveTypeExpr(te.Return)
		return p.ctx.Intern(&types.Function{Params: params, Return: ret, Effects: te.Effects, ErrorDomain: te.ErrorDomain})
	case *ast.RecordType:
		var names []string
		var fieldTypes []types.Type
		for _, f := range te.Fields {
			names = append(names, f.Name)
			fieldTypes = append(fieldTypes, p.resolveTypeExpr(f.Type))
		}
		return p.ctx.Intern(&types.Record{FieldNames: names, FieldTypes: fieldTypes})
	case *ast.UnionType:
		var variants []types.UnionVariant
		for _, v := range te.Variants {
			var names []string
			var fieldTypes []types.Type
			for _, f := range v.Fields {
				names = append(names, f.Name)
				fieldTypes = append(fieldTypes, p.resolveTypeExpr(f.Type))
			}
			variants = append(variants, types.UnionVariant{Name: v.Name, FieldNames: names, FieldTypes: fieldTypes})
		}
		return p.ctx.Intern(&types.Union{Variants: variants})
	}
	return types.Unknown
}

func (p *pipeline) resolveSimpleTypeName(name string) types.Type {
	if prim, ok := types.LookupPrimitive(name); ok {
		return prim
	}
	if cap, ok := types.LookupCapability(capabilityNameFor(name)); ok {
		return cap
	}
	if named, ok := p.resolved[name]; ok {
		return named
	}
	if _, ok := p.typeDecls[name]; ok {
		// Declared but not yet in p.resolved (shouldn't happen given the
		// seeding loop, but keeps this function total).
		return p.ctx.Intern(&types.Named{Name: name})
	}
	return types.Unknown
}

// capabilityNameFor maps a capitalized capability type spelling
// (spec.md §3's `Fs`, `Net`, etc.) to its lower-case effect key.
func capabilityNameFor(name string) string {
	switch name {
	case "Fs":
		return "fs"
	case "Net":
		return "net"
	case "Io":
		return "io"
	case "Time":
		return "time"
	case "Rng":
		return "rng"
	case "Alloc":
		return "alloc"
	case "Cpu":
		return "cpu"
	case "Atomics":
		return "atomics"
	case "Simd":
		return "simd"
	case "Ffi":
		return "ffi"
	}
	return ""
}

func (p *pipeline) resolveGenericInstance(te *ast.GenericInstanceType) types.Type {
	var args []types.Type
	for _, a := range te.Args {
		args = append(args, p.resolveTypeExpr(a))
	}
	gi := &types.GenericInstance{BaseName: te.Name, Args: args}
	if decl, ok := p.typeDecls[te.Name]; ok {
		gi.SetUnderlying(p.resolveTypeExpr(decl.Underlying))
	}
	return p.ctx.Intern(gi)
}

// constIntOf evaluates a const-generic size argument. Only bare integer
// literals are supported; anything else is reported as an invalid const
// expression and resolves to 0 (dynamic-sized).
func (p *pipeline) constIntOf(e ast.Expression) int {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		if e != nil {
			p.errorAt(e.Span(), "invalid const expression: size argument must be an integer literal", "")
		}
		return 0
	}
	n, err := strconv.ParseInt(lit.Text, 0, 64)
	if err != nil {
		return 0
	}
	return int(n)
}
