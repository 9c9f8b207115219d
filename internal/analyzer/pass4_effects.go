package analyzer

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/source"
)

// primitiveEffects maps a primitive operation name to the capability
// effect it requires, per SPEC_FULL.md's ambient effect→operation
// table (mirrored in internal/config for the YAML-overridable copy).
// Calls to functions outside this table only require whatever effects
// that function itself declares — this table exists for the built-in
// I/O-shaped primitives a program can call without an explicit
// user-level declaration standing between it and the capability.
var primitiveEffects = map[string]string{
	"read_file":   "fs",
	"write_file":  "fs",
	"remove_file": "fs",
	"tcp_connect": "net",
	"tcp_listen":  "net",
	"udp_socket":  "net",
	"print":       "io",
	"read_line":   "io",
	"now":         "time",
	"sleep":       "time",
	"random_u64":  "rng",
	"random_seed": "rng",
	"alloc":       "alloc",
	"free":        "alloc",
	"cpu_id":      "cpu",
	"atomic_add":  "atomics",
	"atomic_cas":  "atomics",
	"simd_add":    "simd",
	"ffi_call":    "ffi",
}

// effectScope tracks the ambient effect set available at the current
// point in a function body: the function's own declared effects, plus
// any the function was called within a `with context` capability block
// for (spec.md's capability-in-scope rule; SPEC_FULL.md keeps context
// blocks effect-transparent rather than effect-granting, so this stays
// exactly the function's declared set).
type effectScope struct {
	declared map[string]bool
	fn       *ast.FunctionDecl
}

// pass4EffectCheckModule verifies every function only performs
// operations within its declared effect set, and that `pub` functions
// declare their effects explicitly (spec.md §4.4's public-export rule).
func (p *pipeline) pass4EffectCheckModule(m *ast.Module) {
	for _, stmt := range m.Statements {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if fn.Pub && len(fn.Effects) == 0 && p.functionPerformsAnyEffect(fn) {
			p.errorAt(fn.Pos, "exported function '"+fn.Name+"' performs effectful operations but declares no effect clause", "add an 'effects [...]' clause listing the capabilities it uses")
		}
		scope := &effectScope{declared: toSet(fn.Effects), fn: fn}
		p.checkEffectsBlock(fn.Body, scope)
	}
}

// effectFor resolves a primitive operation name to the capability it
// requires, checking the loaded vela.yaml effect table before falling
// back to the built-in primitiveEffects table (so a configuration file
// can add new primitives or re-tag an existing one without a rebuild).
func (p *pipeline) effectFor(name string) (string, bool) {
	if p.cfg != nil {
		if eff, ok := p.cfg.EffectFor(name); ok {
			return eff, true
		}
	}
	eff, ok := primitiveEffects[name]
	return eff, ok
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// functionPerformsAnyEffect is a coarse pre-check so the public-export
// diagnostic only fires for functions that actually need an effect
// clause, not every undecorated pub function.
func (p *pipeline) functionPerformsAnyEffect(fn *ast.FunctionDecl) bool {
	found := false
	walkExprs(fn.Body, func(e ast.Expression) {
		if call, ok := e.(*ast.CallExpr); ok {
			if id, ok := call.Callee.(*ast.Identifier); ok {
				if _, needs := p.effectFor(id.Name); needs {
					found = true
				}
				if sig, ok := p.funcSigs[id.Name]; ok && len(sig.effects) > 0 {
					found = true
				}
			}
		}
	})
	return found
}

func (p *pipeline) checkEffectsBlock(b *ast.Block, scope *effectScope) {
	for _, stmt := range b.Statements {
		p.checkEffectsStmt(stmt, scope)
	}
}

func (p *pipeline) checkEffectsStmt(stmt ast.Statement, scope *effectScope) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		p.checkEffectsExpr(s.Value, scope)
	case *ast.VarDecl:
		if s.Value != nil {
			p.checkEffectsExpr(s.Value, scope)
		}
	case *ast.ReturnStmt:
		if s.Value != nil {
			p.checkEffectsExpr(s.Value, scope)
		}
	case *ast.DeferStmt:
		p.checkEffectsExpr(s.Value, scope)
	case *ast.ExprStmt:
		p.checkEffectsExpr(s.Value, scope)
	case *ast.AssignStmt:
		p.checkEffectsExpr(s.Value, scope)
	case *ast.IfStmt:
		p.checkEffectsExpr(s.Cond, scope)
		p.checkEffectsBlock(s.Then, scope)
		if s.Else != nil {
			p.checkEffectsStmt(s.Else, scope)
		}
	case *ast.WhileStmt:
		p.checkEffectsExpr(s.Cond, scope)
		p.checkEffectsBlock(s.Body, scope)
	case *ast.ForStmt:
		p.checkEffectsExpr(s.Iterable, scope)
		p.checkEffectsBlock(s.Body, scope)
	case *ast.MatchStmt:
		p.checkEffectsExpr(s.Scrutinee, scope)
		for _, arm := range s.Arms {
			p.checkEffectsExpr(arm.Body, scope)
		}
	case *ast.Block:
		p.checkEffectsBlock(s, scope)
	}
}

func (p *pipeline) checkEffectsExpr(e ast.Expression, scope *effectScope) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ast.CallExpr:
		p.checkEffectsExpr(ex.Callee, scope)
		for _, a := range ex.Args {
			p.checkEffectsExpr(a, scope)
		}
		if id, ok := ex.Callee.(*ast.Identifier); ok {
			p.requireEffectFor(id.Name, ex.Pos, scope)
		}
	case *ast.BinaryExpr:
		p.checkEffectsExpr(ex.Left, scope)
		p.checkEffectsExpr(ex.Right, scope)
	case *ast.UnaryExpr:
		p.checkEffectsExpr(ex.Operand, scope)
	case *ast.FieldAccessExpr:
		p.checkEffectsExpr(ex.Target, scope)
	case *ast.IndexExpr:
		p.checkEffectsExpr(ex.Target, scope)
		p.checkEffectsExpr(ex.Index, scope)
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			p.checkEffectsExpr(el, scope)
		}
	case *ast.RecordLiteral:
		for _, f := range ex.Fields {
			p.checkEffectsExpr(f.Value, scope)
		}
	case *ast.RangeExpr:
		p.checkEffectsExpr(ex.Low, scope)
		p.checkEffectsExpr(ex.High, scope)
	case *ast.OkExpr:
		p.checkEffectsExpr(ex.Value, scope)
	case *ast.ErrExpr:
		for _, f := range ex.Fields {
			p.checkEffectsExpr(f.Value, scope)
		}
	case *ast.CheckExpr:
		p.checkEffectsExpr(ex.Value, scope)
	case *ast.EnsureExpr:
		p.checkEffectsExpr(ex.Cond, scope)
		p.checkEffectsExpr(ex.ElseError, scope)
	case *ast.MapErrorExpr:
		p.checkEffectsExpr(ex.Value, scope)
		p.checkEffectsExpr(ex.Mapper, scope)
	case *ast.MatchExpr:
		p.checkEffectsExpr(ex.Scrutinee, scope)
		for _, arm := range ex.Arms {
			p.checkEffectsExpr(arm.Body, scope)
		}
	case *ast.AnonFunctionExpr:
		// An anonymous function's own declared effects gate its own
		// body; it does not inherit the enclosing function's effect set
		// (spec.md's effect-subset rule applies per function literal).
		inner := &effectScope{declared: toSet(ex.Effects)}
		p.checkEffectsBlock(ex.Body, inner)
	case *ast.UnsafeCastExpr:
		p.checkEffectsExpr(ex.Value, scope)
	case *ast.ComptimeExpr:
		p.checkEffectsExpr(ex.Value, scope)
	case *ast.ContextBlockExpr:
		for _, entry := range ex.Entries {
			p.checkEffectsExpr(entry.Value, scope)
		}
		p.checkEffectsBlock(ex.Body, scope)
	}
}

// requireEffectFor enforces the effect-subset rule (spec.md §4.4):
// calling a primitive that needs a capability, or a user function that
// itself declares effects, requires every one of those effects to
// already be present in the calling function's declared set.
func (p *pipeline) requireEffectFor(name string, span source.Span, scope *effectScope) {
	var needed []string
	if eff, ok := p.effectFor(name); ok {
		needed = []string{eff}
	} else if sig, ok := p.funcSigs[name]; ok {
		needed = sig.effects
	} else {
		return
	}
	for _, eff := range needed {
		if !scope.declared[eff] {
			p.errorAt(span, "function body uses effect '"+eff+"' not declared in its signature", "add '"+eff+"' to this function's 'effects [...]' clause")
		}
	}
}
