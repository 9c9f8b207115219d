package analyzer

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/types"
)

// moveState is the per-binding move status a function body walk
// threads through: a name is either still usable or has been moved
// away and any further use (outside a re-assignment) is an error.
type moveState struct {
	moved map[string]bool
	// loopDepth > 0 disallows moving a binding declared outside the
	// loop, since a move inside one iteration would leave it invalid on
	// the next (spec.md's loop-move restriction).
	loopDepth  int
	outerNames map[string]bool
}

func newMoveState() *moveState {
	return &moveState{moved: make(map[string]bool), outerNames: make(map[string]bool)}
}

// pass6RegionCheckModule walks each function body tracking move state
// for move-only bindings, flags use-after-move, and flags moving a
// binding declared outside the current loop. Views are not tracked
// against regions: a View escaping its region, or used after its region
// is disposed, is not reported.
func (p *pipeline) pass6RegionCheckModule(m *ast.Module) {
	for _, stmt := range m.Statements {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		ms := newMoveState()
		for _, param := range fn.Params {
			ms.outerNames[param.Name] = true
		}
		p.regionCheckBlock(fn.Body, ms)
	}
}

// isMoveOnly reports whether values of type t use move semantics
// rather than copy semantics: user types explicitly declared `move`,
// View types, and named or record types whose underlying type or a
// field is move-only. Array, Vector, Nullable, Result and Union types
// are treated as copy whatever their element or variant types are.
func (p *pipeline) isMoveOnly(t types.Type) bool {
	switch tt := t.(type) {
	case *types.View:
		return true
	case *types.Named:
		if mode, ok := p.copyMove[tt.Name]; ok {
			return mode == "move"
		}
		return p.isMoveOnly(tt.Underlying())
	case *types.Record:
		for _, ft := range tt.FieldTypes {
			if p.isMoveOnly(ft) {
				return true
			}
		}
	}
	return false
}

func (p *pipeline) regionCheckBlock(b *ast.Block, ms *moveState) {
	for _, stmt := range b.Statements {
		p.regionCheckStmt(stmt, ms)
	}
}

func (p *pipeline) regionCheckStmt(stmt ast.Statement, ms *moveState) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		p.regionCheckUse(s.Value, ms)
		if s.Name != "" {
			ms.outerNames[s.Name] = true
		}
	case *ast.VarDecl:
		if s.Value != nil {
			p.regionCheckUse(s.Value, ms)
		}
		ms.outerNames[s.Name] = true
	case *ast.ReturnStmt:
		p.regionCheckUse(s.Value, ms)
	case *ast.DeferStmt:
		p.regionCheckUse(s.Value, ms)
	case *ast.ExprStmt:
		p.regionCheckUse(s.Value, ms)
	case *ast.AssignStmt:
		p.regionCheckUse(s.Value, ms)
		if id, ok := s.Target.(*ast.Identifier); ok {
			// Reassignment revives a moved-from binding.
			ms.moved[id.Name] = false
		}
	case *ast.IfStmt:
		p.regionCheckUse(s.Cond, ms)
		// Each branch is independently explored from the same
		// pre-branch state; a binding moved in only one branch is
		// treated conservatively as moved after the merge, since a
		// maybe-moved value cannot be soundly used either.
		thenState := ms.fork()
		p.regionCheckBlock(s.Then, thenState)
		var elseState *moveState
		if s.Else != nil {
			elseState = ms.fork()
			p.regionCheckStmt(s.Else, elseState)
		}
		ms.mergeBranches(thenState, elseState)
	case *ast.WhileStmt:
		p.regionCheckUse(s.Cond, ms)
		ms.loopDepth++
		p.regionCheckBlock(s.Body, ms)
		ms.loopDepth--
	case *ast.ForStmt:
		p.regionCheckUse(s.Iterable, ms)
		ms.loopDepth++
		ms.outerNames[s.Binding] = true
		p.regionCheckBlock(s.Body, ms)
		ms.loopDepth--
	case *ast.MatchStmt:
		p.regionCheckUse(s.Scrutinee, ms)
		for _, arm := range s.Arms {
			p.regionCheckUse(arm.Body, ms)
		}
	case *ast.Block:
		p.regionCheckBlock(s, ms)
	}
}

func (ms *moveState) fork() *moveState {
	cp := newMoveState()
	for k, v := range ms.moved {
		cp.moved[k] = v
	}
	for k, v := range ms.outerNames {
		cp.outerNames[k] = v
	}
	cp.loopDepth = ms.loopDepth
	return cp
}

// mergeBranches applies the maybe-moved dataflow rule: a binding moved
// along any one explored path is moved after the merge.
func (ms *moveState) mergeBranches(a, b *moveState) {
	for k, v := range a.moved {
		if v {
			ms.moved[k] = true
		}
	}
	if b != nil {
		for k, v := range b.moved {
			if v {
				ms.moved[k] = true
			}
		}
	}
}

// regionCheckUse walks an expression looking for identifier uses of
// move-only bindings, marking them moved and reporting use-after-move
// or move-inside-a-loop-of-an-outer-binding.
func (p *pipeline) regionCheckUse(e ast.Expression, ms *moveState) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ast.Identifier:
		t, ok := p.exprTypes[ex]
		if !ok || !p.isMoveOnly(t) {
			return
		}
		if ms.moved[ex.Name] {
			p.errorAt(ex.Pos, "use of moved value '"+ex.Name+"'", "")
			return
		}
		if ms.loopDepth > 0 && ms.outerNames[ex.Name] {
			p.errorAt(ex.Pos, "cannot move '"+ex.Name+"' declared outside the loop on every iteration", "take a view instead of moving, or move a copy declared inside the loop body")
		}
		ms.moved[ex.Name] = true
	case *ast.BinaryExpr:
		p.regionCheckUse(ex.Left, ms)
		p.regionCheckUse(ex.Right, ms)
	case *ast.UnaryExpr:
		p.regionCheckUse(ex.Operand, ms)
	case *ast.CallExpr:
		p.regionCheckUse(ex.Callee, ms)
		for _, a := range ex.Args {
			p.regionCheckUse(a, ms)
		}
	case *ast.FieldAccessExpr:
		p.regionCheckUse(ex.Target, ms)
	case *ast.IndexExpr:
		p.regionCheckUse(ex.Target, ms)
		p.regionCheckUse(ex.Index, ms)
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			p.regionCheckUse(el, ms)
		}
	case *ast.RecordLiteral:
		for _, f := range ex.Fields {
			p.regionCheckUse(f.Value, ms)
		}
	case *ast.RangeExpr:
		p.regionCheckUse(ex.Low, ms)
		p.regionCheckUse(ex.High, ms)
	case *ast.OkExpr:
		p.regionCheckUse(ex.Value, ms)
	case *ast.ErrExpr:
		for _, f := range ex.Fields {
			p.regionCheckUse(f.Value, ms)
		}
	case *ast.CheckExpr:
		p.regionCheckUse(ex.Value, ms)
	case *ast.EnsureExpr:
		p.regionCheckUse(ex.Cond, ms)
		p.regionCheckUse(ex.ElseError, ms)
	case *ast.MapErrorExpr:
		p.regionCheckUse(ex.Value, ms)
	case *ast.MatchExpr:
		p.regionCheckUse(ex.Scrutinee, ms)
		for _, arm := range ex.Arms {
			p.regionCheckUse(arm.Body, ms)
		}
	case *ast.UnsafeCastExpr:
		p.regionCheckUse(ex.Value, ms)
	case *ast.ComptimeExpr:
		p.regionCheckUse(ex.Value, ms)
	case *ast.ContextBlockExpr:
		for _, entry := range ex.Entries {
			p.regionCheckUse(entry.Value, ms)
		}
		p.regionCheckBlock(ex.Body, ms)
	}
}
