package analyzer

import "github.com/velalang/vela/internal/ast"

// walkExprs visits every expression reachable from a block, calling fn
// on each one (including nested sub-expressions), depth-first. It is
// shared by the coarse pre-checks that only need to ask "does this
// expression tree contain an X" without the full per-pass bookkeeping
// checkEffectsExpr/checkExprUncached carry.
func walkExprs(b *ast.Block, fn func(ast.Expression)) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		walkExprsStmt(stmt, fn)
	}
}

func walkExprsStmt(stmt ast.Statement, fn func(ast.Expression)) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		walkExprsExpr(s.Value, fn)
	case *ast.VarDecl:
		walkExprsExpr(s.Value, fn)
	case *ast.ReturnStmt:
		walkExprsExpr(s.Value, fn)
	case *ast.DeferStmt:
		walkExprsExpr(s.Value, fn)
	case *ast.ExprStmt:
		walkExprsExpr(s.Value, fn)
	case *ast.AssignStmt:
		walkExprsExpr(s.Target, fn)
		walkExprsExpr(s.Value, fn)
	case *ast.IfStmt:
		walkExprsExpr(s.Cond, fn)
		walkExprs(s.Then, fn)
		if s.Else != nil {
			walkExprsStmt(s.Else, fn)
		}
	case *ast.WhileStmt:
		walkExprsExpr(s.Cond, fn)
		walkExprs(s.Body, fn)
	case *ast.ForStmt:
		walkExprsExpr(s.Iterable, fn)
		walkExprs(s.Body, fn)
	case *ast.MatchStmt:
		walkExprsExpr(s.Scrutinee, fn)
		for _, arm := range s.Arms {
			walkExprsExpr(arm.Body, fn)
		}
	case *ast.Block:
		walkExprs(s, fn)
	}
}

func walkExprsExpr(e ast.Expression, fn func(ast.Expression)) {
	if e == nil {
		return
	}
	fn(e)
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		walkExprsExpr(ex.Left, fn)
		walkExprsExpr(ex.Right, fn)
	case *ast.UnaryExpr:
		walkExprsExpr(ex.Operand, fn)
	case *ast.CallExpr:
		walkExprsExpr(ex.Callee, fn)
		for _, a := range ex.Args {
			walkExprsExpr(a, fn)
		}
	case *ast.FieldAccessExpr:
		walkExprsExpr(ex.Target, fn)
	case *ast.IndexExpr:
		walkExprsExpr(ex.Target, fn)
		walkExprsExpr(ex.Index, fn)
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			walkExprsExpr(el, fn)
		}
	case *ast.RecordLiteral:
		for _, f := range ex.Fields {
			walkExprsExpr(f.Value, fn)
		}
	case *ast.RangeExpr:
		walkExprsExpr(ex.Low, fn)
		walkExprsExpr(ex.High, fn)
	case *ast.OkExpr:
		walkExprsExpr(ex.Value, fn)
	case *ast.ErrExpr:
		for _, f := range ex.Fields {
			walkExprsExpr(f.Value, fn)
		}
	case *ast.CheckExpr:
		walkExprsExpr(ex.Value, fn)
	case *ast.EnsureExpr:
		walkExprsExpr(ex.Cond, fn)
		walkExprsExpr(ex.ElseError, fn)
	case *ast.MapErrorExpr:
		walkExprsExpr(ex.Value, fn)
		walkExprsExpr(ex.Mapper, fn)
	case *ast.MatchExpr:
		walkExprsExpr(ex.Scrutinee, fn)
		for _, arm := range ex.Arms {
			walkExprsExpr(arm.Body, fn)
		}
	case *ast.UnsafeCastExpr:
		walkExprsExpr(ex.Value, fn)
	case *ast.ComptimeExpr:
		walkExprsExpr(ex.Value, fn)
	case *ast.ContextBlockExpr:
		for _, entry := range ex.Entries {
			walkExprsExpr(entry.Value, fn)
		}
		walkExprs(ex.Body, fn)
	}
}
