package typedast

import (
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/types"
)

// Module is the typed counterpart of ast.Module: the same statement
// list, annotated with each function's resolved signature. The typed
// tree intentionally reuses ast.Node values rather than cloning a
// parallel node hierarchy — TypeOf looks up a node's resolved type by
// identity — since Vela's checking passes never rewrite the tree, only
// annotate it.
type Module struct {
	Source   *ast.Module
	Functions []*TypedFunction
	TypeOf   func(ast.Node) types.Type
}

// TypedFunction pairs a function declaration with its resolved
// signature, as recorded by passes 2-4.
type TypedFunction struct {
	Decl        *ast.FunctionDecl
	ParamTypes  []types.Type
	ReturnType  types.Type
	Effects     []string
	ErrorDomain string
}

// Build assembles the typed module from the checked AST. typeOf is the
// pipeline's node→type lookup, threaded through rather than
// recomputed, so the typed tree and the checking passes never disagree
// about a node's type.
func Build(m *ast.Module, typeOf func(ast.Node) types.Type) *Module {
	tm := &Module{Source: m, TypeOf: typeOf}
	for _, stmt := range m.Statements {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		tf := &TypedFunction{Decl: fn, Effects: fn.Effects, ErrorDomain: fn.ErrorDomain}
		for _, param := range fn.Params {
			tf.ParamTypes = append(tf.ParamTypes, typeOf(param.Type))
		}
		if fn.ReturnType != nil {
			tf.ReturnType = typeOf(fn.ReturnType)
		} else {
			tf.ReturnType = types.Unit
		}
		tm.Functions = append(tm.Functions, tf)
	}
	return tm
}
