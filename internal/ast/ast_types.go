package ast

import "github.com/velalang/vela/internal/source"

// TypeExpr is the base interface for untyped type expressions.
type TypeExpr interface {
	Node
	typeExprNode()
}

// SimpleType is a bare named type, e.g. `i32`, `String`, `Point`.
type SimpleType struct {
	Pos  source.Span
	Name string
}

func (s *SimpleType) Span() source.Span { return s.Pos }
func (s *SimpleType) Accept(v Visitor)  { v.VisitSimpleType(s) }
func (s *SimpleType) typeExprNode()     {}

// GenericInstanceType is `Name<args...>`.
type GenericInstanceType struct {
	Pos  source.Span
	Name string
	Args []TypeExpr
}

func (g *GenericInstanceType) Span() source.Span { return g.Pos }
func (g *GenericInstanceType) Accept(v Visitor)  { v.VisitGenericInstanceType(g) }
func (g *GenericInstanceType) typeExprNode()     {}

// FixedArrayType is `Array<T, N>` (or `Array<T>` with N absent).
type FixedArrayType struct {
	Pos   source.Span
	Elem  TypeExpr
	N     Expression // const expression; nil means dynamic-sized
}

func (f *FixedArrayType) Span() source.Span { return f.Pos }
func (f *FixedArrayType) Accept(v Visitor)  { v.VisitFixedArrayType(f) }
func (f *FixedArrayType) typeExprNode()     {}

// VectorType is `Vector<T>` or `Vector<T, N>`, a SIMD-lane vector.
type VectorType struct {
	Pos  source.Span
	Elem TypeExpr
	N    Expression
}

func (vt *VectorType) Span() source.Span { return vt.Pos }
func (vt *VectorType) Accept(v Visitor)  { v.VisitVectorType(vt) }
func (vt *VectorType) typeExprNode()     {}

// ViewType is `View<T>` or `View<mut T>`.
type ViewType struct {
	Pos     source.Span
	Elem    TypeExpr
	Mutable bool
}

func (vt *ViewType) Span() source.Span { return vt.Pos }
func (vt *ViewType) Accept(v Visitor)  { v.VisitViewType(vt) }
func (vt *ViewType) typeExprNode()     {}

// NullableType is `T?`.
type NullableType struct {
	Pos  source.Span
	Elem TypeExpr
}

func (n *NullableType) Span() source.Span { return n.Pos }
func (n *NullableType) Accept(v Visitor)  { v.VisitNullableType(n) }
func (n *NullableType) typeExprNode()     {}

// FunctionType is `(params) -> Return effects [e1, e2] error D`.
type FunctionType struct {
	Pos         source.Span
	Params      []TypeExpr
	Return      TypeExpr
	Effects     []string
	ErrorDomain string
	TypeParams  []*TypeParam
}

func (f *FunctionType) Span() source.Span { return f.Pos }
func (f *FunctionType) Accept(v Visitor)  { v.VisitFunctionType(f) }
func (f *FunctionType) typeExprNode()     {}

// RecordTypeField is one `name: Type` field of a record type expression.
type RecordTypeField struct {
	Name string
	Type TypeExpr
}

// RecordType is `{ name: Type, ... }`.
type RecordType struct {
	Pos    source.Span
	Fields []*RecordTypeField
}

func (r *RecordType) Span() source.Span { return r.Pos }
func (r *RecordType) Accept(v Visitor)  { v.VisitRecordType(r) }
func (r *RecordType) typeExprNode()     {}

// UnionVariant is one named case of a discriminated-union type, with its
// payload fields (empty for a unit-like case).
type UnionVariant struct {
	Name   string
	Fields []*RecordTypeField
}

// UnionType is `Name1{...} | Name2{...} | ...` as a type expression.
type UnionType struct {
	Pos      source.Span
	Variants []*UnionVariant
}

func (u *UnionType) Span() source.Span { return u.Pos }
func (u *UnionType) Accept(v Visitor)  { v.VisitUnionType(u) }
func (u *UnionType) typeExprNode()     {}
