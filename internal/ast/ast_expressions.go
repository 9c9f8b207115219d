package ast

import "github.com/velalang/vela/internal/source"

// LitKind distinguishes the literal expression variants of spec.md §3.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBytes
	LitChar
	LitBool
	LitNull
	LitUnit
)

// Literal is any of int/float/string/bytes/char/bool/null/unit.
type Literal struct {
	Pos  source.Span
	Kind LitKind
	Text string // raw lexeme, parsed by the analyzer per its literal rule
}

func (l *Literal) Span() source.Span { return l.Pos }
func (l *Literal) Accept(v Visitor)  { v.VisitLiteral(l) }
func (l *Literal) expressionNode()   {}

// Identifier is a bare name reference.
type Identifier struct {
	Pos   source.Span
	Name  string
}

func (i *Identifier) Span() source.Span { return i.Pos }
func (i *Identifier) Accept(v Visitor)  { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()   {}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Pos   source.Span
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) Span() source.Span { return b.Pos }
func (b *BinaryExpr) Accept(v Visitor)  { v.VisitBinaryExpr(b) }
func (b *BinaryExpr) expressionNode()   {}

// UnaryExpr is `op operand`.
type UnaryExpr struct {
	Pos     source.Span
	Op      string
	Operand Expression
}

func (u *UnaryExpr) Span() source.Span { return u.Pos }
func (u *UnaryExpr) Accept(v Visitor)  { v.VisitUnaryExpr(u) }
func (u *UnaryExpr) expressionNode()   {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Pos    source.Span
	Callee Expression
	Args   []Expression
}

func (c *CallExpr) Span() source.Span { return c.Pos }
func (c *CallExpr) Accept(v Visitor)  { v.VisitCallExpr(c) }
func (c *CallExpr) expressionNode()   {}

// FieldAccessExpr is `target.field`.
type FieldAccessExpr struct {
	Pos    source.Span
	Target Expression
	Field  string
}

func (f *FieldAccessExpr) Span() source.Span { return f.Pos }
func (f *FieldAccessExpr) Accept(v Visitor)  { v.VisitFieldAccessExpr(f) }
func (f *FieldAccessExpr) expressionNode()   {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Pos    source.Span
	Target Expression
	Index  Expression
}

func (i *IndexExpr) Span() source.Span { return i.Pos }
func (i *IndexExpr) Accept(v Visitor)  { v.VisitIndexExpr(i) }
func (i *IndexExpr) expressionNode()   {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Pos      source.Span
	Elements []Expression
}

func (a *ArrayLiteral) Span() source.Span { return a.Pos }
func (a *ArrayLiteral) Accept(v Visitor)  { v.VisitArrayLiteral(a) }
func (a *ArrayLiteral) expressionNode()   {}

// RecordField is one `name: value` pair inside a record literal.
type RecordField struct {
	Pos   source.Span
	Name  string
	Value Expression
}

// RecordLiteral is `{ field: value, ... }`, optionally naming a type.
type RecordLiteral struct {
	Pos      source.Span
	TypeName string // optional, e.g. `Point{x: 1, y: 2}`
	Fields   []*RecordField
}

func (r *RecordLiteral) Span() source.Span { return r.Pos }
func (r *RecordLiteral) Accept(v Visitor)  { v.VisitRecordLiteral(r) }
func (r *RecordLiteral) expressionNode()   {}

// RangeExpr is `lo..hi` or `lo..=hi`.
type RangeExpr struct {
	Pos       source.Span
	Low       Expression
	High      Expression
	Inclusive bool
}

func (r *RangeExpr) Span() source.Span { return r.Pos }
func (r *RangeExpr) Accept(v Visitor)  { v.VisitRangeExpr(r) }
func (r *RangeExpr) expressionNode()   {}

// OkExpr is `ok expr`.
type OkExpr struct {
	Pos   source.Span
	Value Expression
}

func (o *OkExpr) Span() source.Span { return o.Pos }
func (o *OkExpr) Accept(v Visitor)  { v.VisitOkExpr(o) }
func (o *OkExpr) expressionNode()   {}

// ErrExpr is `err VariantName { field: expr, ... }`.
type ErrExpr struct {
	Pos     source.Span
	Variant string
	Fields  []*RecordField
}

func (e *ErrExpr) Span() source.Span { return e.Pos }
func (e *ErrExpr) Accept(v Visitor)  { v.VisitErrExpr(e) }
func (e *ErrExpr) expressionNode()   {}

// CheckExpr is `check expr with { frame-fields }?`.
type CheckExpr struct {
	Pos    source.Span
	Value  Expression
	Frame  []*RecordField // optional `with { ... }` annotation fields
}

func (c *CheckExpr) Span() source.Span { return c.Pos }
func (c *CheckExpr) Accept(v Visitor)  { v.VisitCheckExpr(c) }
func (c *CheckExpr) expressionNode()   {}

// EnsureExpr is `ensure cond else err ...`.
type EnsureExpr struct {
	Pos       source.Span
	Cond      Expression
	ElseError Expression // an ErrExpr (or expression yielding one)
}

func (e *EnsureExpr) Span() source.Span { return e.Pos }
func (e *EnsureExpr) Accept(v Visitor)  { v.VisitEnsureExpr(e) }
func (e *EnsureExpr) expressionNode()   {}

// MapErrorExpr is `map_error e using (param => expr)`.
type MapErrorExpr struct {
	Pos    source.Span
	Value  Expression
	Param  string
	Mapper Expression
}

func (m *MapErrorExpr) Span() source.Span { return m.Pos }
func (m *MapErrorExpr) Accept(v Visitor)  { v.VisitMapErrorExpr(m) }
func (m *MapErrorExpr) expressionNode()   {}

// MatchExpr is `match scrutinee { arms }` used as an expression.
type MatchExpr struct {
	Pos       source.Span
	Scrutinee Expression
	Arms      []*MatchArm
}

func (m *MatchExpr) Span() source.Span { return m.Pos }
func (m *MatchExpr) Accept(v Visitor)  { v.VisitMatchExpr(m) }
func (m *MatchExpr) expressionNode()   {}

// AnonFunctionExpr is an anonymous function literal, with its own
// effect/error clause.
type AnonFunctionExpr struct {
	Pos         source.Span
	Params      []*Param
	ReturnType  TypeExpr
	Effects     []string
	ErrorDomain string
	Body        *Block
}

func (a *AnonFunctionExpr) Span() source.Span { return a.Pos }
func (a *AnonFunctionExpr) Accept(v Visitor)  { v.VisitAnonFunctionExpr(a) }
func (a *AnonFunctionExpr) expressionNode()   {}

// UnsafeCastExpr is `unsafe_cast<T>(expr)`.
type UnsafeCastExpr struct {
	Pos    source.Span
	Target TypeExpr
	Value  Expression
}

func (u *UnsafeCastExpr) Span() source.Span { return u.Pos }
func (u *UnsafeCastExpr) Accept(v Visitor)  { v.VisitUnsafeCastExpr(u) }
func (u *UnsafeCastExpr) expressionNode()   {}

// ComptimeExpr is `comptime expr`.
type ComptimeExpr struct {
	Pos   source.Span
	Value Expression
}

func (c *ComptimeExpr) Span() source.Span { return c.Pos }
func (c *ComptimeExpr) Accept(v Visitor)  { v.VisitComptimeExpr(c) }
func (c *ComptimeExpr) expressionNode()   {}

// ContextEntry is one `k: v` pair inside `with context { ... }`.
type ContextEntry struct {
	Key   string
	Value Expression
}

// ContextBlockExpr is `with context { k: v, ... } in { block }`.
type ContextBlockExpr struct {
	Pos     source.Span
	Entries []*ContextEntry
	Body    *Block
}

func (c *ContextBlockExpr) Span() source.Span { return c.Pos }
func (c *ContextBlockExpr) Accept(v Visitor)  { v.VisitContextBlockExpr(c) }
func (c *ContextBlockExpr) expressionNode()   {}
