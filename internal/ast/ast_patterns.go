package ast

import "github.com/velalang/vela/internal/source"

// Pattern is the base interface for match-arm and binding patterns.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is `_`.
type WildcardPattern struct{ Pos source.Span }

func (w *WildcardPattern) Span() source.Span { return w.Pos }
func (w *WildcardPattern) Accept(v Visitor)  { v.VisitWildcardPattern(w) }
func (w *WildcardPattern) patternNode()      {}

// IdentPattern binds the scrutinee (or sub-value) to a name.
type IdentPattern struct {
	Pos  source.Span
	Name string
}

func (i *IdentPattern) Span() source.Span { return i.Pos }
func (i *IdentPattern) Accept(v Visitor)  { v.VisitIdentPattern(i) }
func (i *IdentPattern) patternNode()      {}

// LiteralPattern matches a specific number or string literal.
type LiteralPattern struct {
	Pos   source.Span
	Value *Literal
}

func (l *LiteralPattern) Span() source.Span { return l.Pos }
func (l *LiteralPattern) Accept(v Visitor)  { v.VisitLiteralPattern(l) }
func (l *LiteralPattern) patternNode()      {}

// VariantPattern matches a named variant, with optional sub-patterns
// for its fields.
type VariantPattern struct {
	Pos     source.Span
	Name    string
	Fields  []Pattern // positional or field-matched sub-patterns
}

func (vp *VariantPattern) Span() source.Span { return vp.Pos }
func (vp *VariantPattern) Accept(v Visitor)  { v.VisitVariantPattern(vp) }
func (vp *VariantPattern) patternNode()      {}
