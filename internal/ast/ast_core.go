// Package ast defines the untyped syntax tree produced by the parser:
// statements, expressions, type expressions, and patterns, all
// span-bearing per spec.md §3.
package ast

import "github.com/velalang/vela/internal/source"

// Node is the base interface for all AST nodes.
type Node interface {
	Span() source.Span
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Module is the root node of a parsed source file: an optional package
// declaration, a list of imports, and the top-level statements.
type Module struct {
	File       string
	Package    *PackageDecl
	Imports    []*ImportDecl
	Statements []Statement
}

func (m *Module) Span() source.Span {
	if m.Package != nil {
		return m.Package.Span()
	}
	if len(m.Statements) > 0 {
		return m.Statements[0].Span()
	}
	return source.Span{File: m.File, Line: 1, Column: 1}
}
func (m *Module) Accept(v Visitor) { v.VisitModule(m) }

// PackageDecl is `package name (export1, export2, ...);`.
type PackageDecl struct {
	Pos     source.Span
	Name    string
	Exports []string
}

func (p *PackageDecl) Span() source.Span  { return p.Pos }
func (p *PackageDecl) Accept(v Visitor)   { v.VisitPackageDecl(p) }
func (p *PackageDecl) statementNode()     {}

// ImportDecl is `import "path" as alias;`.
type ImportDecl struct {
	Pos   source.Span
	Path  string
	Alias string
}

func (i *ImportDecl) Span() source.Span { return i.Pos }
func (i *ImportDecl) Accept(v Visitor)  { v.VisitImportDecl(i) }
func (i *ImportDecl) statementNode()    {}

// Param is a function parameter: name, type, and whether it is `inout`.
type Param struct {
	Pos   source.Span
	Name  string
	Type  TypeExpr
	Inout bool
}

// Variance of a type parameter.
type Variance int

const (
	Invariant Variance = iota
	Covariant          // out
	Contravariant      // in
)

// TypeParam is a generic type parameter, possibly const-generic.
type TypeParam struct {
	Pos        source.Span
	Name       string
	Variance   Variance
	Constraint TypeExpr // optional
	IsConst    bool     // const-generic (e.g. N in Array<T, N>)
	ConstType  TypeExpr // required when IsConst
}

// ConstDecl is `const NAME: Type? :- value;` or a pattern binding.
type ConstDecl struct {
	Pos     source.Span
	Name    string    // simple binding; empty if Pattern is set
	Pattern Pattern   // mutually exclusive with Name
	Type    TypeExpr  // optional annotation
	Value   Expression
}

func (c *ConstDecl) Span() source.Span { return c.Pos }
func (c *ConstDecl) Accept(v Visitor)  { v.VisitConstDecl(c) }
func (c *ConstDecl) statementNode()    {}

// VarDecl is `var NAME: Type? = value;`.
type VarDecl struct {
	Pos   source.Span
	Name  string
	Type  TypeExpr
	Value Expression // optional
}

func (vd *VarDecl) Span() source.Span { return vd.Pos }
func (vd *VarDecl) Accept(v Visitor)  { v.VisitVarDecl(vd) }
func (vd *VarDecl) statementNode()    {}

// FunctionDecl declares a function with effect and error-domain clauses.
type FunctionDecl struct {
	Pos         source.Span
	Name        string
	Pub         bool
	TypeParams  []*TypeParam
	Params      []*Param
	ReturnType  TypeExpr
	Effects     []string // declared effect clause, e.g. [io, fs]
	ErrorDomain string   // declared `error D`, empty if none
	Body        *Block
}

func (f *FunctionDecl) Span() source.Span { return f.Pos }
func (f *FunctionDecl) Accept(v Visitor)  { v.VisitFunctionDecl(f) }
func (f *FunctionDecl) statementNode()    {}

// TypeDecl is `type Name<params> = TypeExpr;`.
type TypeDecl struct {
	Pos        source.Span
	Name       string
	TypeParams []*TypeParam
	Underlying TypeExpr
	CopyMove   string // "copy", "move", or "" (inferred)
}

func (t *TypeDecl) Span() source.Span { return t.Pos }
func (t *TypeDecl) Accept(v Visitor)  { v.VisitTypeDecl(t) }
func (t *TypeDecl) statementNode()    {}

// ErrorVariant is one named, field-record variant of an error type or domain.
type ErrorVariant struct {
	Pos    source.Span
	Name   string
	Fields []*Param // field name + type, reusing Param's shape
}

// ErrorDecl is `error Name { VariantA{...}, VariantB{...} }`, or
// `error Name { field: Type, ... }`, parsed as one variant named Name.
type ErrorDecl struct {
	Pos      source.Span
	Name     string
	Variants []*ErrorVariant
}

func (e *ErrorDecl) Span() source.Span { return e.Pos }
func (e *ErrorDecl) Accept(v Visitor)  { v.VisitErrorDecl(e) }
func (e *ErrorDecl) statementNode()    {}

// DomainDecl is `domain D = E1 | E2;` (union syntax) or
// `domain D = { V{...}, ... }` (inline variants). Both are normalised to Variants by pass 1.
type DomainDecl struct {
	Pos        source.Span
	Name       string
	UnionOf    []string        // union-of-names syntax; empty if inline
	Variants   []*ErrorVariant // inline-variant syntax; empty if union
}

func (d *DomainDecl) Span() source.Span { return d.Pos }
func (d *DomainDecl) Accept(v Visitor)  { v.VisitDomainDecl(d) }
func (d *DomainDecl) statementNode()    {}

// UseErrorDecl is the module-level `use error D;` default.
type UseErrorDecl struct {
	Pos    source.Span
	Domain string
}

func (u *UseErrorDecl) Span() source.Span { return u.Pos }
func (u *UseErrorDecl) Accept(v Visitor)  { v.VisitUseErrorDecl(u) }
func (u *UseErrorDecl) statementNode()    {}

// Block is a `{ ... }` sequence of statements, used for function and
// control-flow bodies.
type Block struct {
	Pos        source.Span
	Statements []Statement
}

func (b *Block) Span() source.Span { return b.Pos }
func (b *Block) Accept(v Visitor)  { v.VisitBlock(b) }
func (b *Block) statementNode()    {}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	Pos   source.Span
	Value Expression // optional
}

func (r *ReturnStmt) Span() source.Span { return r.Pos }
func (r *ReturnStmt) Accept(v Visitor)  { v.VisitReturnStmt(r) }
func (r *ReturnStmt) statementNode()    {}

// DeferStmt is `defer expr;`.
type DeferStmt struct {
	Pos   source.Span
	Value Expression
}

func (d *DeferStmt) Span() source.Span { return d.Pos }
func (d *DeferStmt) Accept(v Visitor)  { v.VisitDeferStmt(d) }
func (d *DeferStmt) statementNode()    {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Pos   source.Span
	Value Expression
}

func (e *ExprStmt) Span() source.Span { return e.Pos }
func (e *ExprStmt) Accept(v Visitor)  { v.VisitExprStmt(e) }
func (e *ExprStmt) statementNode()    {}

// AssignStmt is `target = value;` or a compound assignment.
type AssignStmt struct {
	Pos    source.Span
	Target Expression
	Op     string // "=", "+=", etc.
	Value  Expression
}

func (a *AssignStmt) Span() source.Span { return a.Pos }
func (a *AssignStmt) Accept(v Visitor)  { v.VisitAssignStmt(a) }
func (a *AssignStmt) statementNode()    {}

// IfStmt is `if cond { then } else { else }`.
type IfStmt struct {
	Pos  source.Span
	Cond Expression
	Then *Block
	Else Statement // *Block or *IfStmt, or nil
}

func (i *IfStmt) Span() source.Span { return i.Pos }
func (i *IfStmt) Accept(v Visitor)  { v.VisitIfStmt(i) }
func (i *IfStmt) statementNode()    {}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	Pos  source.Span
	Cond Expression
	Body *Block
}

func (w *WhileStmt) Span() source.Span { return w.Pos }
func (w *WhileStmt) Accept(v Visitor)  { v.VisitWhileStmt(w) }
func (w *WhileStmt) statementNode()    {}

// ForStmt is `for x in iter { body }`.
type ForStmt struct {
	Pos      source.Span
	Binding  string
	Iterable Expression
	Body     *Block
}

func (f *ForStmt) Span() source.Span { return f.Pos }
func (f *ForStmt) Accept(v Visitor)  { v.VisitForStmt(f) }
func (f *ForStmt) statementNode()    {}

// MatchArm is one `pattern (if guard)? -> body` arm, shared by match
// statements and match expressions.
type MatchArm struct {
	Pos     source.Span
	Pattern Pattern
	Guard   Expression // optional
	Body    Expression
}

// MatchStmt is `match scrutinee { arms }` used as a statement.
type MatchStmt struct {
	Pos       source.Span
	Scrutinee Expression
	Arms      []*MatchArm
}

func (m *MatchStmt) Span() source.Span { return m.Pos }
func (m *MatchStmt) Accept(v Visitor)  { v.VisitMatchStmt(m) }
func (m *MatchStmt) statementNode()    {}

// BreakStmt is `break;`.
type BreakStmt struct{ Pos source.Span }

func (b *BreakStmt) Span() source.Span { return b.Pos }
func (b *BreakStmt) Accept(v Visitor)  { v.VisitBreakStmt(b) }
func (b *BreakStmt) statementNode()    {}

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Pos source.Span }

func (c *ContinueStmt) Span() source.Span { return c.Pos }
func (c *ContinueStmt) Accept(v Visitor)  { v.VisitContinueStmt(c) }
func (c *ContinueStmt) statementNode()    {}
