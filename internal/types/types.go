// Package types implements the resolved-type representation of spec.md
// §3: a structurally interned sum type over primitives, capability
// handles, and composite shapes. The Type interface (String/Kind)
// follows funvibe/funxy's internal/typesystem/types.go shape, scaled
// down from funxy's Hindley-Milner unification engine (which Vela does
// not need — type annotations are explicit) to a pure structural-hash
// intern pool, matching spec.md's "pointer equality implies structural
// equality" invariant.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the resolved-type variants.
type Kind int

const (
	KindPrimitive Kind = iota
	KindCapability
	KindArray
	KindVector
	KindView
	KindNullable
	KindRange
	KindFunction
	KindNamed
	KindResult
	KindRecord
	KindUnion
	KindTypeParam
	KindGenericInstance
	KindConstValue
	KindUnknown // soft-fail sentinel, spec.md §7
)

// Type is the interface every resolved-type variant implements.
type Type interface {
	Kind() Kind
	String() string
}

// --- Primitives ---------------------------------------------------------

type Primitive struct{ Name string }

func (p *Primitive) Kind() Kind      { return KindPrimitive }
func (p *Primitive) String() string { return p.Name }

var primitiveTable = map[string]*Primitive{}

func prim(name string) *Primitive {
	p := &Primitive{Name: name}
	primitiveTable[name] = p
	return p
}

// Predefined, interned primitive constants (spec.md §3).
var (
	I8     = prim("i8")
	I16    = prim("i16")
	I32    = prim("i32")
	I64    = prim("i64")
	I128   = prim("i128")
	U8     = prim("u8")
	U16    = prim("u16")
	U32    = prim("u32")
	U64    = prim("u64")
	U128   = prim("u128")
	Usize  = prim("usize")
	F16    = prim("f16")
	F32    = prim("f32")
	F64    = prim("f64")
	Bool   = prim("Bool")
	Char   = prim("Char")
	String = prim("String")
	Bytes  = prim("Bytes")
	Unit   = prim("Unit")
)

// LookupPrimitive maps a type name to its primitive, per pass 2's fixed
// table (spec.md §4.4.2).
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitiveTable[name]
	return p, ok
}

func IsIntegerPrimitive(p *Primitive) bool {
	switch p {
	case I8, I16, I32, I64, I128, U8, U16, U32, U64, U128, Usize:
		return true
	}
	return false
}

func IsFloatPrimitive(p *Primitive) bool {
	return p == F16 || p == F32 || p == F64
}

func IsNumericPrimitive(p *Primitive) bool {
	return IsIntegerPrimitive(p) || IsFloatPrimitive(p)
}

// --- Capability handles --------------------------------------------------

// Capability is one ambient-effect capability handle (spec.md §3): one
// per effect the language recognises.
type Capability struct{ Effect string }

func (c *Capability) Kind() Kind      { return KindCapability }
func (c *Capability) String() string  { return "Cap<" + c.Effect + ">" }

var capabilityTable = map[string]*Capability{}

func capHandle(effect string) *Capability {
	c := &Capability{Effect: effect}
	capabilityTable[effect] = c
	return c
}

var (
	CapFs      = capHandle("fs")
	CapNet     = capHandle("net")
	CapIo      = capHandle("io")
	CapTime    = capHandle("time")
	CapRng     = capHandle("rng")
	CapAlloc   = capHandle("alloc")
	CapCpu     = capHandle("cpu")
	CapAtomics = capHandle("atomics")
	CapSimd    = capHandle("simd")
	CapFfi     = capHandle("ffi")
)

func LookupCapability(effect string) (*Capability, bool) {
	c, ok := capabilityTable[effect]
	return c, ok
}

// --- Sentinel ------------------------------------------------------------

// UnknownType is the soft-fail placeholder substituted when a
// sub-expression cannot be typed (spec.md §7/§9): it satisfies no
// constraint, which suppresses secondary cascades in later checks.
type UnknownType struct{}

func (UnknownType) Kind() Kind     { return KindUnknown }
func (UnknownType) String() string { return "<unknown>" }

var Unknown Type = UnknownType{}

// IsUnknown reports whether t is the soft-fail sentinel.
func IsUnknown(t Type) bool {
	_, ok := t.(UnknownType)
	return ok
}

// --- Composite variants ---------------------------------------------------

type Array struct {
	Elem Type
	N    int // 0 means dynamic-sized
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) String() string {
	if a.N == 0 {
		return fmt.Sprintf("Array<%s>", a.Elem.String())
	}
	return fmt.Sprintf("Array<%s, %d>", a.Elem.String(), a.N)
}

type Vector struct {
	Elem Type
	N    int
}

func (v *Vector) Kind() Kind      { return KindVector }
func (v *Vector) String() string { return fmt.Sprintf("Vector<%s, %d>", v.Elem.String(), v.N) }

type View struct {
	Elem    Type
	Mutable bool
}

func (v *View) Kind() Kind { return KindView }
func (v *View) String() string {
	if v.Mutable {
		return fmt.Sprintf("View<mut %s>", v.Elem.String())
	}
	return fmt.Sprintf("View<%s>", v.Elem.String())
}

type Nullable struct{ Elem Type }

func (n *Nullable) Kind() Kind      { return KindNullable }
func (n *Nullable) String() string { return n.Elem.String() + "?" }

type RangeType struct{ Elem Type }

func (r *RangeType) Kind() Kind      { return KindRange }
func (r *RangeType) String() string  { return fmt.Sprintf("Range<%s>", r.Elem.String()) }

type Function struct {
	Params      []Type
	Return      Type
	Effects     []string
	ErrorDomain string // empty if none
	TypeParams  []string
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	s := fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return.String())
	if len(f.Effects) > 0 {
		s += fmt.Sprintf(" effects [%s]", strings.Join(f.Effects, ", "))
	}
	if f.ErrorDomain != "" {
		s += " error " + f.ErrorDomain
	}
	return s
}

// Named is a user-defined alias: `type Name = underlying;`. The
// underlying type is resolved lazily via an indirect slot rather than a
// raw back-pointer, per spec.md §9's cyclic-reference design note.
type Named struct {
	Name       string
	underlying Type
}

func (n *Named) Kind() Kind     { return KindNamed }
func (n *Named) String() string { return n.Name }

// Underlying returns the resolved representation behind the name.
func (n *Named) Underlying() Type { return n.underlying }

// SetUnderlying fills in the indirect slot once pass 2 resolves it,
// breaking the Name→underlying→Name cycle that generic recursive types
// can form.
func (n *Named) SetUnderlying(t Type) { n.underlying = t }

type Result struct {
	Ok     Type
	Domain string // error domain name
}

func (r *Result) Kind() Kind      { return KindResult }
func (r *Result) String() string  { return fmt.Sprintf("Result<%s, %s>", r.Ok.String(), r.Domain) }

type Record struct {
	FieldNames []string
	FieldTypes []Type
}

func (r *Record) Kind() Kind { return KindRecord }
func (r *Record) String() string {
	parts := make([]string, len(r.FieldNames))
	for i := range r.FieldNames {
		parts[i] = r.FieldNames[i] + ": " + r.FieldTypes[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldType returns the type of a named field, and whether it exists.
func (r *Record) FieldType(name string) (Type, bool) {
	for i, n := range r.FieldNames {
		if n == name {
			return r.FieldTypes[i], true
		}
	}
	return nil, false
}

type UnionVariant struct {
	Name       string
	FieldNames []string
	FieldTypes []Type
}

type Union struct {
	Name     string
	Variants []UnionVariant
}

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) String() string {
	names := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		names[i] = v.Name
	}
	return u.Name + "(" + strings.Join(names, " | ") + ")"
}

func (u *Union) HasVariant(name string) bool {
	for _, v := range u.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

type TypeParamRef struct {
	Name  string
	Index int
}

func (t *TypeParamRef) Kind() Kind      { return KindTypeParam }
func (t *TypeParamRef) String() string  { return t.Name }

type GenericInstance struct {
	BaseName   string
	Args       []Type
	underlying Type // optional, filled in for generic type aliases
}

func (g *GenericInstance) Kind() Kind { return KindGenericInstance }
func (g *GenericInstance) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.BaseName, strings.Join(parts, ", "))
}
func (g *GenericInstance) Underlying() Type   { return g.underlying }
func (g *GenericInstance) SetUnderlying(t Type) { g.underlying = t }

type ConstValue struct {
	N    int64
	Type Type
}

func (c *ConstValue) Kind() Kind      { return KindConstValue }
func (c *ConstValue) String() string  { return fmt.Sprintf("%d", c.N) }

// Equal reports structural equality, used by the intern pool before a
// type is assigned its canonical handle.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Primitive:
		return av == b.(*Primitive)
	case *Capability:
		return av == b.(*Capability)
	case UnknownType:
		return true
	case *Array:
		bv := b.(*Array)
		return av.N == bv.N && Equal(av.Elem, bv.Elem)
	case *Vector:
		bv := b.(*Vector)
		return av.N == bv.N && Equal(av.Elem, bv.Elem)
	case *View:
		bv := b.(*View)
		return av.Mutable == bv.Mutable && Equal(av.Elem, bv.Elem)
	case *Nullable:
		return Equal(av.Elem, b.(*Nullable).Elem)
	case *RangeType:
		return Equal(av.Elem, b.(*RangeType).Elem)
	case *Function:
		bv := b.(*Function)
		if len(av.Params) != len(bv.Params) || av.ErrorDomain != bv.ErrorDomain {
			return false
		}
		if !Equal(av.Return, bv.Return) {
			return false
		}
		if !stringsEqual(av.Effects, bv.Effects) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case *Named:
		return av.Name == b.(*Named).Name
	case *Result:
		bv := b.(*Result)
		return av.Domain == bv.Domain && Equal(av.Ok, bv.Ok)
	case *Record:
		bv := b.(*Record)
		if !stringsEqual(av.FieldNames, bv.FieldNames) {
			return false
		}
		for i := range av.FieldTypes {
			if !Equal(av.FieldTypes[i], bv.FieldTypes[i]) {
				return false
			}
		}
		return true
	case *Union:
		bv := b.(*Union)
		return av.Name == bv.Name
	case *TypeParamRef:
		bv := b.(*TypeParamRef)
		return av.Name == bv.Name && av.Index == bv.Index
	case *GenericInstance:
		bv := b.(*GenericInstance)
		if av.BaseName != bv.BaseName || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *ConstValue:
		bv := b.(*ConstValue)
		return av.N == bv.N && Equal(av.Type, bv.Type)
	}
	return false
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
