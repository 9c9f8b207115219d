package types

import "testing"

import "github.com/stretchr/testify/require"

func TestEqualPrimitivesAreIdentityCompared(t *testing.T) {
	require.True(t, Equal(I32, I32))
	require.False(t, Equal(I32, I64))
	require.False(t, Equal(I32, Bool))
}

func TestEqualArraysCompareElemAndSize(t *testing.T) {
	a1 := &Array{Elem: I32, N: 4}
	a2 := &Array{Elem: I32, N: 4}
	a3 := &Array{Elem: I32, N: 5}
	a4 := &Array{Elem: F64, N: 4}
	require.True(t, Equal(a1, a2))
	require.False(t, Equal(a1, a3))
	require.False(t, Equal(a1, a4))
}

func TestEqualViewComparesMutability(t *testing.T) {
	v1 := &View{Elem: I32, Mutable: true}
	v2 := &View{Elem: I32, Mutable: true}
	v3 := &View{Elem: I32, Mutable: false}
	require.True(t, Equal(v1, v2))
	require.False(t, Equal(v1, v3))
}

func TestEqualFunctionComparesParamsReturnEffectsAndDomain(t *testing.T) {
	f1 := &Function{Params: []Type{I32, I32}, Return: Bool, Effects: []string{"io"}, ErrorDomain: "D"}
	f2 := &Function{Params: []Type{I32, I32}, Return: Bool, Effects: []string{"io"}, ErrorDomain: "D"}
	f3 := &Function{Params: []Type{I32, I32}, Return: Bool, Effects: []string{"fs"}, ErrorDomain: "D"}
	f4 := &Function{Params: []Type{I32, I32}, Return: Bool, Effects: []string{"io"}, ErrorDomain: ""}
	require.True(t, Equal(f1, f2))
	require.False(t, Equal(f1, f3))
	require.False(t, Equal(f1, f4))
}

func TestEqualNamedComparesOnlyName(t *testing.T) {
	n1 := &Named{Name: "Point"}
	n2 := &Named{Name: "Point"}
	n1.SetUnderlying(I32)
	n2.SetUnderlying(Bool) // deliberately different underlying
	require.True(t, Equal(n1, n2))
	require.Equal(t, I32, n1.Underlying())
}

func TestEqualRecordComparesFieldNamesAndTypes(t *testing.T) {
	r1 := &Record{FieldNames: []string{"x", "y"}, FieldTypes: []Type{I32, I32}}
	r2 := &Record{FieldNames: []string{"x", "y"}, FieldTypes: []Type{I32, I32}}
	r3 := &Record{FieldNames: []string{"x", "z"}, FieldTypes: []Type{I32, I32}}
	require.True(t, Equal(r1, r2))
	require.False(t, Equal(r1, r3))
	typ, ok := r1.FieldType("y")
	require.True(t, ok)
	require.Equal(t, I32, typ)
	_, ok = r1.FieldType("missing")
	require.False(t, ok)
}

func TestEqualUnionComparesOnlyName(t *testing.T) {
	u1 := &Union{Name: "Shape", Variants: []UnionVariant{{Name: "Circle"}}}
	u2 := &Union{Name: "Shape", Variants: []UnionVariant{{Name: "Square"}}}
	require.True(t, Equal(u1, u2))
	require.True(t, u1.HasVariant("Circle"))
	require.False(t, u1.HasVariant("Square"))
}

func TestEqualGenericInstanceComparesBaseAndArgs(t *testing.T) {
	g1 := &GenericInstance{BaseName: "Box", Args: []Type{I32}}
	g2 := &GenericInstance{BaseName: "Box", Args: []Type{I32}}
	g3 := &GenericInstance{BaseName: "Box", Args: []Type{Bool}}
	require.True(t, Equal(g1, g2))
	require.False(t, Equal(g1, g3))
}

func TestEqualNullableAndRange(t *testing.T) {
	require.True(t, Equal(&Nullable{Elem: I32}, &Nullable{Elem: I32}))
	require.False(t, Equal(&Nullable{Elem: I32}, &Nullable{Elem: F64}))
	require.True(t, Equal(&RangeType{Elem: I32}, &RangeType{Elem: I32}))
}

func TestEqualUnknownAlwaysMatchesUnknown(t *testing.T) {
	require.True(t, Equal(Unknown, Unknown))
	require.True(t, IsUnknown(Unknown))
	require.False(t, IsUnknown(I32))
}

func TestNumericPrimitiveClassification(t *testing.T) {
	require.True(t, IsIntegerPrimitive(I32))
	require.True(t, IsIntegerPrimitive(Usize))
	require.False(t, IsIntegerPrimitive(F32))
	require.True(t, IsFloatPrimitive(F32))
	require.True(t, IsNumericPrimitive(I32))
	require.True(t, IsNumericPrimitive(F64))
	require.False(t, IsNumericPrimitive(Bool))
}

func TestLookupPrimitiveAndCapability(t *testing.T) {
	p, ok := LookupPrimitive("i32")
	require.True(t, ok)
	require.Equal(t, I32, p)
	_, ok = LookupPrimitive("not_a_type")
	require.False(t, ok)

	c, ok := LookupCapability("fs")
	require.True(t, ok)
	require.Equal(t, CapFs, c)
	_, ok = LookupCapability("not_an_effect")
	require.False(t, ok)
}

func TestResultStringIncludesDomain(t *testing.T) {
	r := &Result{Ok: I32, Domain: "FileError"}
	require.Equal(t, "Result<i32, FileError>", r.String())
}
