package errdomain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/types"
)

func TestDeclareStandaloneRejectsDuplicate(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareStandalone(Variant{Name: "NotFound"}))
	require.False(t, tbl.DeclareStandalone(Variant{Name: "NotFound"}))
}

func TestDeclareInlineNormalizesVariants(t *testing.T) {
	tbl := NewTable()
	ok := tbl.DeclareInline("FileError", []Variant{
		{Name: "NotFound", FieldNames: []string{"path"}, FieldTypes: []types.Type{types.String}},
		{Name: "PermissionDenied"},
	})
	require.True(t, ok)

	dom, found := tbl.Lookup("FileError")
	require.True(t, found)
	require.True(t, dom.HasVariant("NotFound"))
	require.True(t, dom.HasVariant("PermissionDenied"))
	require.False(t, dom.HasVariant("Timeout"))

	v, found := dom.Variant("NotFound")
	require.True(t, found)
	require.Equal(t, []string{"path"}, v.FieldNames)
}

func TestDeclareUnionResolvesStandaloneMembers(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareStandalone(Variant{Name: "NotFound"}))
	require.True(t, tbl.DeclareStandalone(Variant{Name: "Timeout"}))

	missing, ok := tbl.DeclareUnion("FileError", []string{"NotFound", "Timeout"})
	require.True(t, ok)
	require.Empty(t, missing)

	dom, found := tbl.Lookup("FileError")
	require.True(t, found)
	require.True(t, dom.HasVariant("NotFound"))
	require.True(t, dom.HasVariant("Timeout"))
}

func TestDeclareUnionReportsMissingMembers(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareStandalone(Variant{Name: "NotFound"}))

	missing, ok := tbl.DeclareUnion("FileError", []string{"NotFound", "Unregistered"})
	require.True(t, ok)
	require.Equal(t, []string{"Unregistered"}, missing)

	dom, found := tbl.Lookup("FileError")
	require.True(t, found)
	require.True(t, dom.HasVariant("NotFound"))
	require.False(t, dom.HasVariant("Unregistered"))
}

func TestDeclareInlineAndUnionRejectRedeclaredDomainName(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareInline("D", nil))
	require.False(t, tbl.DeclareInline("D", nil))
	_, ok := tbl.DeclareUnion("D", nil)
	require.False(t, ok)
}

func TestIsSubsetDomainAcceptsExactSubset(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareInline("Narrow", []Variant{{Name: "NotFound"}}))
	require.True(t, tbl.DeclareInline("Wide", []Variant{{Name: "NotFound"}, {Name: "Timeout"}}))

	require.True(t, tbl.IsSubsetDomain("Narrow", "Wide"))
	require.False(t, tbl.IsSubsetDomain("Wide", "Narrow"))
}

func TestIsSubsetDomainFailsForUnknownDomains(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.DeclareInline("D", []Variant{{Name: "A"}}))
	require.False(t, tbl.IsSubsetDomain("Ghost", "D"))
	require.False(t, tbl.IsSubsetDomain("D", "Ghost"))
}

func TestLookupStandaloneMissing(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.LookupStandalone("Nope")
	require.False(t, ok)
}
