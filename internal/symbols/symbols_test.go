package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/types"
)

func TestDeclareRejectsSameScopeCollision(t *testing.T) {
	tbl := NewTable()
	ok := tbl.Declare(&Symbol{Name: "x", Kind: KindVariable, Type: types.I32})
	require.True(t, ok)
	ok = tbl.Declare(&Symbol{Name: "x", Kind: KindVariable, Type: types.Bool})
	require.False(t, ok, "redeclaring 'x' in the same scope must fail")
}

// TestShadowingOuterScopeIsAllowed is spec.md §8's testable property 4:
// a binding in an inner scope may shadow one with the same name in an
// outer scope without being treated as a collision.
func TestShadowingOuterScopeIsAllowed(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Declare(&Symbol{Name: "x", Kind: KindVariable, Type: types.I32}))

	tbl.Push()
	ok := tbl.Declare(&Symbol{Name: "x", Kind: KindVariable, Type: types.Bool})
	require.True(t, ok, "shadowing an outer binding must be allowed")

	sym, found := tbl.Lookup("x")
	require.True(t, found)
	require.Equal(t, types.Bool, sym.Type, "lookup from the inner scope must see the shadowing binding")

	tbl.Pop()
	sym, found = tbl.Lookup("x")
	require.True(t, found)
	require.Equal(t, types.I32, sym.Type, "lookup after popping must see the outer binding again")
}

func TestLookupWalksParentChain(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Declare(&Symbol{Name: "outer", Kind: KindConstant, Type: types.I32}))
	tbl.Push()
	tbl.Push()
	sym, ok := tbl.Lookup("outer")
	require.True(t, ok)
	require.Equal(t, "outer", sym.Name)
}

func TestLookupLocalDoesNotWalkParents(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Declare(&Symbol{Name: "outer", Kind: KindConstant, Type: types.I32}))
	tbl.Push()
	_, ok := tbl.Current().LookupLocal("outer")
	require.False(t, ok)
	_, ok = tbl.Current().LookupLocal("missing")
	require.False(t, ok)
}

func TestLookupMissingNameFails(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup("nope")
	require.False(t, ok)
}

func TestPopAtRootIsNoOp(t *testing.T) {
	tbl := NewTable()
	root := tbl.Current()
	tbl.Pop()
	require.Same(t, root, tbl.Current())
}

func TestScopeDepthIncreasesWithPush(t *testing.T) {
	tbl := NewTable()
	require.Equal(t, 0, tbl.Current().Depth())
	tbl.Push()
	require.Equal(t, 1, tbl.Current().Depth())
	tbl.Push()
	require.Equal(t, 2, tbl.Current().Depth())
}

func TestScopeParentAccessor(t *testing.T) {
	tbl := NewTable()
	root := tbl.Current()
	child := tbl.Push()
	require.Same(t, root, child.Parent())
	require.Nil(t, root.Parent())
}
