package compctx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/types"
)

// TestInternReturnsCanonicalPointer is spec.md §8's testable property 3:
// two structurally-equal types intern to the same pointer.
func TestInternReturnsCanonicalPointer(t *testing.T) {
	ctx := New()
	a := ctx.Intern(&types.Array{Elem: types.I32, N: 4})
	b := ctx.Intern(&types.Array{Elem: types.I32, N: 4})
	require.Same(t, a, b)
}

func TestInternDistinguishesStructurallyDifferentTypes(t *testing.T) {
	ctx := New()
	a := ctx.Intern(&types.Array{Elem: types.I32, N: 4})
	b := ctx.Intern(&types.Array{Elem: types.I32, N: 5})
	require.NotSame(t, a, b)
}

func TestInternCountGrowsOncePerDistinctType(t *testing.T) {
	ctx := New()
	require.Equal(t, 0, ctx.InternedCount())
	ctx.Intern(types.I32)
	ctx.Intern(types.I32)
	require.Equal(t, 1, ctx.InternedCount())
	ctx.Intern(types.Bool)
	require.Equal(t, 2, ctx.InternedCount())
}

func TestScratchSetGetAndReset(t *testing.T) {
	ctx := New()
	ctx.ScratchSet("key", 42)
	v, ok := ctx.ScratchGet("key")
	require.True(t, ok)
	require.Equal(t, 42, v)

	ctx.ResetScratch()
	_, ok = ctx.ScratchGet("key")
	require.False(t, ok)
}

func TestEachContextHasADistinctID(t *testing.T) {
	a := New()
	b := New()
	require.NotEqual(t, a.ID, b.ID)
}
