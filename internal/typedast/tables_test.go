package typedast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/source"
)

func TestHoverTableAtFindsContainingSpan(t *testing.T) {
	h := NewHoverTable()
	h.Add(source.Span{File: "t.vela", Line: 2, Column: 5, Length: 3}, "i32")
	h.Add(source.Span{File: "t.vela", Line: 4, Column: 1, Length: 1}, "Bool")
	h.Finalize()

	text, ok := h.At("t.vela", 2, 6)
	require.True(t, ok)
	require.Equal(t, "i32", text)
}

func TestHoverTableAtMissesOutsideAnySpan(t *testing.T) {
	h := NewHoverTable()
	h.Add(source.Span{File: "t.vela", Line: 2, Column: 5, Length: 3}, "i32")
	h.Finalize()

	_, ok := h.At("t.vela", 2, 50)
	require.False(t, ok)

	_, ok = h.At("other.vela", 2, 6)
	require.False(t, ok)
}

func TestHoverTableFinalizeIsIdempotent(t *testing.T) {
	h := NewHoverTable()
	h.Add(source.Span{File: "t.vela", Line: 3, Column: 1, Length: 2}, "x")
	h.Add(source.Span{File: "t.vela", Line: 1, Column: 1, Length: 2}, "y")
	h.Finalize()
	h.Finalize()

	text, ok := h.At("t.vela", 1, 1)
	require.True(t, ok)
	require.Equal(t, "y", text)
}

func TestLocationTableDefinitionOfFollowsUseToDef(t *testing.T) {
	l := NewLocationTable()
	l.AddDef("add", source.Span{File: "t.vela", Line: 1, Column: 10, Length: 3})
	l.AddUse("add", source.Span{File: "t.vela", Line: 5, Column: 3, Length: 3})
	l.Finalize()

	span, ok := l.DefinitionOf("t.vela", 5, 4)
	require.True(t, ok)
	require.Equal(t, 1, span.Line)
	require.Equal(t, 10, span.Column)
}

func TestLocationTableDefinitionOfMissesOutsideAnyUse(t *testing.T) {
	l := NewLocationTable()
	l.AddDef("add", source.Span{File: "t.vela", Line: 1, Column: 10, Length: 3})
	l.AddUse("add", source.Span{File: "t.vela", Line: 5, Column: 3, Length: 3})
	l.Finalize()

	_, ok := l.DefinitionOf("t.vela", 5, 100)
	require.False(t, ok)
}

func TestLocationTableReferencesToIncludesDefAndAllUses(t *testing.T) {
	l := NewLocationTable()
	defSpan := source.Span{File: "t.vela", Line: 1, Column: 10, Length: 3}
	use1 := source.Span{File: "t.vela", Line: 5, Column: 3, Length: 3}
	use2 := source.Span{File: "t.vela", Line: 7, Column: 8, Length: 3}
	l.AddDef("add", defSpan)
	l.AddUse("add", use1)
	l.AddUse("add", use2)
	l.Finalize()

	refs := l.ReferencesTo(use1)
	require.ElementsMatch(t, []source.Span{defSpan, use1, use2}, refs)
}

func TestLocationTableReferencesToUnknownSpanReturnsNil(t *testing.T) {
	l := NewLocationTable()
	l.AddDef("add", source.Span{File: "t.vela", Line: 1, Column: 10, Length: 3})
	l.Finalize()

	refs := l.ReferencesTo(source.Span{File: "t.vela", Line: 99, Column: 1})
	require.Nil(t, refs)
}
