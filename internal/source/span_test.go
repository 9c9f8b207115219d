package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanStringFormatsFileLineColumn(t *testing.T) {
	s := Span{File: "t.vela", Line: 3, Column: 7}
	require.Equal(t, "t.vela:3:7", s.String())
}

func TestSpanZero(t *testing.T) {
	require.True(t, (Span{}).Zero())
	require.False(t, (Span{Line: 1}).Zero())
	require.False(t, (Span{Column: 1}).Zero())
}

func TestLessOrdersByFileThenLineThenColumn(t *testing.T) {
	require.True(t, Less(Span{File: "a.vela"}, Span{File: "b.vela"}))
	require.False(t, Less(Span{File: "b.vela"}, Span{File: "a.vela"}))

	require.True(t, Less(Span{File: "t.vela", Line: 1}, Span{File: "t.vela", Line: 2}))
	require.True(t, Less(Span{File: "t.vela", Line: 1, Column: 1}, Span{File: "t.vela", Line: 1, Column: 2}))
	require.False(t, Less(Span{File: "t.vela", Line: 1, Column: 2}, Span{File: "t.vela", Line: 1, Column: 1}))
}
