package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/source"
)

func TestSummaryIsNoDiagnosticsWhenEmpty(t *testing.T) {
	bag := NewBag("")
	require.Equal(t, "no diagnostics", bag.Summary())
	require.False(t, bag.HasErrors())
}

func TestSummaryPluralizesCounts(t *testing.T) {
	bag := NewBag("")
	bag.AddError("bad thing", source.Span{Line: 1, Column: 1}, "")
	require.Equal(t, "1 error", bag.Summary())

	bag.AddError("another bad thing", source.Span{Line: 2, Column: 1}, "")
	require.Equal(t, "2 errors", bag.Summary())

	bag.AddWarning("heads up", source.Span{Line: 3, Column: 1}, "")
	require.Equal(t, "2 errors, 1 warning", bag.Summary())

	bag.AddNote("fyi", source.Span{Line: 4, Column: 1}, "")
	require.Equal(t, "2 errors, 1 warning, 1 note", bag.Summary())
}

func TestHasErrorsOnlyTrueForErrorLevel(t *testing.T) {
	bag := NewBag("")
	bag.AddWarning("just a warning", source.Span{Line: 1, Column: 1}, "")
	bag.AddNote("just a note", source.Span{Line: 1, Column: 1}, "")
	require.False(t, bag.HasErrors())
	bag.AddError("now an error", source.Span{Line: 1, Column: 1}, "")
	require.True(t, bag.HasErrors())
}

func TestCountsTallyEachLevel(t *testing.T) {
	bag := NewBag("")
	bag.AddError("e1", source.Span{}, "")
	bag.AddError("e2", source.Span{}, "")
	bag.AddWarning("w1", source.Span{}, "")
	errs, warns, notes := bag.Counts()
	require.Equal(t, 2, errs)
	require.Equal(t, 1, warns)
	require.Equal(t, 0, notes)
}

func TestAllPreservesEmissionOrder(t *testing.T) {
	bag := NewBag("")
	bag.AddError("first", source.Span{}, "")
	bag.AddWarning("second", source.Span{}, "")
	all := bag.All()
	require.Len(t, all, 2)
	require.Equal(t, "first", all[0].Message)
	require.Equal(t, "second", all[1].Message)
}

func TestAddDiagnosticAppendsRawEntry(t *testing.T) {
	bag := NewBag("")
	bag.AddDiagnostic(Diagnostic{Level: Error, Message: "merged in"})
	require.True(t, bag.HasErrors())
	require.Equal(t, "merged in", bag.All()[0].Message)
}

func TestPrintRendersMessageSourceLineAndCaret(t *testing.T) {
	src := "function f() -> i32 {\n\treturn true;\n}\n"
	bag := NewBag(src)
	bag.AddError("condition must be Bool, found i32", source.Span{Line: 2, Column: 9, Length: 4}, "change the return type or the value")

	var buf bytes.Buffer
	bag.Print(&buf) // bytes.Buffer is never a terminal, so no ANSI colour codes are emitted
	out := buf.String()

	require.Contains(t, out, "error: condition must be Bool, found i32")
	require.Contains(t, out, "\treturn true;")
	require.Contains(t, out, "^^^^")
	require.Contains(t, out, "= help: change the return type or the value")
	require.NotContains(t, out, "\x1b[")
}

func TestPrintOmitsHintWhenAbsent(t *testing.T) {
	bag := NewBag("x\n")
	bag.AddError("oops", source.Span{Line: 1, Column: 1, Length: 1}, "")
	var buf bytes.Buffer
	bag.Print(&buf)
	require.NotContains(t, buf.String(), "help:")
}

func TestLevelStringNames(t *testing.T) {
	require.Equal(t, "error", Error.String())
	require.Equal(t, "warning", Warning.String())
	require.Equal(t, "note", Note.String())
}
