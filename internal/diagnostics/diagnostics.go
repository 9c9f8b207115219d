// Package diagnostics implements the structured error/warning/note
// collector described in spec.md §4.1: append-only within a compilation,
// rendered with source snippets, carets, and optional hints.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/velalang/vela/internal/source"
)

type Level int

const (
	Error Level = iota
	Warning
	Note
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Diagnostic is one structured compiler message.
type Diagnostic struct {
	Level   Level
	Message string
	Span    source.Span
	Hint    string
}

// Bag is the append-only collector owned by a compilation. It also holds
// the full source text so Print can render the failing line.
type Bag struct {
	source string
	lines  []string
	diags  []Diagnostic
}

// NewBag creates a diagnostics collector over the given source text.
func NewBag(src string) *Bag {
	return &Bag{source: src, lines: strings.Split(src, "\n")}
}

func (b *Bag) add(level Level, message string, span source.Span, hint string) {
	b.diags = append(b.diags, Diagnostic{Level: level, Message: message, Span: span, Hint: hint})
}

func (b *Bag) AddError(message string, span source.Span, hint string) {
	b.add(Error, message, span, hint)
}

func (b *Bag) AddWarning(message string, span source.Span, hint string) {
	b.add(Warning, message, span, hint)
}

func (b *Bag) AddNote(message string, span source.Span, hint string) {
	b.add(Note, message, span, hint)
}

// AddDiagnostic appends an already-constructed Diagnostic, e.g. one
// carried over from another Bag during merging.
func (b *Bag) AddDiagnostic(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// HasErrors reports whether any Error-level diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// All returns the diagnostics in emission order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// Counts returns the number of errors, warnings, and notes recorded.
func (b *Bag) Counts() (errs, warns, notes int) {
	for _, d := range b.diags {
		switch d.Level {
		case Error:
			errs++
		case Warning:
			warns++
		case Note:
			notes++
		}
	}
	return
}

// Summary renders a humanized one-line count, e.g. "3 errors, 1 warning".
func (b *Bag) Summary() string {
	errs, warns, notes := b.Counts()
	parts := make([]string, 0, 3)
	if errs > 0 {
		parts = append(parts, humanize.Comma(int64(errs))+" "+plural("error", errs))
	}
	if warns > 0 {
		parts = append(parts, humanize.Comma(int64(warns))+" "+plural("warning", warns))
	}
	if notes > 0 {
		parts = append(parts, humanize.Comma(int64(notes))+" "+plural("note", notes))
	}
	if len(parts) == 0 {
		return "no diagnostics"
	}
	return strings.Join(parts, ", ")
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// colourEnabled decides whether ANSI colour should be applied: the
// output must be a terminal and NO_COLOR must be absent, per spec.md §6.
func colourEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	colReset  = "\x1b[0m"
	colRed    = "\x1b[31m"
	colYellow = "\x1b[33m"
	colCyan   = "\x1b[36m"
)

func levelColour(l Level) string {
	switch l {
	case Error:
		return colRed
	case Warning:
		return colYellow
	default:
		return colCyan
	}
}

// Print renders every diagnostic in emission order as:
//
//	<level>: <message>
//	  ┌─ <file>:<line>:<col>
//	 LL │ <source line>
//	    │   ^^^^
//	    │
//	    = help: <hint>
func (b *Bag) Print(w io.Writer) {
	colour := colourEnabled(w)
	for _, d := range b.diags {
		b.printOne(w, d, colour)
	}
}

func (b *Bag) printOne(w io.Writer, d Diagnostic, colour bool) {
	level := d.Level.String()
	if colour {
		fmt.Fprintf(w, "%s%s%s: %s\n", levelColour(d.Level), level, colReset, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s\n", level, d.Message)
	}
	fmt.Fprintf(w, "  ┌─ %s\n", d.Span.String())

	lineIdx := d.Span.Line - 1
	gutter := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(gutter))

	if lineIdx >= 0 && lineIdx < len(b.lines) {
		fmt.Fprintf(w, " %s │ %s\n", gutter, b.lines[lineIdx])
	}

	caretLen := d.Span.Length
	if caretLen < 1 {
		caretLen = 1
	}
	col := d.Span.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(w, " %s │ %s%s\n", pad, strings.Repeat(" ", col-1), strings.Repeat("^", caretLen))
	fmt.Fprintf(w, " %s │\n", pad)

	if d.Hint != "" {
		fmt.Fprintf(w, " %s = help: %s\n", pad, d.Hint)
	}
}
