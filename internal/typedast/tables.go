// Package typedast defines the typed syntax tree produced once all
// seven analysis passes complete, plus the two side tables a language
// server would query: hover text and definition/reference locations.
// Both tables are flat, span-sorted slices queried by binary search
// (sort.Search), per spec.md §6's "no tree walk at query time"
// requirement — grounded on funvibe/funxy's cmd/lsp query handlers,
// which perform the same flat-slice-plus-binary-search lookup over a
// pre-built index rather than re-walking the AST per request.
package typedast

import (
	"sort"

	"github.com/velalang/vela/internal/source"
)

// HoverEntry is one span's worth of hover text.
type HoverEntry struct {
	Span source.Span
	Text string
}

// HoverTable is the span-sorted index consulted by HoverAt.
type HoverTable struct {
	entries  []HoverEntry
	finalized bool
}

// NewHoverTable creates an empty table; call Add for every node worth
// describing on hover, then Finalize once before querying.
func NewHoverTable() *HoverTable {
	return &HoverTable{}
}

// Add records one hover entry. Safe to call only before Finalize.
func (h *HoverTable) Add(span source.Span, text string) {
	h.entries = append(h.entries, HoverEntry{Span: span, Text: text})
}

// Finalize sorts the collected entries by span, enabling binary search.
// Idempotent.
func (h *HoverTable) Finalize() {
	if h.finalized {
		return
	}
	sort.Slice(h.entries, func(i, j int) bool { return source.Less(h.entries[i].Span, h.entries[j].Span) })
	h.finalized = true
}

// At returns the hover text whose span contains (line, col) in file,
// or ("", false) if nothing covers that position.
func (h *HoverTable) At(file string, line, col int) (string, bool) {
	i := sort.Search(len(h.entries), func(i int) bool {
		e := h.entries[i]
		if e.Span.Line != line {
			return e.Span.Line >= line
		}
		return e.Span.Column+e.Span.Length > col
	})
	for j := i; j >= 0 && j < len(h.entries); j-- {
		e := h.entries[j]
		if e.Span.File != file || e.Span.Line != line {
			break
		}
		if col >= e.Span.Column && col < e.Span.Column+maxInt(e.Span.Length, 1) {
			return e.Text, true
		}
	}
	return "", false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Use is one identifier occurrence that resolves to a declaration.
type Use struct {
	Span source.Span
	Name string
}

// LocationTable indexes definitions and uses for definition_of and
// references_to queries.
type LocationTable struct {
	defs      map[string]source.Span
	defOrder  []string
	uses      []Use
	finalized bool
}

// NewLocationTable creates an empty table.
func NewLocationTable() *LocationTable {
	return &LocationTable{defs: make(map[string]source.Span)}
}

// AddDef records where name was declared.
func (l *LocationTable) AddDef(name string, span source.Span) {
	if _, exists := l.defs[name]; !exists {
		l.defOrder = append(l.defOrder, name)
	}
	l.defs[name] = span
}

// AddUse records an identifier occurrence resolving to name.
func (l *LocationTable) AddUse(name string, span source.Span) {
	l.uses = append(l.uses, Use{Span: span, Name: name})
}

// Finalize sorts uses by span for binary search. Idempotent.
func (l *LocationTable) Finalize() {
	if l.finalized {
		return
	}
	sort.Slice(l.uses, func(i, j int) bool { return source.Less(l.uses[i].Span, l.uses[j].Span) })
	l.finalized = true
}

// DefinitionOf resolves the declaration span of whatever identifier
// occupies (line, col) in file, by locating the enclosing use and
// following it to its definition.
func (l *LocationTable) DefinitionOf(file string, line, col int) (source.Span, bool) {
	i := sort.Search(len(l.uses), func(i int) bool {
		u := l.uses[i]
		if u.Span.Line != line {
			return u.Span.Line >= line
		}
		return u.Span.Column+u.Span.Length > col
	})
	for j := i; j >= 0 && j < len(l.uses); j-- {
		u := l.uses[j]
		if u.Span.File != file || u.Span.Line != line {
			break
		}
		if col >= u.Span.Column && col < u.Span.Column+maxInt(u.Span.Length, 1) {
			span, ok := l.defs[u.Name]
			return span, ok
		}
	}
	return source.Span{}, false
}

// ReferencesTo returns every span — the declaration and every use —
// that refers to the same name as the declaration or use at span.
func (l *LocationTable) ReferencesTo(span source.Span) []source.Span {
	var name string
	found := false
	for n, d := range l.defs {
		if d == span {
			name, found = n, true
			break
		}
	}
	if !found {
		for _, u := range l.uses {
			if u.Span == span {
				name, found = u.Name, true
				break
			}
		}
	}
	if !found {
		return nil
	}
	var out []source.Span
	if d, ok := l.defs[name]; ok {
		out = append(out, d)
	}
	for _, u := range l.uses {
		if u.Name == name {
			out = append(out, u.Span)
		}
	}
	return out
}
