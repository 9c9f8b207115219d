// Package vela is the public surface named in spec.md §6: analyze a
// complete source unit, or drive lex/parse separately for tests and
// tooling, then query the resulting hover/location side tables.
// Everything here is a thin wrapper over internal/lexer,
// internal/parser, and internal/analyzer — no logic lives here beyond
// assembling their results into one exported Unit value, following
// funvibe/funxy's pkg/cli delegation shape (a small public package
// whose functions mostly call straight into internal/*).
package vela

import (
	"github.com/velalang/vela/internal/analyzer"
	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/compctx"
	"github.com/velalang/vela/internal/config"
	"github.com/velalang/vela/internal/diagnostics"
	"github.com/velalang/vela/internal/lexer"
	"github.com/velalang/vela/internal/parser"
	"github.com/velalang/vela/internal/source"
	"github.com/velalang/vela/internal/token"
	"github.com/velalang/vela/internal/typedast"
)

// Unit is everything one Analyze call produces, matching spec.md §6's
// `{ typed_module?, diagnostics, hover_table, location_table,
// compilation_context }` shape.
type Unit struct {
	TypedModule *typedast.Module
	Diagnostics *diagnostics.Bag
	Hover       *typedast.HoverTable
	Locations   *typedast.LocationTable
	Context     *compctx.Context
}

// Analyze runs the complete pipeline — lex, parse, seven analysis
// passes — over source text, using the default configuration (the
// ".vela"/".fe" source extensions and the built-in effect table).
func Analyze(source, fileName string) *Unit {
	return AnalyzeWithConfig(source, fileName, config.Default())
}

// AnalyzeWithConfig is Analyze with an explicit configuration, for
// callers that loaded a vela.yaml (e.g. cmd/velac).
func AnalyzeWithConfig(src, fileName string, cfg *config.Config) *Unit {
	bag := diagnostics.NewBag(src)
	module := parser.Parse(fileName, src, bag)
	result := analyzer.AnalyzeSource(module, src, cfg)
	// analyzer.AnalyzeSource builds its own internal bag seeded with the
	// same source; merge the parser's diagnostics in front of it so
	// callers see every parse error before any analysis error, each
	// group in the order it was emitted.
	merged := diagnostics.NewBag(src)
	for _, d := range bag.All() {
		merged.AddDiagnostic(d)
	}
	for _, d := range result.Diagnostics.All() {
		merged.AddDiagnostic(d)
	}
	return &Unit{
		TypedModule: result.TypedModule,
		Diagnostics: merged,
		Hover:       result.Hover,
		Locations:   result.Locations,
		Context:     result.Context,
	}
}

// Lex tokenizes source text, exposed for tests and tooling per
// spec.md §6.
func Lex(src string) []token.Token {
	l := lexer.New("", src)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	return toks
}

// ParseModule parses source text into an untyped module, exposed for
// tests and tooling per spec.md §6. Diagnostics from recoverable parse
// errors are appended to bag.
func ParseModule(fileName, src string, bag *diagnostics.Bag) *ast.Module {
	return parser.Parse(fileName, src, bag)
}

// HoverAt queries the unit's hover table at a source position.
func (u *Unit) HoverAt(file string, line, col int) (string, bool) {
	if u.Hover == nil {
		return "", false
	}
	return u.Hover.At(file, line, col)
}

// DefinitionOf resolves the declaration span of the identifier at a
// source position.
func (u *Unit) DefinitionOf(file string, line, col int) (source.Span, bool) {
	if u.Locations == nil {
		return source.Span{}, false
	}
	return u.Locations.DefinitionOf(file, line, col)
}

// ReferencesTo returns every span referring to the same binding as span.
func (u *Unit) ReferencesTo(span source.Span) []source.Span {
	if u.Locations == nil {
		return nil
	}
	return u.Locations.ReferencesTo(span)
}
