// Package analyzer runs the seven-pass semantic analysis pipeline over
// a parsed module (spec.md §4): declaration collection, type
// resolution, type checking, effect checking, error-domain checking,
// region/move checking, and pattern exhaustiveness. It follows
// funvibe/funxy's internal/analyzer walker shape (a single struct
// type-switching over *ast.Node rather than the Accept(Visitor)
// double-dispatch, which funxy reserves for simpler single-purpose
// walks) but replaces funxy's Hindley-Milner inference with direct
// checking against Vela's explicit type annotations.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/velalang/vela/internal/ast"
	"github.com/velalang/vela/internal/compctx"
	"github.com/velalang/vela/internal/config"
	"github.com/velalang/vela/internal/diagnostics"
	"github.com/velalang/vela/internal/errdomain"
	"github.com/velalang/vela/internal/source"
	"github.com/velalang/vela/internal/symbols"
	"github.com/velalang/vela/internal/typedast"
	"github.com/velalang/vela/internal/types"
)

// Result is everything analysis produces for one compiled module,
// matching the public surface named in spec.md §6.
type Result struct {
	TypedModule *typedast.Module // nil if pass 1 found fatal declaration errors
	Diagnostics *diagnostics.Bag
	Hover       *typedast.HoverTable
	Locations   *typedast.LocationTable
	Context     *compctx.Context
}

// pipeline carries the state all seven passes share.
type pipeline struct {
	bag     *diagnostics.Bag
	ctx     *compctx.Context
	symbols *symbols.Table
	domains *errdomain.Table

	// funcSigs maps a function name to its resolved signature, filled by
	// pass 1 (arity/declared clauses) and pass 2 (resolved param/return
	// types), consulted by every later pass.
	funcSigs map[string]*funcSig

	// typeDecls maps a user type name to its declared AST node, recorded
	// in pass 1 and resolved into types.Type in pass 2.
	typeDecls map[string]*ast.TypeDecl
	resolved  map[string]types.Type

	// copyMove records the `copy`/`move` keyword of each user type that
	// declares one, as read by pass 1; types without one are classified
	// structurally by pass 6's isMoveOnly.
	copyMove map[string]string

	hover     *typedast.HoverTable
	locations *typedast.LocationTable

	// exprTypes records the resolved type of every expression node pass
	// 3 successfully typed, consulted by later passes and by the typed
	// tree builder.
	exprTypes map[ast.Node]types.Type

	cfg *config.Config // effect table + colour default; Default() if none given

	fatal bool // true when pass 1 found errors severe enough to skip 2-7
}

type funcSig struct {
	decl        *ast.FunctionDecl
	paramTypes  []types.Type
	returnType  types.Type
	effects     []string
	errorDomain string
	pub         bool
}

// Analyze runs lexing's output (a parsed Module) through all seven
// passes and returns the combined result. Passes 2 through 7 always
// run, even when earlier passes found errors, per spec.md §4's
// maximize-diagnostics-per-compile design — only pass 1's own fatal
// declaration errors (a function or type whose name is already
// declared) skip the rest,
// since everything downstream depends on a coherent declaration set.
// Pass 1's other errors (duplicate consts, vars, domains or error
// variants, undeclared union members) do not stop passes 2-7.
func Analyze(module *ast.Module) *Result {
	return AnalyzeSource(module, "", config.Default())
}

// AnalyzeSource is Analyze with the original source text (so the
// diagnostics bag can render snippet lines) and an explicit
// configuration (so a vela.yaml's effect-table overrides can reshape
// pass 4 without recompiling the built-in table).
func AnalyzeSource(module *ast.Module, source string, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.Default()
	}
	p := &pipeline{
		bag:       diagnostics.NewBag(source),
		ctx:       compctx.New(),
		symbols:   symbols.NewTable(),
		domains:   errdomain.NewTable(),
		funcSigs:  make(map[string]*funcSig),
		typeDecls: make(map[string]*ast.TypeDecl),
		resolved:  make(map[string]types.Type),
		copyMove:  make(map[string]string),
		hover:     typedast.NewHoverTable(),
		locations: typedast.NewLocationTable(),
		exprTypes: make(map[ast.Node]types.Type),
		cfg:       cfg,
	}

	p.pass1DeclareModule(module)
	p.ctx.ResetScratch()

	if p.fatal {
		p.hover.Finalize()
		p.locations.Finalize()
		return &Result{Diagnostics: p.bag, Hover: p.hover, Locations: p.locations, Context: p.ctx}
	}

	p.pass2ResolveModule(module)
	p.ctx.ResetScratch()

	p.pass3TypeCheckModule(module)
	p.ctx.ResetScratch()

	p.pass4EffectCheckModule(module)
	p.ctx.ResetScratch()

	p.pass5ErrorDomainCheckModule(module)
	p.ctx.ResetScratch()

	p.pass6RegionCheckModule(module)
	p.ctx.ResetScratch()

	p.pass7ExhaustivenessCheckModule(module)

	p.hover.Finalize()
	p.locations.Finalize()

	var typed *typedast.Module
	if !p.fatal {
		typed = typedast.Build(module, p.typeOf)
	}

	return &Result{
		TypedModule: typed,
		Diagnostics: p.bag,
		Hover:       p.hover,
		Locations:   p.locations,
		Context:     p.ctx,
	}
}

// typeOf is a best-effort lookup used by typedast.Build to annotate
// nodes whose type was recorded during checking; nodes pass 3 never
// reached (e.g. dead code after a fatal parse error) get the Unknown
// sentinel.
func (p *pipeline) typeOf(n ast.Node) types.Type {
	if t, ok := p.exprTypes[n]; ok {
		return t
	}
	return types.Unknown
}

func (p *pipeline) errorAt(span source.Span, msg, hint string) {
	p.bag.AddError(msg, span, hint)
}

func (p *pipeline) warnAt(span source.Span, msg, hint string) {
	p.bag.AddWarning(msg, span, hint)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func effectsString(effects []string) string {
	return fmt.Sprintf("%v", effects)
}
