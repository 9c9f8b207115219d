package vela

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/token"
)

const sampleSource = `
pub function add(a: i32, b: i32) -> i32 {
	return a + b;
}
`

func TestAnalyzeCleanSourceHasNoErrors(t *testing.T) {
	unit := Analyze(sampleSource, "sample.vela")
	require.NotNil(t, unit.TypedModule)
	require.False(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeConditionMustBeBool(t *testing.T) {
	src := `
function classify(n: i32) -> i32 {
	if n {
		return 1;
	}
	return 0;
}
`
	unit := Analyze(src, "cond.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestLexProducesEOFTerminatedStream(t *testing.T) {
	toks := Lex("function main() {}")
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestHoverAtIdentifier(t *testing.T) {
	unit := Analyze(sampleSource, "sample.vela")
	_, _ = unit.HoverAt("sample.vela", 2, 12) // exercising the query path; position need not resolve
}

func TestAnalyzePrimitiveArithmeticIsClean(t *testing.T) {
	unit := Analyze(sampleSource, "sample.vela")
	require.False(t, unit.Diagnostics.HasErrors())
	require.NotNil(t, unit.TypedModule)
}

func TestAnalyzeUndefinedIdentifierIsExactlyOneError(t *testing.T) {
	src := `
function f() -> i32 {
	return missing;
}
`
	unit := Analyze(src, "undef.vela")
	require.True(t, unit.Diagnostics.HasErrors())
	errs, _, _ := unit.Diagnostics.Counts()
	require.Equal(t, 1, errs)
}

func TestAnalyzeWrongArgumentCountIsAnError(t *testing.T) {
	src := `
function add(a: i32, b: i32) -> i32 {
	return a + b;
}

function f() -> i32 {
	return add(1);
}
`
	unit := Analyze(src, "arity.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzePrimitiveEffectOperationIsCallable confirms that a
// primitive effectful operation (here, 'print', which requires 'io')
// is recognised as callable rather than rejected as an undefined
// identifier, and is gated purely by the declared effect clause.
func TestAnalyzePrimitiveEffectOperationIsCallable(t *testing.T) {
	clean := Analyze(`
function greet() -> Unit effects [io] {
	print("hi");
}
`, "print_ok.vela")
	require.False(t, clean.Diagnostics.HasErrors())

	leaky := Analyze(`
function greet() -> Unit effects [] {
	print("hi");
}
`, "print_leak.vela")
	require.True(t, leaky.Diagnostics.HasErrors())
}

func TestAnalyzeImmutableAssignmentIsAnError(t *testing.T) {
	src := `
function f() -> i32 {
	const x = 1;
	x = 2;
	return x;
}
`
	unit := Analyze(src, "immut.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeEffectLeakIsAnError(t *testing.T) {
	src := `
function greet() -> Unit effects [io] {
}

function f() -> Unit effects [] {
	greet();
}
`
	unit := Analyze(src, "effects.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeDeclaredEffectIsClean(t *testing.T) {
	src := `
function greet() -> Unit effects [io] {
}

function f() -> Unit effects [io] {
	greet();
}
`
	unit := Analyze(src, "effects_ok.vela")
	require.False(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzeNonExhaustiveMatchIsAnError exercises pass 7 against a
// union produced by a `type` declaration, the only form that resolves
// to a real discriminated-union type for a match scrutinee (a `domain`
// declaration only populates the error-domain table, not the type
// table).
func TestAnalyzeNonExhaustiveMatchIsAnError(t *testing.T) {
	src := `
type Shape = Circle { r: f64 } | Square { side: f64 };

function area(s: Shape) -> f64 {
	return match s {
		Circle { r } -> r;
	};
}
`
	unit := Analyze(src, "exhaustive.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeExhaustiveMatchWithWildcardIsClean(t *testing.T) {
	src := `
type Shape = Circle { r: f64 } | Square { side: f64 };

function area(s: Shape) -> f64 {
	return match s {
		Circle { r } -> r;
		_ -> 0.0;
	};
}
`
	unit := Analyze(src, "exhaustive_ok.vela")
	require.False(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzeErrVariantMissingFieldIsAnError exercises pass 5's
// variant-field validation on an 'err' construction.
func TestAnalyzeErrVariantMissingFieldIsAnError(t *testing.T) {
	src := `
domain D = {
	NotFound { code: i32 }
}

function f() -> i32 error D {
	return err NotFound {};
}
`
	unit := Analyze(src, "errfield.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeErrVariantCleanIsOk(t *testing.T) {
	src := `
domain D = {
	NotFound { code: i32 }
}

function f() -> i32 error D {
	return err NotFound { code: 1 };
}
`
	unit := Analyze(src, "errfield_ok.vela")
	require.False(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzeCheckSubsetDomainIsClean exercises pass 5's domain-subset
// propagation rule: checking a callee whose domain (D1) is a subset of
// the caller's declared domain (D2) is legal.
func TestAnalyzeCheckSubsetDomainIsClean(t *testing.T) {
	src := `
domain D1 = {
	NotFound {}
}

domain D2 = {
	NotFound {},
	Timeout {}
}

function g() -> i32 error D1 {
	return err NotFound {};
}

function f() -> i32 error D2 {
	return check g();
}
`
	unit := Analyze(src, "subset_ok.vela")
	require.False(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeCheckNonSubsetDomainIsAnError(t *testing.T) {
	src := `
domain D1 = {
	NotFound {}
}

domain D2 = {
	NotFound {},
	Timeout {}
}

function g() -> i32 error D2 {
	return err NotFound {};
}

function f() -> i32 error D1 {
	return check g();
}
`
	unit := Analyze(src, "subset_err.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzeOkErrOutsideFallibleFunctionIsAnError exercises pass 3/5's
// legality gate: 'ok'/'err' require an enclosing declared error domain.
func TestAnalyzeOkErrOutsideFallibleFunctionIsAnError(t *testing.T) {
	src := `
function f() -> i32 {
	return ok 1;
}
`
	unit := Analyze(src, "okoutside.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}

func TestAnalyzeOkWrappedReturnIsClean(t *testing.T) {
	src := `
domain D = {
	NotFound {}
}

function f() -> i32 error D {
	return ok 1;
}
`
	unit := Analyze(src, "okwrapped.vela")
	require.False(t, unit.Diagnostics.HasErrors())
}

// TestAnalyzeUseAfterMoveIsAnError exercises pass 6: a View-typed
// binding used twice is move-only and the second use is a use-after-move.
func TestAnalyzeUseAfterMoveIsAnError(t *testing.T) {
	src := `
function consume(v: View<i32>) -> Unit {
}

function f(v: View<i32>) -> Unit {
	consume(v);
	consume(v);
}
`
	unit := Analyze(src, "move.vela")
	require.True(t, unit.Diagnostics.HasErrors())
}
