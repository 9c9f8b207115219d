package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velalang/vela/internal/token"
)

// TestLexemeRoundTrip is spec.md §8's testable property 1: for every
// token, its lexeme slice is exactly the substring of the source at its
// span (line/column here, since Lexer does not track byte offsets
// directly — we re-derive the expected substring by splitting lines).
func TestLexemeRoundTrip(t *testing.T) {
	src := "function add(a: i32, b: i32) -> i32 {\n\treturn a + b;\n}\n"
	lines := splitLines(src)

	l := New("t.vela", src)
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF || tok.Type == token.NEWLINE {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		line := lines[tok.Line-1]
		col := tok.Column - 1
		require.GreaterOrEqual(t, col, 0, "token %q at bad column", tok.Lexeme)
		require.LessOrEqual(t, col+len([]rune(tok.Lexeme)), len([]rune(line))+1)
		got := string([]rune(line)[col : col+len([]rune(tok.Lexeme))])
		require.Equal(t, tok.Lexeme, got, "lexeme must match source substring at its span")
	}
}

func splitLines(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == '\n' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(r)
	}
	out = append(out, cur)
	return out
}

func TestKeywordsLexAsKeywordTokens(t *testing.T) {
	l := New("t.vela", "function const var effects capability match ok err check ensure map_error")
	want := []token.Type{
		token.KW_FUNCTION, token.KW_CONST, token.KW_VAR, token.KW_EFFECTS,
		token.KW_CAPABILITY, token.KW_MATCH, token.KW_OK, token.KW_ERR,
		token.KW_CHECK, token.KW_ENSURE, token.KW_MAP_ERROR, token.EOF,
	}
	for _, w := range want {
		require.Equal(t, w, l.NextToken().Type)
	}
}

func TestIdentifierIsNotKeyword(t *testing.T) {
	l := New("t.vela", "functionName")
	tok := l.NextToken()
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "functionName", tok.Lexeme)
}

func TestIntegerLiteralBases(t *testing.T) {
	l := New("t.vela", "0xFF 0b1010 0o17 1_000_000")
	for _, want := range []string{"0xFF", "0b1010", "0o17", "1_000_000"} {
		tok := l.NextToken()
		require.Equal(t, token.INT, tok.Type)
		require.Equal(t, want, tok.Lexeme)
	}
}

func TestFloatLiteralWithExponent(t *testing.T) {
	l := New("t.vela", "3.14 2e10 1.5e-3")
	for _, want := range []string{"3.14", "2e10", "1.5e-3"} {
		tok := l.NextToken()
		require.Equal(t, token.FLOAT, tok.Type)
		require.Equal(t, want, tok.Lexeme)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New("t.vela", `"a\nb\tc\\d\"e"`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "a\nb\tc\\d\"e", tok.Lexeme)
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New("t.vela", `"unterminated`)
	tok := l.NextToken()
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestCharLiteral(t *testing.T) {
	l := New("t.vela", `'a' '\n'`)
	tok := l.NextToken()
	require.Equal(t, token.CHAR, tok.Type)
	require.Equal(t, "a", tok.Lexeme)
	tok = l.NextToken()
	require.Equal(t, token.CHAR, tok.Type)
	require.Equal(t, "\n", tok.Lexeme)
}

func TestNestedBlockComments(t *testing.T) {
	l := New("t.vela", "/* outer /* inner */ still-comment */ident")
	tok := l.NextToken()
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "ident", tok.Lexeme)
}

func TestLineCommentStopsAtNewline(t *testing.T) {
	l := New("t.vela", "// comment\nident")
	tok := l.NextToken()
	require.Equal(t, token.NEWLINE, tok.Type)
	tok = l.NextToken()
	require.Equal(t, token.IDENT, tok.Type)
}

func TestMultiCharPunctuation(t *testing.T) {
	src := "== != <= >= && || << >> ++ .. ..= -> =>"
	l := New("t.vela", src)
	want := []token.Type{
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.AND, token.OR,
		token.SHL, token.SHR, token.CONCAT, token.DOT_DOT, token.DOT_DOT_EQ,
		token.ARROW, token.FAT_ARROW,
	}
	for _, w := range want {
		tok := l.NextToken()
		require.Equal(t, w, tok.Type, "lexeme %q", tok.Lexeme)
	}
}

func TestUnknownCharacterIsIllegal(t *testing.T) {
	l := New("t.vela", "@")
	tok := l.NextToken()
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestParseIntLiteralStripsUnderscores(t *testing.T) {
	n, err := ParseIntLiteral("1_000_000")
	require.NoError(t, err)
	require.Equal(t, int64(1000000), n)
}

func TestParseFloatLiteral(t *testing.T) {
	f, err := ParseFloatLiteral("1_2.5")
	require.NoError(t, err)
	require.InDelta(t, 12.5, f, 0.0001)
}
