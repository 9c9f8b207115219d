package vela

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestGoldenFixtures runs every testdata/*.txtar archive's "source.vela"
// file through Analyze and compares the rendered diagnostics against
// the archive's own "diagnostics" file — one fixture bundles the input
// and its expected output together, in the teacher's heavily
// fixture-driven test style.
func TestGoldenFixtures(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var src string
			var want string
			var haveSource, haveDiagnostics bool
			for _, f := range ar.Files {
				switch f.Name {
				case "source.vela":
					src, haveSource = string(f.Data), true
				case "diagnostics":
					want, haveDiagnostics = string(f.Data), true
				}
			}
			require.True(t, haveSource, "fixture missing 'source.vela' file")
			require.True(t, haveDiagnostics, "fixture missing 'diagnostics' file")

			unit := Analyze(src, "source.vela")
			var got []string
			for _, d := range unit.Diagnostics.All() {
				got = append(got, d.Level.String()+": "+d.Message)
			}
			require.Equal(t, strings.TrimSpace(want), strings.TrimSpace(strings.Join(got, "\n")))
		})
	}
}
