package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRecognizesVelaAndFe(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.IsSourceFile("main.vela"))
	require.True(t, cfg.IsSourceFile("main.fe"))
	require.False(t, cfg.IsSourceFile("main.go"))
}

func TestLoadOverridesExtensionsAndEffects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vela.yaml")
	contents := "source_extensions: [\".v\"]\neffects:\n  http_get: net\ncolour: never\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.IsSourceFile("main.v"))
	require.False(t, cfg.IsSourceFile("main.vela"))
	eff, ok := cfg.EffectFor("http_get")
	require.True(t, ok)
	require.Equal(t, "net", eff)
	require.Equal(t, "never", cfg.Colour)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestEffectForUnknownReturnsFalse(t *testing.T) {
	cfg := Default()
	_, ok := cfg.EffectFor("not_a_primitive")
	require.False(t, ok)
}
