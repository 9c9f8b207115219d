// Package config loads the compiler's YAML-configurable settings:
// recognized source extensions, the effect-table mapping primitive
// operation names to the capability they require, and diagnostic
// colour defaults. Mirrors funxy's own internal/config +
// internal/ext's "declared behavior lives in a small struct loaded
// from YAML" split, rather than funxy's own hardcoded
// SourceFileExtensions var.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the extension new Vela source files are written
// with; SourceFileExtensions lists every extension the toolchain
// recognizes as source on disk (spec.md §6 names ".fe" as the core's
// contract, kept alongside ".vela" for this project's own sources).
const SourceFileExt = ".vela"

var defaultSourceFileExtensions = []string{".vela", ".fe"}

// Config is the top-level shape of vela.yaml.
type Config struct {
	// SourceExtensions overrides the recognized source file extensions.
	SourceExtensions []string `yaml:"source_extensions,omitempty"`

	// Effects maps a primitive operation name to the capability effect
	// it requires, overriding/extending internal/analyzer's built-in
	// primitiveEffects table (§4.4.4).
	Effects map[string]string `yaml:"effects,omitempty"`

	// Colour holds the configured diagnostic colour mode: "auto" (the
	// default), "always", or "never". It is loaded and defaulted here
	// only: the diagnostics renderer does not read it and decides colour
	// from NO_COLOR and terminal detection alone.
	Colour string `yaml:"colour,omitempty"`
}

// Default returns the configuration used when no vela.yaml is present.
func Default() *Config {
	return &Config{
		SourceExtensions: append([]string(nil), defaultSourceFileExtensions...),
		Effects:          map[string]string{},
		Colour:           "auto",
	}
}

// Load reads and parses a vela.yaml file at path, falling back to
// Default() for any field left unset in the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = append([]string(nil), defaultSourceFileExtensions...)
	}
	if cfg.Colour == "" {
		cfg.Colour = "auto"
	}
	return cfg, nil
}

// IsSourceFile reports whether path ends in one of cfg's recognized
// source extensions.
func (cfg *Config) IsSourceFile(path string) bool {
	for _, ext := range cfg.SourceExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// EffectFor looks up the capability effect a configured primitive
// operation requires, returning ("", false) if name isn't in the
// table (the caller falls back to internal/analyzer's built-in one).
func (cfg *Config) EffectFor(name string) (string, bool) {
	eff, ok := cfg.Effects[name]
	return eff, ok
}
