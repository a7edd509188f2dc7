// Package config loads CheckerConfig, the checker's small set of
// run-time knobs, from an optional YAML file.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// CheckerConfig holds the checker's run-time knobs.
type CheckerConfig struct {
	// Strict is passed through to the checker; no check currently
	// reads it, so it does not change any diagnostic.
	Strict bool `yaml:"strict"`

	// BuiltinStubPath overrides the embedded builtins.yaml.
	BuiltinStubPath string `yaml:"builtin_stub_path"`

	// ColorDiagnostics is "auto", "always", or "never".
	ColorDiagnostics string `yaml:"color_diagnostics"`
}

// Default returns the zero-config defaults: not strict, embedded
// stub, TTY-detected color.
func Default() *CheckerConfig {
	return &CheckerConfig{ColorDiagnostics: "auto"}
}

// Load reads path (if non-empty) and merges it over Default().
func Load(path string) (*CheckerConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	if cfg.ColorDiagnostics == "" {
		cfg.ColorDiagnostics = "auto"
	}
	return cfg, nil
}
