// Package config loads an optional TOML file controlling non-normative
// assembler behavior: where outputs land, whether warnings are promoted
// to errors, and whether the per-file summary line is suppressed.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the optional overrides. Zero value reproduces the
// assembler's default behavior exactly.
type Config struct {
	Output struct {
		Dir string `toml:"dir"`
	} `toml:"output"`

	Diagnostics struct {
		Strict bool `toml:"strict"`
		Quiet  bool `toml:"quiet"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadFrom reads and decodes the TOML file at path. A missing file is
// not an error — it yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
