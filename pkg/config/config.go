// Package config loads the CLI's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read from the working directory when no --config is given.
const DefaultPath = ".loosejson.yml"

// Output formats accepted by the parse command.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatRaw  = "raw"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds settings shared by the CLI commands.
type Config struct {
	Comments  bool   `yaml:"comments"`
	StrictEnd bool   `yaml:"strict_end"`
	MaxDepth  int    `yaml:"max_depth"`
	Format    string `yaml:"format"`
	Color     string `yaml:"color"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Format: FormatTree,
		Color:  ColorAuto,
	}
}

// Load reads the file at path. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that enumerated fields hold known values. A zero
// MaxDepth selects the parser default.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Format {
	case FormatTree, FormatJSON, FormatRaw:
	default:
		return fmt.Errorf("config: unknown format %q (want %s, %s or %s)", c.Format, FormatTree, FormatJSON, FormatRaw)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: unknown color mode %q (want %s, %s or %s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	return nil
}
