// Package config loads settings for the pas command-line tool.
//
// A configuration file is TOML or YAML, chosen by extension:
//
//	[log]
//	level  = "info"   # debug | info | warn | error
//	format = "text"   # text | json
//
//	[output]
//	color      = true
//	show_ast   = false
//	ast_format = "levels"   # levels | sexpr
//
// Missing keys fall back to [Default].
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted by [LoadFromEnv].
const EnvVar = "PAS_CONFIG"

// Config holds the complete tool configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig controls what the commands print and how.
type OutputConfig struct {
	Color     *bool  `toml:"color" yaml:"color"`
	ShowAST   bool   `toml:"show_ast" yaml:"show_ast"`
	ASTFormat string `toml:"ast_format" yaml:"ast_format"`
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// UseColor reports whether styled output is enabled.
func (c *Config) UseColor() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: TOML: %w", path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: YAML: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by PAS_CONFIG, else ./pas.toml or
// ./pas.yaml when present, else returns [Default].
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range []string{"./pas.toml", "./pas.yaml", "./pas.yml"} {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q (want text or json)", c.Log.Format)
	}
	switch c.Output.ASTFormat {
	case "levels", "sexpr":
	default:
		return fmt.Errorf("invalid output.ast_format %q (want levels or sexpr)", c.Output.ASTFormat)
	}
	return nil
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.ASTFormat == "" {
		c.Output.ASTFormat = "levels"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
}

// detectFormat determines the configuration format from the file extension.
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unsupported config file %s: want .toml, .yaml or .yml", path)
}
