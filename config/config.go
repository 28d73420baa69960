// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package config loads the settings of the tdl command from a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golangee/tdl/encoder"
	"github.com/golangee/tdl/parser"
	"golang.org/x/mod/semver"
)

// EnvConfig names the environment variable with the path of the config file.
const EnvConfig = "TDL_CONFIG"

// Config holds the complete configuration.
type Config struct {
	Grammar GrammarConfig `toml:"grammar"`
	Output  OutputConfig  `toml:"output"`
	Parse   ParseConfig   `toml:"parse"`
	Log     LogConfig     `toml:"log"`

	// path is the file the config was loaded from, if any.
	path string
}

// GrammarConfig describes the grammar the TDL files belong to.
type GrammarConfig struct {
	Name string `toml:"name"`
	// Version is a semantic version like v1.2.0.
	Version string `toml:"version"`
	// Files are read when no file is given on the command line.
	// Relative paths are relative to the config file.
	Files []string `toml:"files"`
}

// OutputConfig holds encoder settings.
type OutputConfig struct {
	Format string `toml:"format"`
}

// ParseConfig holds parser settings.
type ParseConfig struct {
	ContinueOnError bool `toml:"continue_on_error"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()

	return &cfg
}

// Load loads configuration from a TOML file.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromEnv loads the file named by TDL_CONFIG or ./tdl.toml. Without
// either, the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	if _, err := os.Stat("tdl.toml"); err == nil {
		return Load("tdl.toml")
	}

	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = string(encoder.TDL)
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks the grammar version, the output format and the log level.
func (c *Config) Validate() error {
	if c.Grammar.Version != "" && !semver.IsValid(c.Grammar.Version) {
		return fmt.Errorf("grammar version %q is not a semantic version like v1.0.0", c.Grammar.Version)
	}

	if _, err := encoder.ParseFormat(c.Output.Format); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// Format returns the configured output format.
func (c *Config) Format() (encoder.Format, error) {
	return encoder.ParseFormat(c.Output.Format)
}

// LogLevel parses the configured level, one of debug, info, warn or error.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	return level, nil
}

// GrammarFiles returns the grammar files with paths resolved against the
// directory of the config file.
func (c *Config) GrammarFiles() []string {
	res := make([]string, 0, len(c.Grammar.Files))
	for _, f := range c.Grammar.Files {
		if c.path != "" && !filepath.IsAbs(f) {
			f = filepath.Join(filepath.Dir(c.path), f)
		}

		res = append(res, f)
	}

	return res
}

// GrammarString names the grammar and its canonical version, if configured.
func (c *Config) GrammarString() string {
	if c.Grammar.Version == "" {
		return c.Grammar.Name
	}

	return strings.TrimSpace(c.Grammar.Name + " " + semver.Canonical(c.Grammar.Version))
}

// ParserOptions returns the parser options for this configuration.
func (c *Config) ParserOptions(logger *slog.Logger) []parser.Option {
	opts := []parser.Option{parser.WithLogger(logger)}
	if c.Parse.ContinueOnError {
		opts = append(opts, parser.ContinueOnError())
	}

	return opts
}
