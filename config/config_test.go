// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/golangee/tdl/encoder"
	"github.com/r3labs/diff/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tdl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[grammar]
name = "erg"
version = "v2.1"
files = ["fundamentals.tdl", "/abs/lextypes.tdl"]

[output]
format = "yaml"

[parse]
continue_on_error = true

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := GrammarConfig{Name: "erg", Version: "v2.1", Files: []string{"fundamentals.tdl", "/abs/lextypes.tdl"}}

	changes, err := diff.Diff(want, cfg.Grammar)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range changes {
		t.Errorf("%s at %v: want %v, got %v", c.Type, c.Path, c.From, c.To)
	}

	if f, err := cfg.Format(); err != nil || f != encoder.YAML {
		t.Errorf("Format() = %v, %v", f, err)
	}

	if l, err := cfg.LogLevel(); err != nil || l != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v", l, err)
	}

	if !cfg.Parse.ContinueOnError {
		t.Error("expected continue_on_error")
	}

	if got := cfg.GrammarString(); got != "erg v2.1.0" {
		t.Errorf("GrammarString() = %q", got)
	}

	files := cfg.GrammarFiles()
	if files[0] != filepath.Join(filepath.Dir(path), "fundamentals.tdl") || files[1] != "/abs/lextypes.tdl" {
		t.Errorf("GrammarFiles() = %v", files)
	}

	if len(cfg.ParserOptions(slog.Default())) != 2 {
		t.Error("expected a logger and continue on error option")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "[grammar"},
		{"invalid version", "[grammar]\nversion = \"2.1\""},
		{"invalid format", "[output]\nformat = \"json\""},
		{"invalid level", "[log]\nlevel = \"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != "tdl" {
		t.Errorf("Output.Format = %v, want tdl", cfg.Output.Format)
	}

	if l, err := cfg.LogLevel(); err != nil || l != slog.LevelWarn {
		t.Errorf("LogLevel() = %v, %v", l, err)
	}

	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}

	if len(cfg.GrammarFiles()) != 0 {
		t.Error("expected no grammar files")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[output]\nformat = \"xml\"")
	t.Setenv(EnvConfig, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Output.Format != "xml" {
		t.Errorf("Output.Format = %v, want xml", cfg.Output.Format)
	}
}
