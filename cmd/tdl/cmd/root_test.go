// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	format = ""
	cfgFile = ""
	t.Setenv("TDL_CONFIG", "")

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCommands(t *testing.T) {
	file := writeFile(t, "a.tdl", "; comment\na := b & [ C < d > ].\n%(letter-set (!v aeiou))\n")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "tokens",
			args: []string{"tokens", file},
			want: []string{"LineComment\t; comment", "Punct\t:=", "Letter\t!v"},
		},
		{
			name: "lex",
			args: []string{"lex", file},
			want: []string{"1\tLINECOMMENT\t; comment", "2\tTYPEDEF\ta := b & [ C < d > ] .", "3\tLETTERSET"},
		},
		{
			name: "parse tdl",
			args: []string{"parse", file},
			want: []string{"a := b & [ C < d > ].", "%(letter-set (!v aeiou))"},
		},
		{
			name: "parse yaml",
			args: []string{"parse", "--format", "yaml", file},
			want: []string{"identifier: a", "supertypes: [b]"},
		},
		{
			name: "parse xml",
			args: []string{"parse", "-f", "xml", file},
			want: []string{`<typedef name="a" operator=":=" line="2">`},
		},
		{
			name: "check",
			args: []string{"check", file},
			want: []string{"1 definitions, 1 letter sets"},
		},
		{
			name: "grammar",
			args: []string{"grammar"},
			want: []string{"TypeDef"},
		},
		{
			name: "version",
			args: []string{"version"},
			want: []string{"tdl v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}

			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestCheckReportsAllErrors(t *testing.T) {
	file := writeFile(t, "bad.tdl", "a := [ B ].\nc := d.\ne := [ F ].\n")

	out, err := run(t, "check", file)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(out, "1 definitions") {
		t.Errorf("unexpected output %s", out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "g.tdl"), []byte("a := b."), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := writeFile(t, "tdl.toml", "[grammar]\nname = \"g\"\nversion = \"v1.2\"\nfiles = [\""+filepath.Join(dir, "g.tdl")+"\"]\n[output]\nformat = \"yaml\"\n")

	out, err := run(t, "parse", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "identifier: a") {
		t.Errorf("unexpected output %s", out)
	}

	out, err = run(t, "version", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "Grammar:    g v1.2.0") {
		t.Errorf("unexpected output %s", out)
	}
}
