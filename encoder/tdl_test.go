// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golangee/tdl/encoder"
	"github.com/golangee/tdl/parser"
	"github.com/golangee/tdl/tfs"
	"github.com/r3labs/diff/v2"
)

func parseAll(t *testing.T, text string) []*tfs.TypeDefinition {
	t.Helper()

	defs, err := parser.New("", strings.NewReader(text)).All()
	if err != nil {
		t.Fatal(err)
	}

	return defs
}

func corefs(def *tfs.TypeDefinition) []tfs.Coreference {
	res := make([]tfs.Coreference, 0, len(def.Coreferences))
	for _, c := range def.Coreferences {
		res = append(res, *c)
	}

	return res
}

func TestFormatTDL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "supertypes",
			text: "a := b & c.",
			want: "a := b & c.",
		},

		{
			name: "list with dotted rest",
			text: "type := super & [ ATTR1 < a . #rest >, ATTR2 #rest ].",
			want: "type := super & [ ATTR1 < a . #rest >, ATTR2 #rest ].",
		},

		{
			name: "diff lists",
			text: "t := [ ATTR <! a, b !>, EMPTY <! !> ].",
			want: "t := [ ATTR <! a, b !>, EMPTY <! !> ].",
		},

		{
			name: "lists",
			text: "t := [ A < a, ... >, B < >, C < ... >, D < < a >, b > ].",
			want: "t := [ A < a, ... >, B < >, C < ... >, D < < a >, b > ].",
		},

		{
			name: "first and rest with other attributes are no list",
			text: "t := [ A [ FIRST a, REST b, LAST c ] ].",
			want: "t := [ A [ FIRST a, REST b, LAST c ] ].",
		},

		{
			name: "dotted paths are written as groups",
			text: "t := [ A.B x, A.C y ].",
			want: "t := [ A [ B x, C y ] ].",
		},

		{
			name: "literals",
			text: `t := [ PRED "_x_rel", ORTH 'dog, N -3, ESC "a \"b\"" ].`,
			want: `t := [ PRED "_x_rel", ORTH 'dog, N -3, ESC "a \"b\"" ].`,
		},

		{
			name: "coreferences conjoined with avms",
			text: "t := [ A #x & [ B c ], D #x, E < #y, b >, F #y ].",
			want: "t := [ A #x & [ B c ], D #x, E < #y, b >, F #y ].",
		},

		{
			name: "lookalike of a diff list without coreference",
			text: "t := [ LIST < a >, LAST < > ].",
			want: "t := [ LIST < a >, LAST < > ].",
		},

		{
			name: "affix",
			text: "r :+ %suffix (!s !ss) (* s) n & [ DTR < n, ... > ].",
			want: "r :+ %suffix (!s !ss) (* s) n & [ DTR < n, ... > ].",
		},

		{
			name: "docstring",
			text: "#|\n  some doc\n|#\nt := a.",
			want: "#| some doc |#\nt := a.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := parseAll(t, tt.text)
			if len(defs) != 1 {
				t.Fatalf("expected one definition, got %d", len(defs))
			}

			got := encoder.FormatTDL(defs[0])
			if got != tt.want {
				t.Fatalf("got  %s\nwant %s", got, tt.want)
			}

			// parsing the output again must yield the same model
			again := parseAll(t, got)
			if len(again) != 1 {
				t.Fatalf("expected one definition, got %d", len(again))
			}

			if again[0].String() != defs[0].String() || again[0].Docstring != defs[0].Docstring {
				t.Fatalf("round trip changed the model:\n%s\n%s", defs[0], again[0])
			}

			changes, err := diff.Diff(corefs(defs[0]), corefs(again[0]), diff.SliceOrdering(true))
			if err != nil {
				t.Fatal(err)
			}

			for _, c := range changes {
				t.Errorf("coreferences %s at %v: want %v, got %v", c.Type, c.Path, c.From, c.To)
			}
		})
	}
}

func TestTDLEncoder(t *testing.T) {
	var buf bytes.Buffer

	src := "%(letter-set (!v aeiou))\n; dropped\na := b.\nc := [ D < e > ]."

	if err := encoder.NewTDLEncoder("", strings.NewReader(src), &buf).Encode(); err != nil {
		t.Fatal(err)
	}

	want := "a := b.\nc := [ D < e > ].\n%(letter-set (!v aeiou))\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"tdl", "XML", "Yaml"} {
		f, err := encoder.ParseFormat(name)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := encoder.New(f, "", strings.NewReader(""), &bytes.Buffer{}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := encoder.ParseFormat("json"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
