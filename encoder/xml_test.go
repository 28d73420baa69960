// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golangee/tdl/encoder"
	"github.com/golangee/tdl/token"
)

func TestXMLEncode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty",
			text: "",
			want: "<tdl></tdl>",
		},
		{
			name: "supertype only",
			text: "t := a.",
			want: `<tdl><typedef name="t" operator=":=" line="1"><symbol value="a"></symbol></typedef></tdl>`,
		},
		{
			name: "features",
			text: `t := a & [ A b, N 3, S "x" ].`,
			want: `<tdl><typedef name="t" operator=":=" line="1">
					<fs type="a">
						<f name="A"><symbol value="b"></symbol></f>
						<f name="N"><numeric value="3"></numeric></f>
						<f name="S"><string>x</string></f>
					</fs>
				</typedef></tdl>`,
		},
		{
			name: "multiple supertypes",
			text: "t := a & b & [ ].",
			want: `<tdl><typedef name="t" operator=":=" line="1"><fs type="a b"></fs></typedef></tdl>`,
		},
		{
			name: "diff list",
			text: "t := [ A <! b !> ].",
			want: `<tdl><typedef name="t" operator=":=" line="1">
					<fs><f name="A"><fs>
						<f name="LIST"><fs>
							<f name="FIRST"><symbol value="b"></symbol></f>
							<f name="REST"><fs></fs></f>
						</fs></f>
						<f name="LAST"><fs></fs></f>
					</fs></f></fs>
					<coref tag=""><path>A.LIST.REST</path><path>A.LAST</path></coref>
				</typedef></tdl>`,
		},
		{
			name: "coreference",
			text: "t := [ A #x & b, B #x ].",
			want: `<tdl><typedef name="t" operator=":=" line="1">
					<fs>
						<f name="A"><symbol value="b"></symbol></f>
						<f name="B"><fs></fs></f>
					</fs>
					<coref tag="#x"><path>A</path><path>B</path></coref>
				</typedef></tdl>`,
		},
		{
			name: "affix",
			text: "r :+ %suffix (!s !ss) (* s) n.",
			want: `<tdl><typedef name="r" operator=":+" line="1">
					<affix kind="suffix"><pattern from="!s" to="!ss"></pattern><pattern from="*" to="s"></pattern></affix>
					<symbol value="n"></symbol>
				</typedef></tdl>`,
		},
		{
			name: "docstring and letter sets",
			text: "#| doc |#\nt := a.\n%(wild-card (?s abc))",
			want: `<tdl>
					<typedef name="t" operator=":=" line="2"><doc>doc</doc><symbol value="a"></symbol></typedef>
					<wild-card name="?s" line="3">abc</wild-card>
				</tdl>`,
		},
		{
			name: "escaping",
			text: `t := [ S "<a&b>" ].`,
			want: `<tdl><typedef name="t" operator=":=" line="1"><fs><f name="S"><string>&lt;a&amp;b&gt;</string></f></fs></typedef></tdl>`,
		},
	}

	t.Parallel()

	for _, tt := range tests {
		test := tt

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var writer bytes.Buffer
			reader := bytes.NewBuffer([]byte(test.text))
			enc := encoder.NewXMLEncoder(test.name, reader, &writer)
			err := enc.Encode()
			if err != nil {
				t.Error(err)

				return
			}

			val := writer.String()

			if !StringsEqual(test.want, val) {
				t.Errorf("Test '%s' failed. Wanted '%s', got '%s'", test.name, test.want, val)
			}
		})
	}
}

func TestXMLEncodeError(t *testing.T) {
	var writer bytes.Buffer

	err := encoder.NewXMLEncoder("bad.tdl", strings.NewReader("t := [ A ]."), &writer).Encode()
	if !errors.Is(err, token.ErrSyntax) {
		t.Fatalf("expected a syntax error, got %v", err)
	}
}

// StringsEqual compares two given strings but ignores differences in whitespaces, tabs and newlines.
func StringsEqual(in1, in2 string) bool {
	r := strings.NewReplacer("\n", "", "\t", "", " ", "")

	return r.Replace(in1) == r.Replace(in2)
}
