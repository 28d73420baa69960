// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tdl

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/golangee/tdl/tfs"
	"github.com/r3labs/diff/v2"
)

func ExampleUnmarshal() {
	type Noun struct {
		Name   string   `tdl:",id"`
		Types  []string `tdl:",supertypes"`
		Orth   string   `tdl:"STEM.FIRST"`
		Number string   `tdl:"HEAD.AGR.NUM"`
	}

	defs, err := ParseString(`dog := noun & [ STEM < "dog" >, HEAD.AGR.NUM sg ].`)
	if err != nil {
		log.Fatal(err)
	}

	var noun Noun

	if err := Unmarshal(defs[0], &noun, false); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s (%s) is a %s with number %s", noun.Name, noun.Orth, noun.Types[0], noun.Number)
	// Output: dog (dog) is a noun with number sg
}

func ExampleUnmarshal_slice() {
	type Rule struct {
		Args []string
	}

	defs, err := ParseString(`r := [ ARGS < a, "b", c > ].`)
	if err != nil {
		log.Fatal(err)
	}

	var rule Rule

	if err := Unmarshal(defs[0], &rule, false); err != nil {
		log.Fatal(err)
	}

	fmt.Print(rule.Args)
	// Output: [a b c]
}

// Coreferenced values are read from the path which holds the value.
func ExampleUnmarshal_coreference() {
	type Rule struct {
		Args []string `tdl:"ARGS"`
		Head string   `tdl:"HEAD"`
	}

	defs, err := ParseString(`r := [ ARGS <! #x, b !>, HEAD #x & h ].`)
	if err != nil {
		log.Fatal(err)
	}

	var rule Rule

	if err := Unmarshal(defs[0], &rule, true); err != nil {
		log.Fatal(err)
	}

	fmt.Println(rule.Args, rule.Head)
	// Output: [h b] h
}

func TestUnmarshal(t *testing.T) {
	// Base for testing
	type TestCase struct {
		name   string
		text   string
		strict bool
		// into is an empty instance we will unmarshal into.
		into interface{}
		// want is a filled instance with all values we want.
		want    interface{}
		wantErr bool
	}

	var testCases []TestCase

	// Test cases always follow this pattern:
	// 1. Define all required types
	// 2. Define testcase using those types

	type EmptyRoot struct{}

	testCases = append(testCases, TestCase{
		name: "empty",
		text: "t := a.",
		into: &EmptyRoot{},
		want: &EmptyRoot{},
	})

	type SimpleRoot struct {
		S string
		I int8
		U uint64
		B bool
	}

	testCases = append(testCases, TestCase{
		name:   "struct with some types",
		text:   `t := [ S "hello", I -5, U 3000, B + ].`,
		strict: true,
		into:   &SimpleRoot{},
		want: &SimpleRoot{
			S: "hello",
			I: -5,
			U: 3000,
			B: true,
		},
	})

	testCases = append(testCases, TestCase{
		name: "type identifiers as strings and bools",
		text: `t := [ S hello, B true ].`,
		into: &SimpleRoot{},
		want: &SimpleRoot{
			S: "hello",
			B: true,
		},
	})

	type OutOfBounds struct {
		V int8
	}

	testCases = append(testCases, TestCase{
		name:    "out of bounds int8",
		text:    "t := [ V 300 ].",
		into:    &OutOfBounds{},
		wantErr: true,
	})

	type Unsigned struct {
		V uint
	}

	testCases = append(testCases, TestCase{
		name:    "negative unsigned",
		text:    "t := [ V -1 ].",
		into:    &Unsigned{},
		wantErr: true,
	})

	testCases = append(testCases, TestCase{
		name:    "string is not an integer",
		text:    `t := [ V "1" ].`,
		into:    &Unsigned{},
		wantErr: true,
	})

	type Bool struct {
		V bool
	}

	testCases = append(testCases, TestCase{
		name:    "invalid boolean",
		text:    "t := [ V maybe ].",
		into:    &Bool{},
		wantErr: true,
	})

	type Agr struct {
		Num  string
		Pers int
	}

	type Head struct {
		Agr Agr
	}

	type Nested struct {
		Head Head
	}

	testCases = append(testCases, TestCase{
		name: "nested structs",
		text: "t := [ HEAD [ AGR [ NUM sg, PERS 3 ] ] ].",
		into: &Nested{},
		want: &Nested{Head: Head{Agr: Agr{Num: "sg", Pers: 3}}},
	})

	testCases = append(testCases, TestCase{
		name: "nested structs from dotted paths",
		text: "t := [ HEAD.AGR.NUM sg, HEAD.AGR.PERS 3 ].",
		into: &Nested{},
		want: &Nested{Head: Head{Agr: Agr{Num: "sg", Pers: 3}}},
	})

	testCases = append(testCases, TestCase{
		name: "absent attribute is skipped in non-strict mode",
		text: "t := [ HEAD [ AGR [ NUM sg ] ] ].",
		into: &Nested{},
		want: &Nested{Head: Head{Agr: Agr{Num: "sg"}}},
	})

	testCases = append(testCases, TestCase{
		name:    "absent attribute is denied in strict mode",
		text:    "t := [ HEAD [ AGR [ NUM sg ] ] ].",
		strict:  true,
		into:    &Nested{},
		wantErr: true,
	})

	type Path struct {
		Number string `tdl:"head.agr.num"`
		Ignore string `tdl:"-"`
	}

	testCases = append(testCases, TestCase{
		name:   "path tag",
		text:   "t := [ HEAD [ AGR [ NUM sg ] ] ].",
		strict: true,
		into:   &Path{},
		want:   &Path{Number: "sg"},
	})

	testCases = append(testCases, TestCase{
		name:    "avm is not a string",
		text:    "t := [ HEAD.AGR.NUM [ X y ] ].",
		into:    &Path{},
		wantErr: true,
	})

	testCases = append(testCases, TestCase{
		name:    "do not unmarshal into nil",
		text:    "t := a.",
		into:    nil,
		wantErr: true,
	})

	type InvalidFieldType struct {
		V string `tdl:",not-a-type"`
	}

	testCases = append(testCases, TestCase{
		name:    "invalid field type",
		text:    `t := [ V hello ].`,
		into:    &InvalidFieldType{},
		wantErr: true,
	})

	type Meta struct {
		Name  string   `tdl:",id"`
		Doc   string   `tdl:",doc"`
		Types []string `tdl:",supertypes"`
	}

	testCases = append(testCases, TestCase{
		name:   "identifier, docstring and supertypes",
		text:   "#| A verb. |#\nverb := word & head-initial & [ ].",
		strict: true,
		into:   &Meta{},
		want:   &Meta{Name: "verb", Doc: "A verb.", Types: []string{"word", "head-initial"}},
	})

	testCases = append(testCases, TestCase{
		name:    "docstring required in strict mode",
		text:    "verb := word.",
		strict:  true,
		into:    &Meta{},
		wantErr: true,
	})

	type BadSupertypes struct {
		Types string `tdl:",supertypes"`
	}

	testCases = append(testCases, TestCase{
		name:    "supertypes need a string slice",
		text:    "verb := word.",
		into:    &BadSupertypes{},
		wantErr: true,
	})

	type HeadTypes struct {
		Types []string `tdl:",supertypes"`
	}

	type InnerSupertypes struct {
		Head HeadTypes
	}

	testCases = append(testCases, TestCase{
		name: "supertypes of a nested value",
		text: "t := [ HEAD verb & [ VFORM fin ] ].",
		into: &InnerSupertypes{},
		want: &InnerSupertypes{Head: HeadTypes{Types: []string{"verb"}}},
	})

	type IntSlice struct {
		Nums []int
	}

	testCases = append(testCases, TestCase{
		name: "int slice",
		text: "t := [ NUMS < 1, 2, 3, 4 > ].",
		into: &IntSlice{},
		want: &IntSlice{
			Nums: []int{1, 2, 3, 4},
		},
	})

	testCases = append(testCases, TestCase{
		name: "open list",
		text: "t := [ NUMS < 1, 2, ... > ].",
		into: &IntSlice{},
		want: &IntSlice{
			Nums: []int{1, 2},
		},
	})

	testCases = append(testCases, TestCase{
		name: "diff list",
		text: "t := [ NUMS <! 1, 2 !> ].",
		into: &IntSlice{},
		want: &IntSlice{
			Nums: []int{1, 2},
		},
	})

	testCases = append(testCases, TestCase{
		name: "empty list",
		text: "t := [ NUMS < > ].",
		into: &IntSlice{},
		want: &IntSlice{},
	})

	testCases = append(testCases, TestCase{
		name:    "not a list",
		text:    "t := [ NUMS 1 ].",
		into:    &IntSlice{},
		wantErr: true,
	})

	type Daughter struct {
		Orth string
	}

	type Phrase struct {
		Dtrs []Daughter
	}

	testCases = append(testCases, TestCase{
		name: "slice of structs",
		text: `t := [ DTRS < [ ORTH "a" ], [ ORTH "b" ] > ].`,
		into: &Phrase{},
		want: &Phrase{Dtrs: []Daughter{{Orth: "a"}, {Orth: "b"}}},
	})

	type NillableThing struct {
		Thing *Daughter `tdl:"thing"`
	}

	testCases = append(testCases, TestCase{
		name: "nillable field is nil",
		text: "t := a.",
		into: &NillableThing{},
		want: &NillableThing{Thing: nil},
	})

	testCases = append(testCases, TestCase{
		name: "nillable field is set",
		text: `t := [ THING [ ORTH "x" ] ].`,
		into: &NillableThing{},
		want: &NillableThing{Thing: &Daughter{Orth: "x"}},
	})

	type Shared struct {
		A string
		B string
	}

	testCases = append(testCases, TestCase{
		name:   "coreferenced values",
		text:   "t := [ A #x, B #x & b ].",
		strict: true,
		into:   &Shared{},
		want:   &Shared{A: "b", B: "b"},
	})

	type StringMap struct {
		Things map[string]string
	}

	testCases = append(testCases, TestCase{
		name:    "maps are not supported",
		text:    "t := [ THINGS [ A b ] ].",
		into:    &StringMap{},
		wantErr: true,
	})

	type StringA = string
	type StringB string

	type TypeAlias struct {
		StringA StringA
		StringB StringB
	}

	testCases = append(testCases, TestCase{
		name: "type alias",
		text: `t := [ STRINGA "hello", STRINGB world ].`,
		into: &TypeAlias{},
		want: &TypeAlias{
			StringA: "hello",
			StringB: "world",
		},
	})

	// Run all test cases
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defs, err := ParseString(tc.text)
			if err != nil {
				t.Fatal(err)
			}

			err = Unmarshal(defs[0], tc.into, tc.strict)

			if err != nil {
				if tc.wantErr {
					// We got an expected error.
					return
				} else {
					t.Fatal(err)
				}
			} else {
				if tc.wantErr {
					t.Fatal("expected an error, but got none")
				}
			}

			differences, err := diff.Diff(tc.want, tc.into)
			if err != nil {
				log.Println(fmt.Errorf("cannot compare test result: %w", err))
				t.SkipNow()
				return
			}

			// These descriptions map the type of a change to a more readable format.
			changeTypeDescription := map[string]string{
				"create": "was added",
				"update": "is different",
				"delete": "is missing",
			}

			for _, d := range differences {
				t.Errorf("property '%s' %s, expected '%v' but got '%v'",
					strings.Join(d.Path, "."),
					changeTypeDescription[d.Type],
					d.From, d.To)
			}
		})
	}
}

func TestUnmarshalConjunction(t *testing.T) {
	type Raw struct {
		Head tfs.Conjunction
	}

	defs, err := ParseString("t := [ HEAD verb & [ VFORM fin ] ].")
	if err != nil {
		t.Fatal(err)
	}

	var raw Raw
	if err := Unmarshal(defs[0], &raw, true); err != nil {
		t.Fatal(err)
	}

	if got := raw.Head.String(); got != "verb & [ VFORM fin ]" {
		t.Fatalf("unexpected value %s", got)
	}

	// the decoded value is a copy
	if err := raw.Head.Set("VFORM", tfs.MustConjunction(tfs.TypeIdentifier("inf"))); err != nil {
		t.Fatal(err)
	}

	if defs[0].String() != "t := [ HEAD verb & [ VFORM fin ] ]." {
		t.Fatalf("definition was modified: %s", defs[0])
	}
}

func TestUnmarshalError(t *testing.T) {
	type V struct {
		V int
	}

	defs, err := ParseString("t := [ V x ].")
	if err != nil {
		t.Fatal(err)
	}

	err = Unmarshal(defs[0], &V{}, false)

	var uerr *UnmarshalError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected an UnmarshalError, got %v", err)
	}

	if !strings.Contains(err.Error(), "t.V") {
		t.Fatalf("expected the path in %q", err.Error())
	}
}
