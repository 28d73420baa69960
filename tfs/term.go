// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package tfs contains the typed feature structure model which results from
// parsing TDL type definitions.
package tfs

import "strconv"

// Term is one conjunct of a Conjunction. It is one of TypeIdentifier, String,
// Integer or *AVM.
type Term interface {
	String() string
	isTerm()
}

// TypeIdentifier references a type by name, e.g. a supertype.
type TypeIdentifier string

func (t TypeIdentifier) String() string {
	return string(t)
}

func (TypeIdentifier) isTerm() {}

// String is a quoted literal leaf. Value is the text between the quotes,
// escape sequences are kept verbatim.
type String struct {
	Value string
	// Single is true for the single open quote notation like 'sym.
	Single bool
}

// String returns the literal in its source notation.
func (s String) String() string {
	if s.Single {
		return "'" + s.Value
	}

	return `"` + s.Value + `"`
}

func (String) isTerm() {}

// Integer is a numeric literal leaf.
type Integer int64

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (Integer) isTerm() {}

func isLiteral(t Term) bool {
	switch t.(type) {
	case String, Integer:
		return true
	default:
		return false
	}
}
