// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tfs

import (
	"strings"
	"unicode"
)

// LetterSet binds a variable like !v to a set of characters, for use in
// affix patterns. Wild cards (?x) match a single character without binding it.
type LetterSet struct {
	// Name includes the leading '!' or '?'.
	Name       string
	Characters string
	WildCard   bool
	Line       int
}

// Match returns true if r is a member of the set.
func (l *LetterSet) Match(r rune) bool {
	return strings.ContainsRune(l.Characters, r)
}

func (l *LetterSet) String() string {
	kind := "letter-set"
	if l.WildCard {
		kind = "wild-card"
	}

	var chars strings.Builder

	for _, r := range l.Characters {
		if r == ')' || r == '\\' || unicode.IsSpace(r) {
			chars.WriteByte('\\')
		}

		chars.WriteRune(r)
	}

	return "%(" + kind + " (" + l.Name + " " + chars.String() + "))"
}
