// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tfs

import (
	"errors"
	"strings"
)

// Coreference records all paths of a type definition which share one tag.
// Diff lists introduce coreferences without a tag, their Tag is empty.
type Coreference struct {
	// Tag includes the leading '#'.
	Tag string
	// Paths are full dotted upper case paths in first seen order.
	Paths []string
}

// IsAnonymous returns true for the tag-less coreferences of diff lists.
func (c *Coreference) IsAnonymous() bool {
	return c.Tag == ""
}

// Complete returns true if the tag is shared by at least two paths.
// A tag which occurs only once is dangling.
func (c *Coreference) Complete() bool {
	return len(c.Paths) >= 2
}

// AffixPattern is one (from to) replacement of an inflectional rule.
type AffixPattern struct {
	From string
	To   string
}

// Affix is the %prefix or %suffix part of an inflectional rule.
type Affix struct {
	// Kind is either "prefix" or "suffix".
	Kind     string
	Patterns []AffixPattern
}

// TypeDefinition is a named Conjunction with its coreferences.
type TypeDefinition struct {
	Conjunction
	Identifier string
	// Operator is one of ":=", ":+" or ":<". All of them are treated alike.
	Operator string
	// Docstring is the text of the block comment right before the definition.
	Docstring string
	// Affix is set for inflectional rules.
	Affix        *Affix
	Coreferences []*Coreference
	// Line is the one-based line where the definition starts.
	Line int
}

// Supertypes returns the type identifiers of the top level conjunction.
func (d *TypeDefinition) Supertypes() []TypeIdentifier {
	return d.Types()
}

// Coreference returns the coreference with the given tag or nil.
func (d *TypeDefinition) Coreference(tag string) *Coreference {
	for _, c := range d.Coreferences {
		if c.Tag == tag {
			return c
		}
	}

	return nil
}

// CoreferencesAt returns all coreferences which contain path.
func (d *TypeDefinition) CoreferencesAt(path string) []*Coreference {
	path = strings.ToUpper(path)

	var res []*Coreference

	for _, c := range d.Coreferences {
		for _, p := range c.Paths {
			if p == path {
				res = append(res, c)
				break
			}
		}
	}

	return res
}

// Get is like Conjunction.Get but annotates errors with the definition line.
func (d *TypeDefinition) Get(path string) (*Conjunction, error) {
	v, err := d.Conjunction.Get(path)
	return v, d.annotate(err)
}

// Set is like Conjunction.Set but annotates errors with the definition line.
func (d *TypeDefinition) Set(path string, value *Conjunction) error {
	return d.annotate(d.Conjunction.Set(path, value))
}

func (d *TypeDefinition) annotate(err error) error {
	var perr *PathError
	if errors.As(err, &perr) && perr.Line == 0 {
		perr.Line = d.Line
	}

	return err
}

func (d *TypeDefinition) String() string {
	return d.Identifier + " " + d.Operator + " " + d.Conjunction.String() + "."
}
