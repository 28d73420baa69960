// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tfs

import (
	"fmt"
	"strings"
)

// Conjunction is a node of a feature structure: a set of conjoined type
// identifiers, at most one literal and at most one AVM. A literal and an AVM
// never occur together. A Conjunction without any term is the empty marker,
// e.g. the REST of a terminated list.
type Conjunction struct {
	terms []Term
}

// Feature is a dotted path and the node it denotes.
type Feature struct {
	Path  string
	Value *Conjunction
}

// NewConjunction conjoins the given terms in order.
func NewConjunction(terms ...Term) (*Conjunction, error) {
	c := &Conjunction{}
	for _, t := range terms {
		if err := c.Add(t); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustConjunction is like NewConjunction but panics on conflicting terms.
func MustConjunction(terms ...Term) *Conjunction {
	c, err := NewConjunction(terms...)
	if err != nil {
		panic(err)
	}

	return c
}

// Add conjoins t. Adding an AVM to a conjunction which already has one
// merges both.
func (c *Conjunction) Add(t Term) error {
	switch t := t.(type) {
	case nil:
		return fmt.Errorf("nil term: %w", ErrConflict)
	case *AVM:
		if lit := c.Literal(); lit != nil {
			return fmt.Errorf("cannot conjoin %s with an AVM: %w", lit, ErrConflict)
		}

		if avm := c.AVM(); avm != nil {
			return avm.Merge(t)
		}
	case String, Integer:
		if lit := c.Literal(); lit != nil {
			return fmt.Errorf("cannot conjoin %s with %s: %w", lit, t, ErrConflict)
		}

		if c.AVM() != nil {
			return fmt.Errorf("cannot conjoin %s with an AVM: %w", t, ErrConflict)
		}
	}

	c.terms = append(c.terms, t)

	return nil
}

// Merge conjoins all terms of other.
func (c *Conjunction) Merge(other *Conjunction) error {
	for _, t := range other.terms {
		if avm, ok := t.(*AVM); ok {
			t = avm.Copy()
		}

		if err := c.Add(t); err != nil {
			return err
		}
	}

	return nil
}

// Copy returns a deep copy.
func (c *Conjunction) Copy() *Conjunction {
	res := &Conjunction{terms: make([]Term, 0, len(c.terms))}
	for _, t := range c.terms {
		if avm, ok := t.(*AVM); ok {
			t = avm.Copy()
		}

		res.terms = append(res.terms, t)
	}

	return res
}

// Terms returns all terms in the order they were added.
func (c *Conjunction) Terms() []Term {
	return append([]Term(nil), c.terms...)
}

// Types returns the type identifiers in the order they were added.
func (c *Conjunction) Types() []TypeIdentifier {
	var res []TypeIdentifier

	for _, t := range c.terms {
		if id, ok := t.(TypeIdentifier); ok {
			res = append(res, id)
		}
	}

	return res
}

// AVM returns the attribute-value matrix or nil.
func (c *Conjunction) AVM() *AVM {
	for _, t := range c.terms {
		if avm, ok := t.(*AVM); ok {
			return avm
		}
	}

	return nil
}

// Literal returns the String or Integer leaf or nil.
func (c *Conjunction) Literal() Term {
	for _, t := range c.terms {
		if isLiteral(t) {
			return t
		}
	}

	return nil
}

// IsEmpty returns true if the conjunction constrains nothing.
func (c *Conjunction) IsEmpty() bool {
	return len(c.terms) == 0
}

// Get resolves the dotted path case-insensitively. The empty path denotes c itself.
func (c *Conjunction) Get(path string) (*Conjunction, error) {
	node := c
	for i, name := range splitPath(path) {
		avm := node.AVM()
		if avm == nil {
			return nil, &PathError{Path: path, Component: joinPath(splitPath(path)[:i+1])}
		}

		next, ok := avm.Get(name)
		if !ok {
			return nil, &PathError{Path: path, Component: joinPath(splitPath(path)[:i+1])}
		}

		node = next
	}

	return node, nil
}

// Has returns true if path resolves. Type identifiers never match.
func (c *Conjunction) Has(path string) bool {
	_, err := c.Get(path)
	return err == nil
}

// Set replaces the node at path with value. Missing intermediate nodes are
// created as AVMs. A literal on the way cannot hold attributes and fails.
func (c *Conjunction) Set(path string, value *Conjunction) error {
	names := splitPath(path)
	if len(names) == 0 {
		return &PathError{Path: path}
	}

	if value == nil {
		value = &Conjunction{}
	}

	node := c
	for i, name := range names {
		avm := node.AVM()
		if avm == nil {
			if node.Literal() != nil {
				return &PathError{Path: path, Component: joinPath(names[:i])}
			}

			avm = NewAVM()
			node.terms = append(node.terms, avm)
		}

		if i == len(names)-1 {
			avm.Set(name, value)
			return nil
		}

		next, ok := avm.Get(name)
		if !ok {
			next = &Conjunction{}
			avm.Set(name, next)
		}

		node = next
	}

	return nil
}

// Features returns the (path, value) pairs of the feature structure in depth
// first order. The traversal does not descend into a node which has a
// supertype, such a node is returned itself.
func (c *Conjunction) Features() []Feature {
	var res []Feature

	c.walk("", false, func(f Feature) {
		res = append(res, f)
	})

	return res
}

// LocalConstraints is like Features but descends into typed nodes as well.
// Its paths are a superset of the paths returned by Features. Both are equal
// if no typed node has attributes, e.g. for A t & [ ] which only yields A.
func (c *Conjunction) LocalConstraints() []Feature {
	var res []Feature

	c.walk("", true, func(f Feature) {
		res = append(res, f)
	})

	return res
}

func (c *Conjunction) walk(prefix string, intoTyped bool, yield func(Feature)) {
	avm := c.AVM()
	if avm == nil {
		return
	}

	for _, attr := range avm.Attributes() {
		path := attr.Key
		if prefix != "" {
			path = prefix + "." + attr.Key
		}

		val := attr.Value
		sub := val.AVM()
		typed := len(val.Types()) > 0

		if sub == nil || sub.Len() == 0 || typed {
			yield(Feature{Path: path, Value: val})
		}

		if sub != nil && (!typed || intoTyped) {
			val.walk(path, intoTyped, yield)
		}
	}
}

// String returns a plain TDL rendering without list sugar or coreferences.
func (c *Conjunction) String() string {
	if c.IsEmpty() {
		return "< >"
	}

	parts := make([]string, 0, len(c.terms))
	for _, t := range c.terms {
		parts = append(parts, t.String())
	}

	return strings.Join(parts, " & ")
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

func joinPath(names []string) string {
	return strings.ToUpper(strings.Join(names, "."))
}
