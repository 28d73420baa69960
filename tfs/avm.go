// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tfs

import (
	"strings"

	"github.com/golangee/tdl/util"
)

// AVM is an attribute-value matrix. Attribute names are case-insensitive and
// kept in declaration order.
type AVM struct {
	attrs util.AttributeList[*Conjunction]
}

// NewAVM creates an empty AVM.
func NewAVM() *AVM {
	return &AVM{attrs: util.NewAttributeList[*Conjunction]()}
}

func (*AVM) isTerm() {}

// Len returns the number of attributes.
func (a *AVM) Len() int {
	return a.attrs.Len()
}

// Get returns the value of the attribute with the given name.
func (a *AVM) Get(name string) (*Conjunction, bool) {
	return a.attrs.Get(name)
}

// Set the attribute name to value, replacing any former value.
func (a *AVM) Set(name string, value *Conjunction) {
	a.attrs.Set(name, value)
}

// Keys returns the attribute names in declaration order, upper case.
func (a *AVM) Keys() []string {
	return a.attrs.Keys()
}

// Attributes returns the attributes in declaration order. Keys are upper case.
func (a *AVM) Attributes() []util.Attribute[*Conjunction] {
	return a.attrs.All()
}

// Merge conjoins all attributes of other into a.
func (a *AVM) Merge(other *AVM) error {
	for _, attr := range other.attrs.All() {
		if existing, ok := a.attrs.Get(attr.Key); ok {
			if err := existing.Merge(attr.Value); err != nil {
				return err
			}

			continue
		}

		a.attrs.Add(attr.Key, attr.Value.Copy())
	}

	return nil
}

// Copy returns a deep copy.
func (a *AVM) Copy() *AVM {
	res := NewAVM()
	for _, attr := range a.attrs.All() {
		res.attrs.Add(attr.Key, attr.Value.Copy())
	}

	return res
}

func (a *AVM) String() string {
	if a.Len() == 0 {
		return "[ ]"
	}

	parts := make([]string, 0, a.Len())
	for _, attr := range a.attrs.All() {
		parts = append(parts, attr.Key+" "+attr.Value.String())
	}

	return "[ " + strings.Join(parts, ", ") + " ]"
}
