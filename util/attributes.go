// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package util

import "strings"

// Attribute represents a single attribute and its value.
type Attribute[V any] struct {
	Key   string
	Value V
}

// AttributeList is a list to hold attributes in insertion order.
// Keys are canonicalized to upper case, so lookups are case-insensitive.
type AttributeList[V any] struct {
	attributes []Attribute[V]
}

// NewAttributeList creates an empty AttributeList.
func NewAttributeList[V any]() AttributeList[V] {
	return AttributeList[V]{}
}

// CanonicalKey returns the form under which key is stored.
func CanonicalKey(key string) string {
	return strings.ToUpper(key)
}

// Len returns the number of attributes in the list
func (l *AttributeList[V]) Len() int {
	return len(l.attributes)
}

// Add the attribute to the end of the list, without checking for an existing key.
func (l *AttributeList[V]) Add(key string, value V) {
	l.attributes = append(l.attributes, Attribute[V]{
		Key:   CanonicalKey(key),
		Value: value,
	})
}

// Set the given attribute if it already exists or create a new
// one otherwise. Returns true if an existing attribute got overwritten.
// An overwritten attribute keeps its position in the list.
func (l *AttributeList[V]) Set(key string, val V) bool {
	if i := l.index(key); i >= 0 {
		l.attributes[i].Value = val
		return true
	}

	l.Add(key, val)

	return false
}

// Get returns the value for a given key and whether it exists.
func (l *AttributeList[V]) Get(key string) (V, bool) {
	if i := l.index(key); i >= 0 {
		return l.attributes[i].Value, true
	}

	var zero V

	return zero, false
}

// Keys returns all keys in insertion order.
func (l *AttributeList[V]) Keys() []string {
	keys := make([]string, 0, len(l.attributes))
	for _, a := range l.attributes {
		keys = append(keys, a.Key)
	}

	return keys
}

// All returns a copy of all attributes in insertion order.
func (l *AttributeList[V]) All() []Attribute[V] {
	return append([]Attribute[V](nil), l.attributes...)
}

func (l *AttributeList[V]) index(key string) int {
	key = CanonicalKey(key)
	for i, a := range l.attributes {
		if a.Key == key {
			return i
		}
	}

	return -1
}
