// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tdl

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/golangee/tdl/tfs"
)

// Unmarshal decodes a type definition into the struct pointed to by into.
// As this uses go's reflect package, only exported names can be unmarshalled.
// Strict mode requires that every field resolves to a value.
// You can set struct tags to influence the unmarshalling process.
// All tags must have the form `tdl:"..."` and are a list of comma separated identifiers.
//
// The first identifier is the dotted attribute path relative to the enclosing
// feature structure. It defaults to the field name. Attribute names are case-insensitive.
//
//	// This tdl snippet...
//	noun := sign & [ HEAD.AGR.NUM sg ].
//	// could be unmarshalled into this go struct.
//	type Example struct {
//	    Number string `tdl:"HEAD.AGR.NUM"`
//	}
//
// The second identifier selects something other than an attribute value:
// id for the identifier of the definition, doc for its docstring and
// supertypes for the type identifiers of the enclosing conjunction, which
// needs a []string field.
//
//	type Example struct {
//	    Name  string   `tdl:",id"`
//	    Types []string `tdl:",supertypes"`
//	}
//
// Strings are read from string literals and type identifiers, integers from
// integer literals and bools from the types + and - or any spelling strconv.ParseBool
// accepts. Slices are read from lists and diff lists. A field of type
// tfs.Conjunction receives a copy of the value unchanged.
// An empty value which is shared with another path through a coreference
// is read from that path.
func Unmarshal(def *tfs.TypeDefinition, into any, strict bool) error {
	if def == nil {
		return fmt.Errorf("cannot unmarshal nil type definition")
	}

	if into == nil {
		return fmt.Errorf("cannot unmarshal into nil")
	}

	value := reflect.ValueOf(into)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("cannot unmarshal into non-pointer %T", into)
	}

	unmarshal := unmarshaler{def: def, strict: strict}

	return unmarshal.node(&def.Conjunction, "", value)
}

// unmarshaler is a helper struct for easier managing the unmarshalling process.
type unmarshaler struct {
	def    *tfs.TypeDefinition
	strict bool
}

// While unmarshalling a field might not read an attribute value.
// We use this enum to make the decision.
type unmarshalType int

const (
	unmarshalNormal unmarshalType = iota
	unmarshalIdentifier
	unmarshalDocstring
	unmarshalSupertypes
)

var conjunctionType = reflect.TypeOf(tfs.Conjunction{})

// UnmarshalError is an error that occurred during unmarshalling.
// It contains the offending path, a string with details and an underlying error (if any).
type UnmarshalError struct {
	Identifier string
	Path       string
	Detail     string
	wrapping   error
}

func (u *unmarshaler) errorf(path string, wrapping error, format string, args ...any) *UnmarshalError {
	return &UnmarshalError{
		Identifier: u.def.Identifier,
		Path:       path,
		Detail:     fmt.Sprintf(format, args...),
		wrapping:   wrapping,
	}
}

func (u *UnmarshalError) Error() string {
	at := u.Identifier
	if u.Path != "" {
		at += "." + u.Path
	}

	if u.wrapping != nil {
		return fmt.Sprintf("cannot unmarshal '%s', %s: %s", at, u.Detail, u.wrapping.Error())
	}

	return fmt.Sprintf("cannot unmarshal '%s', %s", at, u.Detail)
}

func (u *UnmarshalError) Unwrap() error {
	return u.wrapping
}

// node will place the contents of c, which lives at path, inside the given value.
func (u *unmarshaler) node(c *tfs.Conjunction, path string, value reflect.Value) error {
	c = u.resolve(c, path)
	valueType := value.Type()

	if valueType == conjunctionType {
		value.Set(reflect.ValueOf(*c.Copy()))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		text, err := u.text(c, path)
		if err != nil {
			return err
		}

		value.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := c.Literal().(tfs.Integer)
		if !ok || len(c.Terms()) != 1 {
			return u.errorf(path, nil, "integer required for '%s' but found '%s'", valueType.Name(), c)
		}

		if value.OverflowInt(int64(i)) {
			return u.errorf(path, nil, "value for '%s' out of bounds", valueType.Name())
		}

		value.SetInt(int64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := c.Literal().(tfs.Integer)
		if !ok || len(c.Terms()) != 1 {
			return u.errorf(path, nil, "unsigned integer required for '%s' but found '%s'", valueType.Name(), c)
		}

		if i < 0 || value.OverflowUint(uint64(i)) {
			return u.errorf(path, nil, "value for '%s' out of bounds", valueType.Name())
		}

		value.SetUint(uint64(i))
	case reflect.Bool:
		text, err := u.text(c, path)
		if err != nil {
			return err
		}

		switch text {
		case "+":
			value.SetBool(true)
		case "-":
			value.SetBool(false)
		default:
			b, err := strconv.ParseBool(text)
			if err != nil {
				return u.errorf(path, err, "'%s' is not a valid boolean", text)
			}

			value.SetBool(b)
		}
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(valueType.Elem()))
		}

		return u.node(c, path, value.Elem())
	case reflect.Slice:
		return u.slice(c, path, value)
	case reflect.Array:
		return u.errorf(path, nil, "arrays not supported, use a slice instead")
	case reflect.Struct:
		return u.structure(c, path, value)
	default:
		return u.errorf(path, nil, "with unsupported type '%s' for '%s'", valueType, valueType.Name())
	}

	return nil
}

// resolve returns the value of a coreferenced path if c itself is empty.
// The first non-empty path of the coreference wins.
func (u *unmarshaler) resolve(c *tfs.Conjunction, path string) *tfs.Conjunction {
	if !c.IsEmpty() || path == "" {
		return c
	}

	for _, ref := range u.def.CoreferencesAt(path) {
		for _, p := range ref.Paths {
			if p == strings.ToUpper(path) {
				continue
			}

			if other, err := u.def.Conjunction.Get(p); err == nil && !other.IsEmpty() {
				return other
			}
		}
	}

	return c
}

// text returns the single string literal or type identifier of c.
func (u *unmarshaler) text(c *tfs.Conjunction, path string) (string, error) {
	if len(c.Terms()) == 1 {
		switch t := c.Terms()[0].(type) {
		case tfs.String:
			return t.Value, nil
		case tfs.TypeIdentifier:
			return string(t), nil
		}
	}

	return "", u.errorf(path, nil, "expected a string or a type but found '%s'", c)
}

// slice appends every element of the list at c. A diff list is read from its LIST.
func (u *unmarshaler) slice(c *tfs.Conjunction, path string, value reflect.Value) error {
	elementType := value.Type().Elem()
	node := c

	if avm := c.AVM(); avm != nil {
		if list, ok := avm.Get("LIST"); ok {
			node = list
			path = join(path, "LIST")
		}
	}

	for {
		node = u.resolve(node, path)
		if node.IsEmpty() {
			return nil
		}

		avm := node.AVM()
		if avm == nil {
			return u.errorf(path, nil, "list required but found '%s'", node)
		}

		first, ok := avm.Get("FIRST")
		if !ok {
			// < ... >
			return nil
		}

		element := reflect.New(elementType).Elem()
		if err := u.node(first, join(path, "FIRST"), element); err != nil {
			return u.errorf(path, err, "cannot read list element")
		}

		value.Set(reflect.Append(value, element))

		rest, ok := avm.Get("REST")
		if !ok {
			return nil
		}

		node = rest
		path = join(path, "REST")
	}
}

func (u *unmarshaler) structure(c *tfs.Conjunction, path string, value reflect.Value) error {
	// Iterate over all struct fields.
	for i := 0; i < value.NumField(); i++ {
		fieldType := value.Type().Field(i)
		field := value.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		fieldPath := fieldType.Name
		unmarshalAs := unmarshalNormal

		// Some tags will change the behavior of how this field will be processed.
		if structTag, ok := fieldType.Tag.Lookup("tdl"); ok {
			tags := strings.Split(structTag, ",")

			// The first tag is the attribute path
			if rename := tags[0]; rename == "-" {
				continue
			} else if len(rename) > 0 {
				fieldPath = rename
			}

			// The second tag indicates the type we are parsing
			if len(tags) > 1 {
				switch as := tags[1]; as {
				case "id":
					unmarshalAs = unmarshalIdentifier
				case "doc":
					unmarshalAs = unmarshalDocstring
				case "supertypes":
					unmarshalAs = unmarshalSupertypes
				case "":
					unmarshalAs = unmarshalNormal
				default:
					return u.errorf(path, nil, "field type '%s' invalid", as)
				}
			}
		}

		switch unmarshalAs {
		case unmarshalIdentifier, unmarshalDocstring:
			if field.Kind() != reflect.String {
				return u.errorf(path, nil, "'%s' needs to have type string", fieldType.Name)
			}

			text := u.def.Identifier
			if unmarshalAs == unmarshalDocstring {
				text = u.def.Docstring
			}

			if u.strict && text == "" {
				return u.errorf(path, nil, "value required for '%s'", fieldType.Name)
			}

			field.SetString(text)
		case unmarshalSupertypes:
			if field.Type() != reflect.TypeOf([]string(nil)) {
				return u.errorf(path, nil, "'%s' needs to have type []string", fieldType.Name)
			}

			types := c.Types()
			if u.strict && len(types) == 0 {
				return u.errorf(path, nil, "supertypes required for '%s'", fieldType.Name)
			}

			names := make([]string, 0, len(types))
			for _, t := range types {
				names = append(names, string(t))
			}

			field.Set(reflect.ValueOf(names))
		case unmarshalNormal:
			sub, err := c.Get(fieldPath)
			if err != nil {
				var perr *tfs.PathError
				if !u.strict && errors.As(err, &perr) {
					continue
				}

				return u.errorf(path, err, "attribute '%s' required", fieldPath)
			}

			if err := u.node(sub, join(path, fieldPath), field); err != nil {
				return u.errorf(path, err, "while processing field '%s'", fieldType.Name)
			}
		default:
			// Should never happen. We provide a helpful message just in case.
			return fmt.Errorf("unmarshal in invalid state: unmarshalType=%v", unmarshalAs)
		}
	}

	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}
