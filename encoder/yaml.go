// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golangee/tdl/parser"
	"github.com/golangee/tdl/tfs"
	"gopkg.in/yaml.v3"
)

// YAMLEncoder reads TDL and writes one YAML document per type definition and
// letter set. Attribute order is kept.
type YAMLEncoder struct {
	parser *parser.Parser
	writer io.Writer
}

func NewYAMLEncoder(filename string, r io.Reader, w io.Writer, opts ...parser.Option) *YAMLEncoder {
	return &YAMLEncoder{
		parser: parser.New(filename, r, opts...),
		writer: w,
	}
}

func (e *YAMLEncoder) Encode() error {
	enc := yaml.NewEncoder(e.writer)
	enc.SetIndent(2)

	for {
		def, err := e.parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		if err := enc.Encode(TypeDefinitionNode(def)); err != nil {
			return fmt.Errorf("cannot encode %s: %w", def.Identifier, err)
		}
	}

	for _, ls := range e.parser.LetterSets() {
		kind := "letter-set"
		if ls.WildCard {
			kind = "wild-card"
		}

		doc := mapping(
			"kind", str(kind),
			"name", str(ls.Name),
			"characters", str(ls.Characters),
			"line", integer(int64(ls.Line)),
		)

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("cannot encode %s: %w", ls.Name, err)
		}
	}

	return enc.Close()
}

// TypeDefinitionNode converts def into a YAML mapping.
func TypeDefinitionNode(def *tfs.TypeDefinition) *yaml.Node {
	doc := mapping(
		"kind", str("typedef"),
		"identifier", str(def.Identifier),
		"operator", str(def.Operator),
		"line", integer(int64(def.Line)),
	)

	if def.Docstring != "" {
		appendPair(doc, "docstring", str(def.Docstring))
	}

	supertypes := sequence()
	for _, t := range def.Supertypes() {
		supertypes.Content = append(supertypes.Content, str(string(t)))
	}

	supertypes.Style = yaml.FlowStyle
	appendPair(doc, "supertypes", supertypes)

	if def.Affix != nil {
		patterns := sequence()
		for _, p := range def.Affix.Patterns {
			pair := sequence(str(p.From), str(p.To))
			pair.Style = yaml.FlowStyle
			patterns.Content = append(patterns.Content, pair)
		}

		appendPair(doc, "affix", mapping("kind", str(def.Affix.Kind), "patterns", patterns))
	}

	if avm := def.AVM(); avm != nil {
		appendPair(doc, "features", avmNode(avm))
	}

	if len(def.Coreferences) > 0 {
		corefs := sequence()
		for _, c := range def.Coreferences {
			paths := sequence()
			for _, p := range c.Paths {
				paths.Content = append(paths.Content, str(p))
			}

			paths.Style = yaml.FlowStyle
			corefs.Content = append(corefs.Content, mapping("tag", str(c.Tag), "paths", paths))
		}

		appendPair(doc, "coreferences", corefs)
	}

	return doc
}

// conjNode writes a plain type or literal as a scalar and everything else as a mapping.
// Strings are always double quoted, so they can be told apart from type names.
func conjNode(c *tfs.Conjunction) *yaml.Node {
	types := c.Types()

	switch {
	case c.IsEmpty():
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	case len(c.Terms()) == 1 && len(types) == 1:
		return str(string(types[0]))
	case len(c.Terms()) == 1 && c.Literal() != nil:
		return literalNode(c.Literal())
	}

	res := mapping()

	if len(types) > 0 {
		seq := sequence()
		for _, t := range types {
			seq.Content = append(seq.Content, str(string(t)))
		}

		seq.Style = yaml.FlowStyle
		appendPair(res, "types", seq)
	}

	if lit := c.Literal(); lit != nil {
		appendPair(res, "value", literalNode(lit))
	}

	if avm := c.AVM(); avm != nil {
		appendPair(res, "features", avmNode(avm))
	}

	return res
}

func avmNode(avm *tfs.AVM) *yaml.Node {
	res := mapping()
	for _, attr := range avm.Attributes() {
		appendPair(res, attr.Key, conjNode(attr.Value))
	}

	return res
}

func literalNode(t tfs.Term) *yaml.Node {
	switch lit := t.(type) {
	case tfs.Integer:
		return integer(int64(lit))
	case tfs.String:
		n := str(lit.Value)
		n.Style = yaml.DoubleQuotedStyle

		return n
	default:
		return str(t.String())
	}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func integer(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// mapping creates a mapping node from alternating keys and values.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(kv); i += 2 {
		appendPair(n, kv[i].(string), kv[i+1].(*yaml.Node))
	}

	return n
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}
