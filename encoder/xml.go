// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golangee/tdl/parser"
	"github.com/golangee/tdl/tfs"
	"github.com/golangee/tdl/util"
)

// XMLEncoder reads TDL and writes the type definitions as TEI feature
// structures. Coreferences and letter sets are written as extra elements.
type XMLEncoder struct {
	parser *parser.Parser
	writer *bufio.Writer

	// openNodes is a stack of elements that are currently opened,
	// so that the closing tag can be written correctly.
	openNodes []*node
	// indent is the current level of indentation for emitting XML.
	indent uint
}

// node is an element that we are currently working on.
type node struct {
	// name is the name in the XML tag which we need to save so that the closing tag can be written.
	name string
	// attributes is a list of attributes this node has.
	attributes util.AttributeList[string]
	// openTagWritten is set to true once we have written the starting XML tag.
	openTagWritten bool
}

func NewXMLEncoder(filename string, r io.Reader, w io.Writer, opts ...parser.Option) *XMLEncoder {
	return &XMLEncoder{
		parser: parser.New(filename, r, opts...),
		writer: bufio.NewWriter(w),
	}
}

// Encode starts the encoding process, reading input from the reader and writing to the writer.
// There is no up-front validation, which means that in case of an error incomplete output
// already got emitted.
func (e *XMLEncoder) Encode() error {
	if err := e.openNode("tdl"); err != nil {
		return err
	}

	for {
		def, err := e.parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		if err := e.typeDef(def); err != nil {
			return err
		}
	}

	for _, ls := range e.parser.LetterSets() {
		name := "letter-set"
		if ls.WildCard {
			name = "wild-card"
		}

		if err := e.leaf(name, ls.Characters, "name", ls.Name, "line", strconv.Itoa(ls.Line)); err != nil {
			return err
		}
	}

	if err := e.close(); err != nil {
		return err
	}

	if err := e.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush written XML: %w", err)
	}

	return nil
}

func (e *XMLEncoder) typeDef(def *tfs.TypeDefinition) error {
	if err := e.openNode("typedef", "name", def.Identifier, "operator", def.Operator, "line", strconv.Itoa(def.Line)); err != nil {
		return err
	}

	if def.Docstring != "" {
		if err := e.leaf("doc", def.Docstring); err != nil {
			return err
		}
	}

	if def.Affix != nil {
		if err := e.openNode("affix", "kind", def.Affix.Kind); err != nil {
			return err
		}

		for _, p := range def.Affix.Patterns {
			if err := e.leaf("pattern", "", "from", p.From, "to", p.To); err != nil {
				return err
			}
		}

		if err := e.close(); err != nil {
			return err
		}
	}

	if err := e.conj(&def.Conjunction); err != nil {
		return err
	}

	for _, c := range def.Coreferences {
		if err := e.openNode("coref", "tag", c.Tag); err != nil {
			return err
		}

		for _, p := range c.Paths {
			if err := e.leaf("path", p); err != nil {
				return err
			}
		}

		if err := e.close(); err != nil {
			return err
		}
	}

	return e.close()
}

// conj writes a single leaf element for a plain type or literal, and an fs otherwise.
func (e *XMLEncoder) conj(c *tfs.Conjunction) error {
	types := make([]string, 0, len(c.Types()))
	for _, t := range c.Types() {
		types = append(types, string(t))
	}

	var typeAttr []string
	if len(types) > 0 {
		typeAttr = []string{"type", strings.Join(types, " ")}
	}

	switch lit := c.Literal().(type) {
	case tfs.String:
		return e.leaf("string", lit.Value, typeAttr...)
	case tfs.Integer:
		return e.leaf("numeric", "", append(typeAttr, "value", lit.String())...)
	}

	if c.AVM() == nil && len(types) == 1 {
		return e.leaf("symbol", "", "value", types[0])
	}

	if err := e.openNode("fs", typeAttr...); err != nil {
		return err
	}

	if avm := c.AVM(); avm != nil {
		for _, attr := range avm.Attributes() {
			if err := e.openNode("f", "name", attr.Key); err != nil {
				return err
			}

			if err := e.conj(attr.Value); err != nil {
				return err
			}

			if err := e.close(); err != nil {
				return err
			}
		}
	}

	return e.close()
}

// leaf writes a complete element with text content.
func (e *XMLEncoder) leaf(name, text string, attrs ...string) error {
	if err := e.openNode(name, attrs...); err != nil {
		return err
	}

	top := e.peek()
	top.openTagWritten = true

	tag := e.startTag(top) + escapeXMLSafe(text) + "</" + name + ">\n"
	e.pop()

	return e.writeString(tag)
}

// openNode puts a node on our working stack but does not write it yet.
// However, its parent node might get written out, since we know that it will not get any more attributes.
func (e *XMLEncoder) openNode(name string, attrs ...string) error {
	if err := e.writeTopNodeOpen(); err != nil {
		return err
	}

	n := &node{name: name, attributes: util.NewAttributeList[string]()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.attributes.Add(attrs[i], attrs[i+1])
	}

	e.push(n)

	return nil
}

func (e *XMLEncoder) close() error {
	if err := e.writeTopNodeOpen(); err != nil {
		return err
	}

	e.indent--

	top := e.pop()

	return e.writeString(fmt.Sprintf("%s</%s>\n", e.indentString(), top.name))
}

func (e *XMLEncoder) startTag(n *node) string {
	var tag strings.Builder

	tag.WriteString(e.indentString())
	tag.WriteString("<")
	tag.WriteString(n.name)

	for _, attr := range n.attributes.All() {
		tag.WriteString(fmt.Sprintf(` %s="%s"`, strings.ToLower(attr.Key), escapeXMLSafe(attr.Value)))
	}

	tag.WriteString(">")

	return tag.String()
}

// writeTopNodeOpen writes the topmost stack node to the writer.
func (e *XMLEncoder) writeTopNodeOpen() error {
	top := e.peek()
	if top != nil && !top.openTagWritten {
		top.openTagWritten = true
		e.indent++

		return e.writeString(e.startTag(top) + "\n")
	}

	return nil
}

// writeString is a convenience method to write strings to the underlying writer.
func (e *XMLEncoder) writeString(s string) error {
	_, err := e.writer.WriteString(s)

	return err
}

// push a node onto our working stack.
func (e *XMLEncoder) push(n *node) {
	e.openNodes = append(e.openNodes, n)
}

// peek at the top element in our working stack. Might return nil if the stack is empty.
func (e *XMLEncoder) peek() *node {
	if len(e.openNodes) > 0 {
		return e.openNodes[len(e.openNodes)-1]
	}

	return nil
}

// pop the top node from the working stack. Might return nil if the stack is empty.
func (e *XMLEncoder) pop() *node {
	if len(e.openNodes) > 0 {
		n := e.openNodes[len(e.openNodes)-1]
		e.openNodes = e.openNodes[:len(e.openNodes)-1]

		return n
	}

	return nil
}

// indentString returns a string with a number of spaces that matches the
// current indentation level.
func (e *XMLEncoder) indentString() string {
	return strings.Repeat("    ", int(e.indent))
}

// escapeXMLSafe replaces all occurrences of reserved characters in XML: <>&".
func escapeXMLSafe(s string) string {
	replacer := strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;", `"`, "&quot;")

	return replacer.Replace(s)
}
