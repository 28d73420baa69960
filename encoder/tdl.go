// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golangee/tdl/parser"
	"github.com/golangee/tdl/tfs"
)

const (
	attrFirst = "FIRST"
	attrRest  = "REST"
	attrList  = "LIST"
	attrLast  = "LAST"
)

// TDLEncoder reads TDL and writes it back in a canonical single line form
// per definition. Lists and diff lists are resugared.
type TDLEncoder struct {
	parser *parser.Parser
	writer *bufio.Writer
}

func NewTDLEncoder(filename string, r io.Reader, w io.Writer, opts ...parser.Option) *TDLEncoder {
	return &TDLEncoder{
		parser: parser.New(filename, r, opts...),
		writer: bufio.NewWriter(w),
	}
}

// Encode reads all definitions and writes them. Letter sets follow after the
// last definition.
func (e *TDLEncoder) Encode() error {
	for {
		def, err := e.parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		if _, err := e.writer.WriteString(FormatTDL(def) + "\n"); err != nil {
			return err
		}
	}

	for _, ls := range e.parser.LetterSets() {
		if _, err := e.writer.WriteString(ls.String() + "\n"); err != nil {
			return err
		}
	}

	if err := e.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush written TDL: %w", err)
	}

	return nil
}

// FormatTDL renders a type definition as a TDL statement. A docstring is
// written as a block comment in front of it.
func FormatTDL(def *tfs.TypeDefinition) string {
	f := &formatter{def: def, consumed: map[*tfs.Coreference]bool{}}

	var sb strings.Builder

	if def.Docstring != "" {
		sb.WriteString("#| " + def.Docstring + " |#\n")
	}

	sb.WriteString(def.Identifier + " " + def.Operator + " ")

	if def.Affix != nil {
		sb.WriteString("%" + def.Affix.Kind)

		for _, p := range def.Affix.Patterns {
			sb.WriteString(" (" + p.From + " " + p.To + ")")
		}

		sb.WriteString(" ")
	}

	sb.WriteString(f.conj(&def.Conjunction, ""))
	sb.WriteString(".")

	return sb.String()
}

type formatter struct {
	def *tfs.TypeDefinition
	// consumed are anonymous coreferences which have been written as diff lists.
	consumed map[*tfs.Coreference]bool
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

// tags returns the named coreferences at path.
func (f *formatter) tags(path string) []string {
	var res []string

	for _, c := range f.def.CoreferencesAt(path) {
		if !c.IsAnonymous() {
			res = append(res, c.Tag)
		}
	}

	return res
}

func (f *formatter) conj(c *tfs.Conjunction, path string) string {
	var parts []string

	if path != "" {
		parts = append(parts, f.tags(path)...)
	}

	if s, ok := f.diffList(c, path); ok {
		return strings.Join(append(parts, s), " & ")
	}

	if s, ok := f.list(c, path); ok {
		return strings.Join(append(parts, s), " & ")
	}

	for _, t := range c.Terms() {
		if avm, ok := t.(*tfs.AVM); ok {
			parts = append(parts, f.avm(avm, path))
			continue
		}

		parts = append(parts, t.String())
	}

	if len(parts) == 0 {
		return "< >"
	}

	return strings.Join(parts, " & ")
}

func (f *formatter) avm(avm *tfs.AVM, path string) string {
	if avm.Len() == 0 {
		return "[ ]"
	}

	parts := make([]string, 0, avm.Len())
	for _, attr := range avm.Attributes() {
		parts = append(parts, attr.Key+" "+f.conj(attr.Value, join(path, attr.Key)))
	}

	return "[ " + strings.Join(parts, ", ") + " ]"
}

// onlyAVM returns the AVM of c if c has no other term.
func onlyAVM(c *tfs.Conjunction) *tfs.AVM {
	if len(c.Terms()) != 1 {
		return nil
	}

	return c.AVM()
}

// chainItem is a FIRST node of a cons list and its path.
type chainItem struct {
	node *tfs.Conjunction
	path string
}

// chain follows a FIRST/REST chain starting at c. It returns the items, the
// final REST node and its path, which is nil for an open list.
func (f *formatter) chain(c *tfs.Conjunction, path string) (items []chainItem, end *tfs.Conjunction, endPath string, ok bool) {
	node := c

	for {
		avm := onlyAVM(node)
		if avm == nil {
			return nil, nil, "", false
		}

		first, hasFirst := avm.Get(attrFirst)
		if !hasFirst {
			return nil, nil, "", false
		}

		for _, k := range avm.Keys() {
			if k != attrFirst && k != attrRest {
				return nil, nil, "", false
			}
		}

		items = append(items, chainItem{node: first, path: join(path, attrFirst)})
		path = join(path, attrRest)

		rest, hasRest := avm.Get(attrRest)
		if !hasRest {
			return items, nil, "", true
		}

		if rest.IsEmpty() {
			return items, rest, path, true
		}

		// a coreference on an inner REST cannot be written in list notation
		if len(f.def.CoreferencesAt(path)) > 0 {
			return nil, nil, "", false
		}

		node = rest
	}
}

func (f *formatter) items(items []chainItem) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, f.conj(it.node, it.path))
	}

	return res
}

func (f *formatter) list(c *tfs.Conjunction, path string) (string, bool) {
	if avm := onlyAVM(c); avm != nil && avm.Len() == 0 {
		return "< ... >", true
	}

	items, end, endPath, ok := f.chain(c, path)
	if !ok {
		return "", false
	}

	elems := strings.Join(f.items(items), ", ")

	if end == nil {
		return "< " + elems + ", ... >", true
	}

	corefs := f.def.CoreferencesAt(endPath)
	switch {
	case len(corefs) == 0:
		return "< " + elems + " >", true
	case len(corefs) == 1 && !corefs[0].IsAnonymous():
		return "< " + elems + " . " + corefs[0].Tag + " >", true
	default:
		return "", false
	}
}

func (f *formatter) diffList(c *tfs.Conjunction, path string) (string, bool) {
	avm := onlyAVM(c)
	if avm == nil || avm.Len() != 2 {
		return "", false
	}

	list, hasList := avm.Get(attrList)
	last, hasLast := avm.Get(attrLast)

	if !hasList || !hasLast || !last.IsEmpty() {
		return "", false
	}

	var (
		items   []chainItem
		endPath = join(path, attrList)
	)

	if !list.IsEmpty() {
		var (
			end *tfs.Conjunction
			ok  bool
		)

		items, end, endPath, ok = f.chain(list, join(path, attrList))
		if !ok || end == nil {
			return "", false
		}
	}

	lastPath := join(path, attrLast)

	for _, ref := range f.def.CoreferencesAt(lastPath) {
		if !ref.IsAnonymous() || f.consumed[ref] || len(ref.Paths) != 2 || ref.Paths[0] != endPath || ref.Paths[1] != lastPath {
			continue
		}

		if len(f.def.CoreferencesAt(endPath)) != 1 || len(f.def.CoreferencesAt(lastPath)) != 1 {
			return "", false
		}

		f.consumed[ref] = true

		if len(items) == 0 {
			return "<! !>", true
		}

		return "<! " + strings.Join(f.items(items), ", ") + " !>", true
	}

	return "", false
}
