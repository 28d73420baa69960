// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golangee/tdl/ast"
	"github.com/golangee/tdl/tfs"
	"github.com/golangee/tdl/token"
)

const (
	attrFirst = "FIRST"
	attrRest  = "REST"
	attrList  = "LIST"
	attrLast  = "LAST"
)

// ParseStatement parses the tokens of a TYPEDEF statement into a type definition.
// Lists and diff lists are desugared into FIRST/REST and LIST/LAST chains.
// doc is the text of the block comment which directly precedes the statement, if any.
// The returned error is a *token.PosError caused by token.ErrSyntax.
func ParseStatement(stmt *token.Statement, doc string) (*tfs.TypeDefinition, error) {
	if stmt.Kind != token.TypeDef {
		return nil, token.Syntax(stmt.Range, fmt.Sprintf("expected a type definition but found %s", stmt.Kind)).
			SetStatementLine(stmt.Line)
	}

	node, err := ast.ParseTypeDef(stmt)
	if err != nil {
		return nil, wrapError(stmt, err)
	}

	b := &builder{
		stmt:   stmt,
		corefs: map[string]*tfs.Coreference{},
		def: &tfs.TypeDefinition{
			Identifier: node.Identifier.Value,
			Operator:   node.Operator,
			Docstring:  Docstring(doc),
			Line:       stmt.Line,
		},
	}

	if node.Affix != nil {
		affix := &tfs.Affix{Kind: node.Affix.Kind}
		for _, p := range node.Affix.Patterns {
			affix.Patterns = append(affix.Patterns, tfs.AffixPattern{From: p.From, To: p.To})
		}

		b.def.Affix = affix
	}

	if err := b.conjunction(node.Body, nil, &b.def.Conjunction); err != nil {
		return nil, err
	}

	return b.def, nil
}

// Docstring strips the delimiters and surrounding whitespace of a block comment.
func Docstring(comment string) string {
	comment = strings.TrimSpace(comment)
	comment = strings.TrimPrefix(comment, "#|")
	comment = strings.TrimSuffix(comment, "|#")

	return strings.TrimSpace(comment)
}

// builder desugars the grammar nodes of one statement.
type builder struct {
	stmt   *token.Statement
	def    *tfs.TypeDefinition
	corefs map[string]*tfs.Coreference
}

func (b *builder) errorf(node token.Node, format string, args ...any) *token.PosError {
	return token.Syntax(node, fmt.Sprintf(format, args...)).SetStatementLine(b.stmt.Line)
}

// conjunction conjoins all terms of node into target, which lives at path.
func (b *builder) conjunction(node *ast.Conjunction, path []string, target *tfs.Conjunction) error {
	for _, term := range node.Terms {
		if err := b.term(term, path, target); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) term(node *ast.Term, path []string, target *tfs.Conjunction) error {
	switch {
	case node.Literal != nil:
		lit := tfs.String{Value: strings.TrimPrefix(node.Literal.Single, "'"), Single: true}
		if node.Literal.Double != "" {
			lit = tfs.String{Value: strings.TrimSuffix(strings.TrimPrefix(node.Literal.Double, `"`), `"`)}
		}

		return b.add(node, target, lit)
	case node.Coref != nil:
		if len(path) == 0 {
			return b.errorf(node, "coreference %s outside of an AVM", node.Coref.Tag).
				SetHint("coreferences may only be used as attribute values")
		}

		b.coref(node.Coref.Tag, path)

		return nil
	case node.Type != nil:
		if !token.IsNumber(node.Type.Value) {
			return b.add(node, target, tfs.TypeIdentifier(node.Type.Value))
		}

		i, err := strconv.ParseInt(node.Type.Value, 10, 64)
		if err != nil {
			return b.errorf(node, "invalid integer %s", node.Type.Value).SetCause(errors.Join(token.ErrSyntax, err))
		}

		return b.add(node, target, tfs.Integer(i))
	case node.AVM != nil:
		return b.avm(node.AVM, path, target)
	case node.List != nil:
		return b.list(node.List, path, target)
	case node.DiffList != nil:
		return b.diffList(node.DiffList, path, target)
	default:
		return b.errorf(node, "empty term")
	}
}

func (b *builder) add(node token.Node, target *tfs.Conjunction, t tfs.Term) error {
	if err := target.Add(t); err != nil {
		return b.errorf(node, "%v", err).SetCause(errors.Join(token.ErrSyntax, err))
	}

	return nil
}

func (b *builder) avm(node *ast.AVM, path []string, target *tfs.Conjunction) error {
	if len(node.Features) == 0 {
		return b.add(node, target, tfs.NewAVM())
	}

	// seen maps every path relative to node which got a value of its own
	// to the feature which set it. A.B x and A [ B x ] both set A.B.
	seen := map[string]*ast.Feature{}

	for _, f := range node.Features {
		val := &tfs.Conjunction{}
		if err := b.conjunction(f.Value, extend(path, f.Path...), val); err != nil {
			return err
		}

		for _, key := range assigned(val, pathString(f.Path), nil) {
			if prev, ok := seen[key]; ok {
				return token.NewPosError(f, fmt.Sprintf("duplicate attribute %s", key),
					token.NewErrDetail(prev, "first defined here"),
				).SetCause(token.ErrSyntax).SetStatementLine(b.stmt.Line)
			}

			seen[key] = f
		}

		// A.B v is the same as A [ B v ].
		for i := len(f.Path) - 1; i >= 0; i-- {
			avm := tfs.NewAVM()
			avm.Set(f.Path[i], val)
			val = tfs.MustConjunction(avm)
		}

		if err := b.add(f, target, val.AVM()); err != nil {
			return err
		}
	}

	return nil
}

// list desugars < a, b > into [ FIRST a, REST [ FIRST b, REST < > ] ].
// An open list < a, ... > has no final REST, a dotted list < a . #tag >
// binds the final REST to the coreference.
func (b *builder) list(node *ast.List, path []string, target *tfs.Conjunction) error {
	items := node.Items
	open := false

	for i, item := range items {
		if !item.Ellipsis {
			continue
		}

		if i != len(items)-1 || node.Tail != nil {
			return b.errorf(item, "'...' must be the last list element")
		}

		open = true
		items = items[:i]
	}

	var tag string

	if node.Tail != nil {
		t := node.Tail
		if len(items) == 0 {
			return b.errorf(t, "dotted list without elements")
		}

		if t.Value == nil || len(t.Value.Terms) != 1 || t.Value.Terms[0].Coref == nil {
			return b.errorf(t, "'.' in a list must be followed by a coreference").
				SetHint("write < a . #rest >")
		}

		tag = t.Value.Terms[0].Coref.Tag
	}

	if len(items) == 0 {
		if open {
			return b.add(node, target, tfs.NewAVM())
		}

		return nil
	}

	restPath, err := b.chain(items, path, target, !open)
	if err != nil {
		return err
	}

	if tag != "" {
		b.coref(tag, restPath)
	}

	return nil
}

// chain builds the FIRST/REST chain of items into target and returns the path
// of the final REST. If terminate is false, the final REST is omitted.
func (b *builder) chain(items []*ast.ListItem, path []string, target *tfs.Conjunction, terminate bool) ([]string, error) {
	node := target

	for i, item := range items {
		first := &tfs.Conjunction{}
		if err := b.conjunction(item.Value, extend(path, attrFirst), first); err != nil {
			return nil, err
		}

		avm := tfs.NewAVM()
		avm.Set(attrFirst, first)

		rest := &tfs.Conjunction{}
		if i < len(items)-1 || terminate {
			avm.Set(attrRest, rest)
		}

		if err := b.add(item, node, avm); err != nil {
			return nil, err
		}

		// merging may have replaced rest by an existing node
		if next, err := node.Get(attrRest); err == nil {
			rest = next
		}

		node = rest
		path = extend(path, attrRest)
	}

	return path, nil
}

// diffList desugars <! a !> into [ LIST [ FIRST a, REST #d ], LAST #d ]
// where #d is an anonymous coreference.
func (b *builder) diffList(node *ast.DiffList, path []string, target *tfs.Conjunction) error {
	items := make([]*ast.ListItem, 0, len(node.Items))
	for _, c := range node.Items {
		items = append(items, &ast.ListItem{Pos: c.Pos, EndPos: c.EndPos, Value: c})
	}

	list := &tfs.Conjunction{}

	end, err := b.chain(items, extend(path, attrList), list, true)
	if err != nil {
		return err
	}

	avm := tfs.NewAVM()
	avm.Set(attrList, list)
	avm.Set(attrLast, &tfs.Conjunction{})

	if err := b.add(node, target, avm); err != nil {
		return err
	}

	b.def.Coreferences = append(b.def.Coreferences, &tfs.Coreference{
		Paths: []string{pathString(end), pathString(extend(path, attrLast))},
	})

	return nil
}

// coref appends path to the coreference named tag.
func (b *builder) coref(tag string, path []string) {
	c, ok := b.corefs[tag]
	if !ok {
		c = &tfs.Coreference{Tag: tag}
		b.corefs[tag] = c
		b.def.Coreferences = append(b.def.Coreferences, c)
	}

	c.Paths = append(c.Paths, pathString(path))
}

// assigned appends prefix and the paths below it at which c carries a type,
// a literal or nothing at all. Paths of a plain AVM are left out, so that
// [ A [ B x ], A [ C y ] ] does not collide on A.
func assigned(c *tfs.Conjunction, prefix string, res []string) []string {
	avm := c.AVM()
	if avm == nil || avm.Len() == 0 || len(c.Terms()) > 1 {
		res = append(res, prefix)
	}

	if avm != nil {
		for _, attr := range avm.Attributes() {
			res = assigned(attr.Value, prefix+"."+attr.Key, res)
		}
	}

	return res
}

func pathString(path []string) string {
	return strings.ToUpper(strings.Join(path, "."))
}

// extend returns a new path, path is never modified.
func extend(path []string, names ...string) []string {
	res := make([]string, 0, len(path)+len(names))
	res = append(res, path...)

	return append(res, names...)
}
