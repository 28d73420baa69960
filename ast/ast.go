// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ast contains the participle grammar of a single TDL statement.
// The nodes mirror the surface syntax, including list and diff list
// literals. The parser package desugars them into the feature-structure model.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/golangee/tdl/token"
)

func wrapPos(p lexer.Position) token.Pos {
	return token.WrapPos(p)
}

// TypeDef is a complete type definition statement like
//  n_pl := %suffix (!s !ss) noun & [ NUM pl ].
type TypeDef struct {
	Pos, EndPos lexer.Position
	Identifier  Ident        `@@`
	Operator    string       `@(":=" | ":+" | ":<")`
	Affix       *Affix       `@@?`
	Body        *Conjunction `@@ "."`
}

func (n *TypeDef) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *TypeDef) End() token.Pos {
	return wrapPos(n.EndPos)
}

// Affix is an inflectional rule pattern list like %suffix (!s !ss) (* s).
type Affix struct {
	Pos, EndPos lexer.Position
	Kind        string          `"%" @("prefix" | "suffix")`
	Patterns    []*AffixPattern `@@+`
}

func (n *Affix) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Affix) End() token.Pos {
	return wrapPos(n.EndPos)
}

type AffixPattern struct {
	Pos, EndPos lexer.Position
	From        string `"(" @(Atom | Letter | QString)`
	To          string `@(Atom | Letter | QString) ")"`
}

// Conjunction is a non-empty list of terms joined by '&'.
type Conjunction struct {
	Pos, EndPos lexer.Position
	Terms       []*Term `@@ ("&" @@)*`
}

func (n *Conjunction) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Conjunction) End() token.Pos {
	return wrapPos(n.EndPos)
}

// Term is exactly one of its fields.
type Term struct {
	Pos, EndPos lexer.Position
	Literal     *Literal  `  @@`
	Coref       *Coref    `| @@`
	AVM         *AVM      `| @@`
	DiffList    *DiffList `| @@`
	List        *List     `| @@`
	Type        *Ident    `| @@`
}

func (n *Term) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Term) End() token.Pos {
	return wrapPos(n.EndPos)
}

// Literal is either a double quoted or a single open quoted string. The value
// keeps its delimiters.
type Literal struct {
	Pos, EndPos lexer.Position
	Double      string `  @String`
	Single      string `| @QString`
}

func (n *Literal) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Literal) End() token.Pos {
	return wrapPos(n.EndPos)
}

type Coref struct {
	Pos, EndPos lexer.Position
	Tag         string `@Coref`
}

func (n *Coref) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Coref) End() token.Pos {
	return wrapPos(n.EndPos)
}

// Ident is a type name. Integers are idents as well and are told apart later.
type Ident struct {
	Pos, EndPos lexer.Position
	Value       string `@Atom`
}

func (n *Ident) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Ident) End() token.Pos {
	return wrapPos(n.EndPos)
}

// AVM is a bracketed, comma separated attribute-value matrix.
type AVM struct {
	Pos, EndPos lexer.Position
	Features    []*Feature `"[" (@@ ("," @@)*)? "]"`
}

func (n *AVM) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *AVM) End() token.Pos {
	return wrapPos(n.EndPos)
}

// Feature is a possibly dotted attribute path and its value.
type Feature struct {
	Pos, EndPos lexer.Position
	Path        []string     `@Atom ("." @Atom)*`
	Value       *Conjunction `@@`
}

func (n *Feature) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *Feature) End() token.Pos {
	return wrapPos(n.EndPos)
}

// List is the cons list sugar < a, b >, < a, ... > or < a . #rest >.
type List struct {
	Pos, EndPos lexer.Position
	Items       []*ListItem `"<" (@@ ("," @@)*)?`
	Tail        *ListTail   `@@? ">"`
}

func (n *List) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *List) End() token.Pos {
	return wrapPos(n.EndPos)
}

type ListItem struct {
	Pos, EndPos lexer.Position
	Ellipsis    bool         `  @"..."`
	Value       *Conjunction `| @@`
}

func (n *ListItem) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *ListItem) End() token.Pos {
	return wrapPos(n.EndPos)
}

// ListTail is the dotted rest of a list. Value is nil if the dot is not
// followed by anything.
type ListTail struct {
	Pos, EndPos lexer.Position
	Dot         bool         `@"."`
	Value       *Conjunction `@@?`
}

func (n *ListTail) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *ListTail) End() token.Pos {
	return wrapPos(n.EndPos)
}

// DiffList is the difference list sugar <! a, b !>.
type DiffList struct {
	Pos, EndPos lexer.Position
	Items       []*Conjunction `"<!" (@@ ("," @@)*)? "!>"`
}

func (n *DiffList) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *DiffList) End() token.Pos {
	return wrapPos(n.EndPos)
}

// LetterSet is a %(letter-set (!v aeiou)) or %(wild-card (?s abc)) macro.
type LetterSet struct {
	Pos, EndPos lexer.Position
	Kind        string   `"%" "(" @("letter-set" | "wild-card")`
	Name        string   `"(" @(Letter | Atom)`
	Characters  []string `@Chars* ")" ")" "."?`
}

func (n *LetterSet) Begin() token.Pos {
	return wrapPos(n.Pos)
}

func (n *LetterSet) End() token.Pos {
	return wrapPos(n.EndPos)
}
