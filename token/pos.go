// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node contains access to the start and end positions of a token.
type Node interface {
	Begin() Pos
	End() Pos
}

// A Pos describes a resolved position within a file.
type Pos struct {
	// File contains the file path as given to the tokenizer.
	File string
	// Line denotes the one-based line number in the denoted File.
	Line int
	// Col denotes the one-based column number in the denoted Line.
	Col int
	// Offset is the zero-based byte offset in the denoted File.
	Offset int
}

// WrapPos converts a participle position into a Pos.
func WrapPos(p lexer.Position) Pos {
	return Pos{
		File:   p.Filename,
		Line:   p.Line,
		Col:    p.Column,
		Offset: p.Offset,
	}
}

// Unwrap converts the position back into a participle position.
func (p Pos) Unwrap() lexer.Position {
	return lexer.Position{
		Filename: p.File,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Col,
	}
}

// String returns the content in the "file:line:col" format.
func (p Pos) String() string {
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Position is a range between two positions and implements Node.
type Position struct {
	BeginPos Pos
	EndPos   Pos
}

func (p Position) Begin() Pos {
	return p.BeginPos
}

func (p Position) End() Pos {
	return p.EndPos
}

// NewNode returns a Node spanning begin to end.
func NewNode(begin, end Pos) Node {
	return Position{BeginPos: begin, EndPos: end}
}
