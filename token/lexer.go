// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// StatementKind classifies a top-level Statement.
type StatementKind string

const (
	// TypeDef is a type definition terminated by a period at bracket depth zero.
	TypeDef StatementKind = "TYPEDEF"
	// LetterSet is a %(letter-set (!x chars)) macro.
	LetterSet StatementKind = "LETTERSET"
	// WildCard is a %(wild-card (?x chars)) macro.
	WildCard StatementKind = "WILDCARD"
	// LineComment is a ';' comment outside of any statement.
	LineComment StatementKind = "LINECOMMENT"
	// BlockComment is a '#| ... |#' comment outside of any statement.
	BlockComment StatementKind = "BLOCKCOMMENT"
)

// Statement is one top-level unit of a TDL source.
// Tokens is set for TypeDef, LetterSet and WildCard,
// Text holds the verbatim comment for LineComment and BlockComment.
type Statement struct {
	Line   int
	Kind   StatementKind
	Tokens []Token
	Text   string
	// Range spans all tokens of the statement.
	Range Position
}

// IsComment returns true for both comment kinds.
func (s *Statement) IsComment() bool {
	return s.Kind == LineComment || s.Kind == BlockComment
}

func (s *Statement) String() string {
	if s.IsComment() {
		return s.Text
	}

	values := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		values = append(values, t.Value)
	}

	return strings.Join(values, " ")
}

var brackets = map[string]string{
	"[":  "]",
	"<":  ">",
	"<!": "!>",
	"(":  ")",
}

func isOpener(t Token) bool {
	_, ok := brackets[t.Value]
	return ok && t.Kind == KindPunct
}

func isCloser(t Token) bool {
	if t.Kind != KindPunct {
		return false
	}

	for _, c := range brackets {
		if c == t.Value {
			return true
		}
	}

	return false
}

// Lexer groups the tokens of a Tokenizer into Statements.
type Lexer struct {
	tok *Tokenizer
	// err is sticky for lexical errors.
	err error
}

// NewLexer creates a new instance, ready to start lexing.
func NewLexer(filename string, r io.Reader) *Lexer {
	return &Lexer{tok: NewTokenizer(filename, r)}
}

// Next returns the next statement in source order.
// At the end of the input stream, Next returns nil, io.EOF.
// Lexical errors are sticky. After a syntax error the lexer is positioned
// behind the broken statement, so a caller may resume by calling Next again.
func (l *Lexer) Next() (*Statement, error) {
	if l.err != nil {
		return nil, l.err
	}

	stmt, err := l.statement()
	if err != nil && !errors.Is(err, ErrSyntax) {
		l.err = err
	}

	return stmt, err
}

func (l *Lexer) statement() (*Statement, error) {
	first, err := l.tok.Next()
	if err != nil {
		return nil, err
	}

	switch first.Kind {
	case KindLineComment:
		return &Statement{Line: first.BeginPos.Line, Kind: LineComment, Text: first.Value, Range: first.Position}, nil
	case KindBlockComment:
		return &Statement{Line: first.BeginPos.Line, Kind: BlockComment, Text: first.Value, Range: first.Position}, nil
	}

	stmt := &Statement{
		Line:  first.BeginPos.Line,
		Kind:  TypeDef,
		Range: first.Position,
	}

	var stack []Token

	tok := first

	for {
		if !tok.IsComment() {
			stmt.Tokens = append(stmt.Tokens, tok)
			stmt.Range.EndPos = tok.EndPos

			if len(stmt.Tokens) == 3 {
				stmt.Kind = macroKind(stmt.Tokens)
			}

			switch {
			case isOpener(tok):
				stack = append(stack, tok)
			case isCloser(tok):
				if len(stack) == 0 || brackets[stack[len(stack)-1].Value] != tok.Value {
					err := l.unbalanced(stmt, stack, tok)
					// the mismatched closer is taken to close the innermost opener
					l.skip(max(len(stack)-1, 0))

					return nil, err
				}

				stack = stack[:len(stack)-1]

				if len(stack) == 0 && stmt.Kind != TypeDef {
					l.period(stmt)
					return stmt, nil
				}
			case tok.Is(".") && len(stack) == 0 && stmt.Kind == TypeDef:
				return stmt, nil
			}
		}

		tok, err = l.tok.Next()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				open := stack[len(stack)-1]

				return nil, Lexical(open.Position, fmt.Sprintf("'%s' is never closed", open.Value)).
					SetHint(fmt.Sprintf("close it with '%s'", brackets[open.Value])).
					SetStatementLine(stmt.Line)
			}

			return nil, Lexical(stmt.Range, "statement is not terminated").
				SetHint("end the statement with a '.'").
				SetStatementLine(stmt.Line)
		}

		if err != nil {
			return nil, err
		}
	}
}

// unbalanced creates the error for a closer that does not match the innermost opener.
func (l *Lexer) unbalanced(stmt *Statement, stack []Token, closer Token) error {
	if len(stack) == 0 {
		return Syntax(closer.Position, fmt.Sprintf("unbalanced '%s'", closer.Value)).
			SetStatementLine(stmt.Line)
	}

	open := stack[len(stack)-1]

	return NewPosError(closer.Position, fmt.Sprintf("unbalanced '%s'", closer.Value),
		NewErrDetail(open.Position, fmt.Sprintf("'%s' opened here", open.Value)),
	).
		SetCause(ErrSyntax).
		SetHint(fmt.Sprintf("expected '%s'", brackets[open.Value])).
		SetStatementLine(stmt.Line)
}

// skip reads tokens up to and including the next period at depth zero.
func (l *Lexer) skip(depth int) {
	for {
		tok, err := l.tok.Next()
		if err != nil {
			return
		}

		switch {
		case isOpener(tok):
			depth++
		case isCloser(tok):
			depth--
		case tok.Is(".") && depth <= 0:
			return
		}
	}
}

// period consumes an optional period directly following a macro statement.
func (l *Lexer) period(stmt *Statement) {
	tok, err := l.tok.Next()
	if err != nil {
		return
	}

	if tok.Is(".") {
		stmt.Tokens = append(stmt.Tokens, tok)
		stmt.Range.EndPos = tok.EndPos

		return
	}

	l.tok.Unread(tok)
}

// macroKind classifies a statement by its first three tokens.
func macroKind(tokens []Token) StatementKind {
	if !tokens[0].Is("%") || !tokens[1].Is("(") {
		return TypeDef
	}

	switch tokens[2].Value {
	case "letter-set":
		return LetterSet
	case "wild-card":
		return WildCard
	default:
		return TypeDef
	}
}

// Lex returns all statements of text.
func Lex(text string) ([]*Statement, error) {
	l := NewLexer("", strings.NewReader(text))

	var res []*Statement

	for {
		stmt, err := l.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}

		if err != nil {
			return nil, err
		}

		res = append(res, stmt)
	}
}
