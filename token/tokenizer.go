// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Tokenizer splits TDL source text into tokens.
// Whitespace is dropped, comments are returned as tokens.
type Tokenizer struct {
	filename string
	src      string
	lex      lexer.Lexer
	// base is the position in src at which lex starts.
	base Pos
	// err is sticky, once set every call to Next returns it.
	err error
	// peeked holds tokens that were pushed back by Unread.
	peeked []Token
	// last is the most recently returned token.
	last Token
	// recent are the last tokens read by lex, to spot the head of a letter set.
	recent []Token
	// raw is set while the characters of a letter set are scanned, starting at rawPos.
	raw    bool
	rawPos Pos
}

// NewTokenizer creates a new instance, ready to start tokenizing.
func NewTokenizer(filename string, r io.Reader) *Tokenizer {
	t := &Tokenizer{filename: filename}

	buf, err := io.ReadAll(r)
	if err != nil {
		t.err = fmt.Errorf("unable to read %q: %w", filename, err)
		return t
	}

	t.src = string(buf)
	t.restart(Pos{File: filename, Line: 1, Col: 1})

	return t
}

// restart lexes src again from pos on.
func (t *Tokenizer) restart(pos Pos) {
	lex, err := Definition.LexString(t.filename, t.src[pos.Offset:])
	if err != nil {
		t.err = fmt.Errorf("unable to read %q: %w", t.filename, err)
		return
	}

	t.lex = lex
	t.base = pos
}

// rebase converts a position of lex into a position in src.
func (t *Tokenizer) rebase(p lexer.Position) lexer.Position {
	if p.Line == 1 {
		p.Column += t.base.Col - 1
	}

	p.Line += t.base.Line - 1
	p.Offset += t.base.Offset

	return p
}

// Next returns the next token in the input stream.
// At the end of the input stream, Next returns io.EOF.
func (t *Tokenizer) Next() (Token, error) {
	if len(t.peeked) > 0 {
		tok := t.peeked[len(t.peeked)-1]
		t.peeked = t.peeked[:len(t.peeked)-1]
		t.last = tok

		return tok, nil
	}

	if t.err != nil {
		return Token{}, t.err
	}

	if t.raw {
		if tok, ok := t.chars(); ok {
			t.last = tok
			return tok, nil
		}

		if t.err != nil {
			return Token{}, t.err
		}
	}

	for {
		lt, err := t.lex.Next()
		if err != nil {
			t.err = t.wrapError(err)
			return Token{}, t.err
		}

		if lt.EOF() {
			t.err = io.EOF
			return Token{}, t.err
		}

		lt.Pos = t.rebase(lt.Pos)
		tok := newToken(lt)

		switch tok.Kind {
		case kindWhitespace:
			continue
		case kindUnterminatedString:
			t.err = Lexical(tok.Position, "unterminated string").
				SetHint("close the string with a '\"'").
				SetStatementLine(tok.BeginPos.Line)
			return Token{}, t.err
		case kindUnterminatedComment:
			t.err = Lexical(tok.Position, "unterminated block comment").
				SetHint("close the comment with '|#'").
				SetStatementLine(tok.BeginPos.Line)
			return Token{}, t.err
		}

		t.last = tok
		t.remember(tok)

		return tok, nil
	}
}

// remember switches to raw scanning after the name of %(letter-set (!x or
// %(wild-card (?x, so that the characters may contain any punctuation.
func (t *Tokenizer) remember(tok Token) {
	if tok.IsComment() {
		return
	}

	t.recent = append(t.recent, tok)
	if len(t.recent) > 5 {
		t.recent = t.recent[1:]
	}

	r := t.recent
	if len(r) == 5 && r[0].Is("%") && r[1].Is("(") && r[3].Is("(") &&
		r[2].Kind == KindAtom && (r[2].Value == "letter-set" || r[2].Value == "wild-card") &&
		(r[4].Kind == KindLetter || r[4].Kind == KindAtom) {
		t.raw = true
		t.rawPos = tok.EndPos
		t.recent = nil
	}
}

// chars returns the next run of letter-set characters. A backslash escapes
// the following rune, whitespace separates runs. At the first unescaped ')'
// raw scanning stops and lexing resumes there.
func (t *Tokenizer) chars() (Token, bool) {
	s := t.src[t.rawPos.Offset:]
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	begin := advance(t.rawPos, s[:len(s)-len(trimmed)])
	s = trimmed

	end := 0

	for end < len(s) {
		r, n := utf8.DecodeRuneInString(s[end:])
		if r == ')' || unicode.IsSpace(r) {
			break
		}

		if r == '\\' && end+n < len(s) {
			_, m := utf8.DecodeRuneInString(s[end+n:])
			n += m
		}

		end += n
	}

	if end == 0 {
		t.raw = false
		t.restart(begin)

		return Token{}, false
	}

	tok := Token{
		Position: Position{BeginPos: begin, EndPos: advance(begin, s[:end])},
		Kind:     KindChars,
		Value:    s[:end],
	}
	t.rawPos = tok.EndPos

	return tok, true
}

// Unread pushes tok back, so that the next call to Next returns it again.
func (t *Tokenizer) Unread(tok Token) {
	t.peeked = append(t.peeked, tok)
}

// Pos returns the end position of the last returned token.
func (t *Tokenizer) Pos() Pos {
	if t.last.EndPos.Line == 0 {
		return Pos{File: t.filename, Line: 1, Col: 1}
	}

	return t.last.EndPos
}

func (t *Tokenizer) wrapError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		pos := WrapPos(t.rebase(lerr.Pos))

		return Lexical(NewNode(pos, pos), lerr.Msg).SetStatementLine(pos.Line)
	}

	pos := t.Pos()

	return Lexical(NewNode(pos, pos), "unable to read next token").
		SetStatementLine(pos.Line).
		SetCause(fmt.Errorf("%w: %v", ErrLexical, err))
}

// Tokenize returns all tokens of text, including comments.
func Tokenize(text string) ([]Token, error) {
	t := NewTokenizer("", strings.NewReader(text))

	var res []Token

	for {
		tok, err := t.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}

		if err != nil {
			return nil, err
		}

		res = append(res, tok)
	}
}
