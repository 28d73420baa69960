// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a Token.
type Kind string

const (
	// KindAtom is an identifier like a type name or an attribute.
	KindAtom Kind = "Atom"
	// KindNumber is an atom that spells an integer.
	KindNumber Kind = "Number"
	// KindString is a double quoted string, delimiters included.
	KindString Kind = "String"
	// KindQString is a single-open-quoted string like 'symbol.
	KindQString Kind = "QString"
	// KindPunct is a single or multi character punctuation symbol.
	KindPunct Kind = "Punct"
	// KindCoref is a coreference tag like #tag.
	KindCoref Kind = "Coref"
	// KindLetter is a letter-set variable like !v.
	KindLetter Kind = "Letter"
	// KindLineComment is a ';' comment up to the end of the line.
	KindLineComment Kind = "LineComment"
	// KindBlockComment is a '#| ... |#' comment, delimiters included.
	KindBlockComment Kind = "BlockComment"
	// KindChars is a run of letter-set characters, backslash escapes included.
	KindChars Kind = "Chars"

	kindWhitespace          Kind = "Whitespace"
	kindUnterminatedString  Kind = "UnterminatedString"
	kindUnterminatedComment Kind = "UnterminatedComment"
)

// atomClass are the runes that may appear in atoms, coreference tags and letter-set variables.
const atomClass = `[^\s!"#%&'(),.:;<=>\[\]]`

// Definition is the participle lexer definition for TDL source text.
// Rules are tried in order, the first match wins.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "BlockComment", Pattern: `#\|(?s:.*?)\|#`},
	{Name: "UnterminatedComment", Pattern: `#\|(?s:.*)`},
	{Name: "LineComment", Pattern: `;[^\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\(?s:.))*"`},
	{Name: "UnterminatedString", Pattern: `"(?s:.*)`},
	{Name: "QString", Pattern: `'(?:[^\s\\\[\]<>(),.:;&=!#%"']|\\(?s:.))*`},
	{Name: "Coref", Pattern: `#` + atomClass + `+`},
	{Name: "Operator", Pattern: `:=|:\+|:<|<!|!>|\.\.\.`},
	{Name: "Letter", Pattern: `!` + atomClass + `+`},
	{Name: "Punct", Pattern: `[:.,&!\[\]<>()=%]`},
	{Name: "Atom", Pattern: atomClass + `+`},
	{Name: "Whitespace", Pattern: `\s+`},
	// Chars are scanned by the Tokenizer itself, the pattern never matches.
	{Name: "Chars", Pattern: `[^\s\S]`},
})

// kinds maps the participle token types of Definition to our kinds.
var kinds = func() map[lexer.TokenType]Kind {
	m := map[lexer.TokenType]Kind{}
	for name, typ := range Definition.Symbols() {
		switch name {
		case "Operator", "Punct":
			m[typ] = KindPunct
		default:
			m[typ] = Kind(name)
		}
	}

	return m
}()

var regexNumber = regexp.MustCompile(`^[+-]?[0-9]+$`)

// IsNumber returns true if s spells an integer.
func IsNumber(s string) bool {
	return regexNumber.MatchString(s)
}

// Token is one lexical unit. Value keeps the source text verbatim.
type Token struct {
	Position
	Kind  Kind
	Value string
	typ   lexer.TokenType
}

// NewToken creates a token without position, mostly useful for tests.
func NewToken(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value}
}

func newToken(lt lexer.Token) Token {
	kind := kinds[lt.Type]
	if kind == KindAtom && regexNumber.MatchString(lt.Value) {
		kind = KindNumber
	}

	begin := WrapPos(lt.Pos)

	return Token{
		Position: Position{BeginPos: begin, EndPos: advance(begin, lt.Value)},
		Kind:     kind,
		Value:    lt.Value,
		typ:      lt.Type,
	}
}

// advance returns the position after reading s starting at p.
func advance(p Pos, s string) Pos {
	p.Offset += len(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.Line += strings.Count(s, "\n")
		p.Col = 1 + utf8.RuneCountInString(s[i+1:])

		return p
	}

	p.Col += utf8.RuneCountInString(s)

	return p
}

func (t Token) String() string {
	return t.Value
}

// Is returns true if the token is a punctuation with the given symbol.
func (t Token) Is(symbol string) bool {
	return t.Kind == KindPunct && t.Value == symbol
}

// IsComment returns true for line and block comments.
func (t Token) IsComment() bool {
	return t.Kind == KindLineComment || t.Kind == KindBlockComment
}

// Lexeme returns the participle representation of this token.
func (t Token) Lexeme() lexer.Token {
	typ := t.typ
	if typ == 0 {
		typ = Definition.Symbols()[string(t.Kind)]
		if t.Kind == KindNumber {
			typ = Definition.Symbols()["Atom"]
		}
	}

	return lexer.Token{
		Type:  typ,
		Value: t.Value,
		Pos:   t.BeginPos.Unwrap(),
	}
}
