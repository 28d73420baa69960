// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/golangee/tdl/token"
)

var (
	typeDefParser = participle.MustBuild[TypeDef](
		participle.Lexer(token.Definition),
		participle.UseLookahead(3),
	)

	letterSetParser = participle.MustBuild[LetterSet](
		participle.Lexer(token.Definition),
		participle.UseLookahead(2),
	)
)

// statementLexer replays the already lexed tokens of a statement to participle.
type statementLexer struct {
	tokens []token.Token
	eof    lexer.Position
}

func newStatementLexer(stmt *token.Statement) *statementLexer {
	return &statementLexer{
		tokens: stmt.Tokens,
		eof:    stmt.Range.EndPos.Unwrap(),
	}
}

func (l *statementLexer) Next() (lexer.Token, error) {
	if len(l.tokens) == 0 {
		return lexer.EOFToken(l.eof), nil
	}

	tok := l.tokens[0]
	l.tokens = l.tokens[1:]

	return tok.Lexeme(), nil
}

// ParseTypeDef applies the type definition grammar to the tokens of stmt.
// Errors are returned as is from participle.
func ParseTypeDef(stmt *token.Statement) (*TypeDef, error) {
	lex, err := lexer.Upgrade(newStatementLexer(stmt))
	if err != nil {
		return nil, err
	}

	return typeDefParser.ParseFromLexer(lex)
}

// ParseLetterSet applies the letter-set grammar to the tokens of stmt.
func ParseLetterSet(stmt *token.Statement) (*LetterSet, error) {
	lex, err := lexer.Upgrade(newStatementLexer(stmt))
	if err != nil {
		return nil, err
	}

	return letterSetParser.ParseFromLexer(lex)
}

// Grammar returns the EBNF of the type definition grammar.
func Grammar() string {
	return typeDefParser.String()
}
