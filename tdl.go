// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package tdl reads grammars written in TDL, the type description language
// of HPSG grammars, into typed feature structures.
//
// The work is split into stages, each with its own package: token splits
// the text into tokens and statements, parser builds a tfs.TypeDefinition
// for every type definition statement and encoder writes definitions as TDL,
// XML or YAML. This package bundles the common entry points.
package tdl

import (
	"errors"
	"io"
	"strings"

	"github.com/golangee/tdl/parser"
	"github.com/golangee/tdl/tfs"
	"github.com/golangee/tdl/token"
)

// Tokenize returns the verbatim text of every token in text.
func Tokenize(text string) ([]string, error) {
	tokens, err := token.Tokenize(text)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(tokens))
	for _, t := range tokens {
		res = append(res, t.Value)
	}

	return res, nil
}

// Lex reads all statements from r.
func Lex(r io.Reader) ([]*token.Statement, error) {
	lexer := token.NewLexer("", r)

	var res []*token.Statement

	for {
		stmt, err := lexer.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}

		if err != nil {
			return res, err
		}

		res = append(res, stmt)
	}
}

// Parse returns a pull parser over r.
func Parse(r io.Reader, opts ...parser.Option) *parser.Parser {
	return parser.New("", r, opts...)
}

// ParseString parses all type definitions in text.
func ParseString(text string, opts ...parser.Option) ([]*tfs.TypeDefinition, error) {
	return parser.New("", strings.NewReader(text), opts...).All()
}
