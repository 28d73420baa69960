// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/golangee/tdl/token"
)

// NewUnexpectedTokenError creates the error for a token the grammar did not expect.
// It lists the alternatives which were expected instead, if any.
func NewUnexpectedTokenError(stmt *token.Statement, tok token.Token, expected ...string) error {
	msg := fmt.Sprintf("unexpected %q", tok.Value)

	if len(expected) > 0 {
		// Join the last two elements with an "or" to have a nice looking string.
		if len(expected) >= 2 {
			joined := fmt.Sprintf("%s or %s", expected[len(expected)-2], expected[len(expected)-1])
			expected = append(append([]string{}, expected[:len(expected)-2]...), joined)
		}

		msg += ", expected " + strings.Join(expected, ", ")
	}

	return token.Syntax(tok.Position, msg).SetStatementLine(stmt.Line)
}

// wrapError turns errors of the participle grammar into positional syntax errors.
func wrapError(stmt *token.Statement, err error) error {
	var posErr *token.PosError
	if errors.As(err, &posErr) {
		if posErr.StatementLine == 0 {
			posErr.SetStatementLine(stmt.Line)
		}

		return posErr
	}

	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		begin := token.WrapPos(unexpected.Unexpected.Pos)
		end := begin
		end.Col += utf8.RuneCountInString(unexpected.Unexpected.Value)
		end.Offset += len(unexpected.Unexpected.Value)

		tok := token.Token{Position: token.Position{BeginPos: begin, EndPos: end}, Value: unexpected.Unexpected.Value}
		if unexpected.Unexpected.EOF() {
			tok.Value = "end of statement"
		}

		var expected []string
		if unexpected.Expect != "" {
			expected = append(expected, unexpected.Expect)
		}

		return NewUnexpectedTokenError(stmt, tok, expected...)
	}

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := token.WrapPos(perr.Position())

		return token.Syntax(token.NewNode(pos, pos), perr.Message()).SetStatementLine(stmt.Line)
	}

	return token.Syntax(stmt.Range, err.Error()).SetStatementLine(stmt.Line)
}
