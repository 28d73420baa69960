// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package parser turns TDL statements into type definitions of the tfs model.
package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/golangee/tdl/ast"
	"github.com/golangee/tdl/tfs"
	"github.com/golangee/tdl/token"
	"github.com/golangee/tdl/util"
)

// Option configures a Parser.
type Option func(p *Parser)

// ContinueOnError makes syntax errors non-sticky. After a statement failed,
// the next call to Next continues with the following statement.
// Lexical errors always stop the parser.
func ContinueOnError() Option {
	return func(p *Parser) {
		p.continueOnError = true
	}
}

// WithLogger sets the logger for diagnostic output. Default is to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is a pull parser which returns one type definition per TYPEDEF
// statement in source order. Letter sets and wild cards are collected and
// can be looked up by name, comments become docstrings or are dropped.
type Parser struct {
	lexer           *token.Lexer
	logger          *slog.Logger
	continueOnError bool
	// err is sticky.
	err error
	// doc is the block comment seen directly before the current statement.
	doc        string
	letterSets util.AttributeList[*tfs.LetterSet]
}

// New creates a parser for the TDL source read from r.
func New(filename string, r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		lexer:      token.NewLexer(filename, r),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		letterSets: util.NewAttributeList[*tfs.LetterSet](),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.With(slog.String("component", "tdl.parser"), slog.String("file", filename))

	return p
}

// Next returns the next type definition. At the end of the input, Next returns io.EOF.
func (p *Parser) Next() (*tfs.TypeDefinition, error) {
	if p.err != nil {
		return nil, p.err
	}

	for {
		stmt, err := p.lexer.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.err = err
				return nil, err
			}

			return nil, p.fail(err)
		}

		switch stmt.Kind {
		case token.BlockComment:
			p.doc = stmt.Text
			continue
		case token.LineComment:
			p.doc = ""
			continue
		case token.LetterSet, token.WildCard:
			p.doc = ""

			ls, err := ParseLetterSet(stmt)
			if err != nil {
				return nil, p.fail(err)
			}

			if p.letterSets.Set(ls.Name, ls) {
				p.logger.Warn("letter set redefined", slog.String("name", ls.Name), slog.Int("line", ls.Line))
			}

			p.logger.Debug("letter set parsed", slog.String("name", ls.Name), slog.Int("line", ls.Line))

			continue
		}

		doc := p.doc
		p.doc = ""

		def, err := ParseStatement(stmt, doc)
		if err != nil {
			return nil, p.fail(err)
		}

		p.logger.Debug("type definition parsed",
			slog.String("identifier", def.Identifier),
			slog.Int("line", def.Line),
			slog.Int("coreferences", len(def.Coreferences)),
		)

		return def, nil
	}
}

func (p *Parser) fail(err error) error {
	p.doc = ""

	if p.continueOnError && errors.Is(err, token.ErrSyntax) {
		p.logger.Warn("skipping statement", slog.String("error", err.Error()))
		return err
	}

	p.err = err

	return err
}

// All returns all remaining type definitions. With ContinueOnError, the
// definitions which could be parsed are returned together with the joined
// syntax errors.
func (p *Parser) All() ([]*tfs.TypeDefinition, error) {
	var (
		defs []*tfs.TypeDefinition
		errs []error
	)

	for {
		def, err := p.Next()
		if errors.Is(err, io.EOF) {
			return defs, errors.Join(errs...)
		}

		if err != nil {
			errs = append(errs, err)
			if p.err != nil {
				return defs, errors.Join(errs...)
			}

			continue
		}

		defs = append(defs, def)
	}
}

// LetterSet returns the letter set or wild card with the given name, e.g. "!v".
// Only the statements read so far are known.
func (p *Parser) LetterSet(name string) (*tfs.LetterSet, bool) {
	return p.letterSets.Get(name)
}

// LetterSets returns all letter sets and wild cards read so far in source order.
func (p *Parser) LetterSets() []*tfs.LetterSet {
	res := make([]*tfs.LetterSet, 0, p.letterSets.Len())
	for _, a := range p.letterSets.All() {
		res = append(res, a.Value)
	}

	return res
}

// ParseLetterSet parses a LETTERSET or WILDCARD statement.
func ParseLetterSet(stmt *token.Statement) (*tfs.LetterSet, error) {
	node, err := ast.ParseLetterSet(stmt)
	if err != nil {
		return nil, wrapError(stmt, err)
	}

	var chars []rune

	for _, c := range node.Characters {
		chars = append(chars, unescape(c)...)
	}

	return &tfs.LetterSet{
		Name:       node.Name,
		Characters: string(chars),
		WildCard:   node.Kind == "wild-card",
		Line:       stmt.Line,
	}, nil
}

// unescape drops the backslash of escaped characters.
func unescape(s string) []rune {
	var res []rune

	escaped := false

	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}

		escaped = false

		res = append(res, r)
	}

	return res
}
