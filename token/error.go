// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrLexical is the cause of errors in the character level input, like unterminated
	// quotes, unterminated block comments or brackets left open at the end of the input.
	ErrLexical = errors.New("lexical error")
	// ErrSyntax is the cause of errors where a token stream matches no production.
	ErrSyntax = errors.New("syntax error")
)

type ErrDetail struct {
	Node    Node
	Message string
}

func NewErrDetail(node Node, msg string) ErrDetail {
	return ErrDetail{
		Node:    node,
		Message: msg,
	}
}

// PosError represents a very specific positional error with a lot of explaining noise. Use Explain.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
	// StatementLine is the one-based line where the offending statement starts.
	StatementLine int
}

// NewPosError creates a new PosError with the given root cause and optional details.
func NewPosError(node Node, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, ErrDetail{
		Node:    node,
		Message: msg,
	})
	tmp = append(tmp, details...)

	return &PosError{
		Details: tmp,
	}
}

// Lexical is a shortcut for a PosError caused by ErrLexical.
func Lexical(node Node, msg string) *PosError {
	return NewPosError(node, msg).SetCause(ErrLexical)
}

// Syntax is a shortcut for a PosError caused by ErrSyntax.
func Syntax(node Node, msg string) *PosError {
	return NewPosError(node, msg).SetCause(ErrSyntax)
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

// SetStatementLine records the line of the statement the error belongs to.
func (p *PosError) SetStatementLine(line int) *PosError {
	p.StatementLine = line
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

// Line returns the line of the offending statement, or the line of the first
// detail if no statement is known.
func (p *PosError) Line() int {
	if p.StatementLine > 0 {
		return p.StatementLine
	}

	if n := p.firstDetail().Node; n != nil {
		return n.Begin().Line
	}

	return 0
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	msg := p.firstDetail().Message
	if n := p.firstDetail().Node; n != nil {
		msg = n.Begin().String() + ": " + msg
	}

	if p.Cause == nil {
		return msg
	}

	return msg + ": " + p.Cause.Error()
}

// src tries to load the source code based on the given file name. If it fails, the empty string is returned.
func src(fname string) string {
	if fname == "" {
		return ""
	}

	buf, err := os.ReadFile(fname)
	if err != nil {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}

		buf, err = os.ReadFile(filepath.Join(wd, fname))
		if err != nil {
			return ""
		}
	}

	return string(buf)
}

// posLine returns the line from lines which fits to the given pos.
func posLine(lines []string, pos Pos) string {
	no := pos.Line - 1

	if no > len(lines) {
		no = len(lines) - 1
	}

	ltext := ""
	if no < len(lines) && no >= 0 {
		ltext = lines[no]
	}

	return ltext
}

// Explain returns a multi-line text suited to be printed into the console.
// The source lines are loaded from the file named in the error position.
func (p PosError) Explain() string {
	return p.explain(func(n Node) []string {
		return strings.Split(src(n.Begin().File), "\n")
	})
}

// ExplainSource is like Explain but takes the source text from source instead of the file system.
func (p PosError) ExplainSource(source string) string {
	lines := strings.Split(source, "\n")

	return p.explain(func(Node) []string {
		return lines
	})
}

func (p PosError) explain(docLines func(Node) []string) string {
	// grab the required indent for the line numbers
	indent := 0

	for _, detail := range p.Details {
		l := len(strconv.Itoa(detail.Node.Begin().Line))
		if l > indent {
			indent = l
		}
	}

	sb := &strings.Builder{}

	for i, detail := range p.Details {
		line := posLine(docLines(detail.Node), detail.Node.Begin())

		if i == 0 || (i > 0 && detail.Node.Begin().File != p.Details[i-1].Node.Begin().File) {
			sb.WriteString(detail.Node.Begin().String())
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"d |", detail.Node.Begin().Line))
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |", ""))

		begin, end := detail.Node.Begin(), detail.Node.End()
		sb.WriteString(strings.Repeat(" ", max(begin.Col-1, 0)))

		if end.Line != begin.Line || end.Col-begin.Col <= 1 {
			sb.WriteString("^~~~ ")
		} else {
			sb.WriteString(strings.Repeat("^", end.Col-begin.Col))
			sb.WriteRune(' ')
		}

		sb.WriteString(detail.Message)
		sb.WriteString("\n")

		if i < len(p.Details)-1 {
			sb.WriteString(strings.Repeat(" ", indent))
			sb.WriteString("...\n")
		}
	}

	if p.Hint != "" {
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s = hint: %s\n", "", p.Hint))
	}

	return sb.String()
}
