// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tfs

import (
	"errors"
	"fmt"
)

var (
	// ErrPath is the cause of a PathError.
	ErrPath = errors.New("undefined path")
	// ErrConflict is returned when a term cannot be conjoined, e.g. a literal with an AVM.
	ErrConflict = errors.New("conflicting terms")
)

// PathError is returned by indexed access on a path which is not defined.
type PathError struct {
	// Path is the requested dotted path.
	Path string
	// Component is the path prefix which could not be resolved.
	Component string
	// Line is the one-based line of the type definition, if known.
	Line int
}

func (e *PathError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrPath, e.Path)
	if e.Component != "" && e.Component != e.Path {
		msg += fmt.Sprintf(" (at %q)", e.Component)
	}

	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}

	return msg
}

func (e *PathError) Unwrap() error {
	return ErrPath
}
