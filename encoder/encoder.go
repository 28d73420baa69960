// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package encoder writes parsed TDL type definitions in other notations.
package encoder

import (
	"fmt"
	"io"
	"strings"

	"github.com/golangee/tdl/parser"
)

// Format names an output notation.
type Format string

const (
	TDL  Format = "tdl"
	XML  Format = "xml"
	YAML Format = "yaml"
)

// Formats lists all supported formats.
var Formats = []Format{TDL, XML, YAML}

// ParseFormat returns the Format with the given case-insensitive name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown format %q, expected one of %v", name, Formats)
}

// Encoder reads TDL from its reader and writes it to its writer.
type Encoder interface {
	Encode() error
}

// New creates the Encoder for the given format.
func New(format Format, filename string, r io.Reader, w io.Writer, opts ...parser.Option) (Encoder, error) {
	switch format {
	case TDL:
		return NewTDLEncoder(filename, r, w, opts...), nil
	case XML:
		return NewXMLEncoder(filename, r, w, opts...), nil
	case YAML:
		return NewYAMLEncoder(filename, r, w, opts...), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
