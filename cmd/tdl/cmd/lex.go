// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/golangee/tdl/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file...]",
	Short: "Prints one statement per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		return eachInput(inputs(cfg, args), func(name string, r io.Reader) error {
			lexer := token.NewLexer(name, r)
			for {
				stmt, err := lexer.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}

				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%d\t%s\t%s\n", stmt.Line, stmt.Kind, stmt)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
