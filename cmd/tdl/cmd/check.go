// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/golangee/tdl/parser"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Parses all inputs and reports every syntax error",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		var errs []error

		err = eachInput(inputs(cfg, args), func(name string, r io.Reader) error {
			p := parser.New(name, r, parser.WithLogger(logger), parser.ContinueOnError())

			defs, err := p.All()
			if err != nil {
				errs = append(errs, err)
			}

			logger.Info("checked", "file", name, "definitions", len(defs), "letter-sets", len(p.LetterSets()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d definitions, %d letter sets\n", name, len(defs), len(p.LetterSets()))

			return nil
		})
		if err != nil {
			return err
		}

		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
