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

var tokensCmd = &cobra.Command{
	Use:   "tokens [file...]",
	Short: "Prints one token per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		return eachInput(inputs(cfg, args), func(name string, r io.Reader) error {
			tokenizer := token.NewTokenizer(name, r)
			for {
				tok, err := tokenizer.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}

				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Begin(), tok.Kind, tok.Value)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
