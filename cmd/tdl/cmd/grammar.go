// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/golangee/tdl/ast"
	"github.com/spf13/cobra"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Prints the EBNF of type definition statements",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ast.Grammar())
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)
}
