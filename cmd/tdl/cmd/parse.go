// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"

	"github.com/golangee/tdl/encoder"
	"github.com/spf13/cobra"
)

var format string

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Writes the type definitions in another format",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		if format != "" {
			cfg.Output.Format = format
		}

		f, err := cfg.Format()
		if err != nil {
			return err
		}

		return eachInput(inputs(cfg, args), func(name string, r io.Reader) error {
			enc, err := encoder.New(f, name, r, cmd.OutOrStdout(), cfg.ParserOptions(logger)...)
			if err != nil {
				return err
			}

			return enc.Encode()
		})
	},
}

func init() {
	parseCmd.Flags().StringVarP(&format, "format", "f", "", "output format: tdl, xml or yaml (default from config)")
	rootCmd.AddCommand(parseCmd)
}
