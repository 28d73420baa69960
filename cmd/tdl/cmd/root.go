// SPDX-FileCopyrightText: © 2021 The tdl authors <https://github.com/golangee/tdl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the commands of the tdl tool.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golangee/tdl/config"
	"github.com/golangee/tdl/token"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tdl",
	Short: "tdl - reads TDL grammar files",
	Long: `tdl reads the type description language of HPSG grammars.

Files are given as arguments. Without arguments the grammar files of the
config file are read, or standard input if there are none.

Commands:
  tokens   - prints the tokens of the input
  lex      - prints the statements of the input
  parse    - writes the type definitions as tdl, xml or yaml
  check    - reports all syntax errors
  grammar  - prints the grammar of type definitions`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and prints a failure to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $TDL_CONFIG or ./tdl.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	return config.LoadFromEnv()
}

// newLogger logs to stderr at the configured level, --verbose forces debug.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// inputs returns the files to read. "-" is standard input.
func inputs(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}

	if files := cfg.GrammarFiles(); len(files) > 0 {
		return files
	}

	return []string{"-"}
}

// eachInput calls fn with the name and content of every input.
func eachInput(files []string, fn func(name string, r io.Reader) error) error {
	for _, name := range files {
		if name == "-" {
			if err := fn("", os.Stdin); err != nil {
				return err
			}

			continue
		}

		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("cannot open input: %w", err)
		}

		err = fn(name, f)
		_ = f.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// printError writes err to stderr. Positional errors are explained with
// their source line if the file can be read.
func printError(err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printError(e)
		}

		return
	}

	var perr *token.PosError
	if errors.As(err, &perr) && len(perr.Details) > 0 && perr.Details[0].Node != nil && perr.Details[0].Node.Begin().File != "" {
		fmt.Fprintln(os.Stderr, perr.Explain())
		return
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
