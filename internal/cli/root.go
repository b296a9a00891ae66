// Package cli provides the Cobra command structure for oko.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oko/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	color      string
}

const rootLongDescription = `oko searches a file or standard input for a pattern and prints
every matching line with the matches highlighted.

The pattern is matched literally unless --regex is given. Running oko
with a pattern and no command is the same as "oko search". A pattern that
names a command (count, search, init, version, help) needs the explicit
form, as in "oko search count".`

const rootExample = `  oko hello -i notes.txt              Print lines of notes.txt containing "hello"
  cat notes.txt | oko -c -n hello     Ignore case and show line numbers
  oko search -r '\bfoo\w*' -f json    Regular expression, JSON output
  oko count you -i notes.txt          Count occurrences of "you"`

// NewRootCommand creates the root oko command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	flags := &searchFlags{}

	rootCmd := &cobra.Command{
		Use:     "oko [flags] PATTERN",
		Short:   "Search files or standard input for a pattern",
		Long:    rootLongDescription,
		Example: rootExample,
		Version: info.Version,
		Args:    patternArg,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("log-level") {
				logging.SetLevel(globals.logLevel)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], operationSearch, flags, globals)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&globals.logLevel, "log-level", "l", logging.DefaultLevel,
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	addSearchFlags(rootCmd, flags)

	rootCmd.AddCommand(newSearchCommand(globals))
	rootCmd.AddCommand(newCountCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// patternArg requires exactly one PATTERN argument.
func patternArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one PATTERN argument, got %d", ErrUsage, len(args))
	}
	return nil
}
