package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/oko/internal/configloader"
	"github.com/yaklabco/oko/internal/logging"
	"github.com/yaklabco/oko/internal/ui/pretty"
	"github.com/yaklabco/oko/pkg/config"
	"github.com/yaklabco/oko/pkg/fsutil"
	"github.com/yaklabco/oko/pkg/reporter"
	"github.com/yaklabco/oko/pkg/search"
	"github.com/yaklabco/oko/pkg/source"
)

// operation selects what runSearch reports.
type operation int

const (
	operationSearch operation = iota
	operationCount
)

func (o operation) String() string {
	if o == operationCount {
		return "count"
	}
	return "search"
}

type searchFlags struct {
	input      string
	output     string
	format     string
	lineNumber bool
	ignoreCase bool
	regex      bool
}

func addSearchFlags(cmd *cobra.Command, flags *searchFlags) {
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input file (default: standard input)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file, written uncolored (default: standard output)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(reporter.FormatPlain), "output format: plain, json")
	cmd.Flags().BoolVarP(&flags.lineNumber, "line-number", "n", false, "prefix each line with its line number")
	cmd.Flags().BoolVarP(&flags.ignoreCase, "ignore-case", "c", false, "match regardless of case")
	cmd.Flags().BoolVarP(&flags.regex, "regex", "r", false, "treat PATTERN as a regular expression")
}

func newSearchCommand(globals *globalFlags) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [flags] PATTERN",
		Short: "Print the lines matching PATTERN",
		Long: `Print every line of the input that matches PATTERN, with the
matched text highlighted. Lines are read from --input or standard input.`,
		Example: `  oko search needle -i haystack.txt
  oko search -c -n needle < haystack.txt
  oko search -r '^\d+$' -f json -o numbers.json`,
		Args: patternArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], operationSearch, flags, globals)
		},
	}

	addSearchFlags(cmd, flags)

	return cmd
}

func newCountCommand(globals *globalFlags) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "count [flags] PATTERN",
		Short: "Print the number of matches of PATTERN",
		Long: `Print how many times PATTERN occurs in the input. Every
occurrence counts, so a line matching twice adds two.`,
		Example: `  oko count you -i conversation.txt
  oko count -c -f json you < conversation.txt`,
		Args: patternArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], operationCount, flags, globals)
		},
	}

	addSearchFlags(cmd, flags)

	return cmd
}

// runSearch loads configuration, compiles the pattern, and reports either
// the matching lines or the match count. The pattern is compiled before the
// input is opened, so an invalid pattern never blocks on standard input.
func runSearch(cmd *cobra.Command, pattern string, op operation, flags *searchFlags, globals *globalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cfg, err := loadConfig(ctx, cmd, globals)
	if err != nil {
		return err
	}

	logging.SetLevel(cfg.LogLevel)
	logger := logging.FromContext(ctx)
	logger.Info("oko")

	mode := search.ModeLiteral
	if flags.regex {
		mode = search.ModeRegex
	}
	matcher, err := search.Compile(search.Pattern{
		Text:       pattern,
		IgnoreCase: flags.ignoreCase,
		Mode:       mode,
	})
	if err != nil {
		return err
	}

	logger.Debug("starting "+op.String(),
		logging.FieldPattern, pattern,
		logging.FieldMode, mode,
		logging.FieldIgnoreCase, flags.ignoreCase,
		logging.FieldInput, displayPath(flags.input),
		logging.FieldOutput, displayPath(flags.output),
		logging.FieldFormat, format,
	)

	input, err := openInput(ctx, cmd, flags.input, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := input.Close(); closeErr != nil {
			logger.Debug("close input", logging.FieldError, closeErr)
		}
	}()

	out, styles, err := outputTarget(cmd, flags.output, cfg)
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      format,
		LineNumbers: flags.lineNumber,
		Styles:      styles,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	lines := source.Lines(input)
	switch op {
	case operationCount:
		count, err := search.CountWith(matcher, lines)
		if err != nil {
			return err
		}
		logger.Debug("count finished", logging.FieldCount, count)
		if err := rep.ReportCount(ctx, count); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	default:
		results, err := search.SearchWith(matcher, lines)
		if err != nil {
			return err
		}
		logger.Debug("search finished",
			logging.FieldLines, len(results.Results),
			logging.FieldMatches, results.Total(),
		)
		if err := rep.ReportSearch(ctx, results); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	if buf, ok := out.(*fileOutput); ok {
		// Mode 0 keeps the permissions of a report being replaced.
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	logger.Info("exiting...")
	return nil
}

// loadConfig resolves configuration from files, environment, and the
// persistent flags. A default user config is stored on first run.
func loadConfig(ctx context.Context, cmd *cobra.Command, globals *globalFlags) (*config.Config, error) {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(globals.color)
	}
	if cmd.Flags().Changed("log-level") {
		cliCfg.LogLevel = globals.logLevel
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: globals.configPath,
		StoreDefault: true,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		var validationErr *configloader.ValidationError
		if errors.As(err, &validationErr) && validationErr.FilePath == "" {
			// Only flags and environment are left; report it as usage.
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if result.StoredDefault != "" {
		logger.Debug("stored default configuration", logging.FieldPath, result.StoredDefault)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldSources, result.LoadedFrom)
	}

	return result.Config, nil
}

// fileOutput collects a report destined for a file.
type fileOutput struct {
	bytes.Buffer
}

// openInput returns the command's standard input for "" and "-", otherwise
// the named file.
func openInput(ctx context.Context, cmd *cobra.Command, path string, logger *log.Logger) (io.ReadCloser, error) {
	if isFilePath(path) {
		return source.Open(ctx, path)
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && source.IsInteractive(f) {
		logger.Warn("reading from standard input; press Ctrl-D to finish")
	}
	return io.NopCloser(in), nil
}

// outputTarget returns where the reporter writes. File output is collected in
// memory and written atomically once the report is complete, so a failed run
// leaves any existing file untouched. File output is never colored.
func outputTarget(cmd *cobra.Command, path string, cfg *config.Config) (io.Writer, *pretty.Styles, error) {
	if isFilePath(path) {
		return &fileOutput{}, pretty.NewPlainStyles(), nil
	}

	out := cmd.OutOrStdout()
	content, match, err := cfg.Colors()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}
	enabled := pretty.IsColorEnabled(cfg.Color, out)
	return out, pretty.NewStyles(out, enabled, content, match), nil
}

// isFilePath reports whether path names a file rather than a standard stream.
func isFilePath(path string) bool {
	return path != "" && path != source.StdinPath
}

func displayPath(path string) string {
	if !isFilePath(path) {
		return "-"
	}
	return path
}
