package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oko/internal/configloader"
	"github.com/yaklabco/oko/internal/logging"
	"github.com/yaklabco/oko/pkg/config"
	"github.com/yaklabco/oko/pkg/fsutil"
)

// configDirPermissions is the mode used when creating a config directory.
const configDirPermissions = 0o755

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default oko configuration file",
		Long: `Write a configuration file holding the default colors and log level.
Without --output the file is written to the user configuration directory
($XDG_CONFIG_HOME/oko/config.yaml, or ~/.config/oko/config.yaml).`,
		Example: `  oko init                      Write the user configuration
  oko init --full               Document every option in the file
  oko init --output .oko.yml    Write a project configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Document every option in the generated file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: user config file)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	outputPath := flags.output
	if outputPath == "" {
		var err error
		outputPath, err = configloader.UserConfigPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.FileExists(absPath) {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("%w: generate template: %w", ErrInternal, err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrWriteOutput, err)
	}
	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize colors and log level by editing the file")

	return nil
}
