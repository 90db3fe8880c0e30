package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/dropdown/internal/config"
	"github.com/rshade/dropdown/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions is the state shared by the root command and its subcommands.
type rootOptions struct {
	configPath string
	debug      bool

	// cfg is loaded before any subcommand runs; cfgErr keeps a load failure
	// for the commands that need the configuration.
	cfg    *config.Config
	cfgErr error

	// interactive reports whether a picker can be drawn.
	interactive func() bool
}

func newRootOptions() *rootOptions {
	return &rootOptions{
		interactive: func() bool {
			return isTerminal(os.Stderr)
		},
	}
}

// config returns the loaded configuration or the error that prevented loading it.
func (o *rootOptions) config() (*config.Config, error) {
	if o.cfgErr != nil {
		return nil, o.cfgErr
	}
	if o.cfg == nil {
		return config.New(), nil
	}
	return o.cfg, nil
}

// NewRootCmd creates the root Cobra command for the dropdown CLI.
// It loads configuration, wires up logging and adds the subcommands
// (pick, filter, range, config).
func NewRootCmd(ver string) *cobra.Command {
	return newRootCmd(ver, newRootOptions())
}

func newRootCmd(ver string, opts *rootOptions) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "dropdown",
		Short: "Searchable dropdown selection for the terminal",
		Long: `dropdown: pick, filter and page through option lists.

Items are read from YAML or JSON files (or stdin) and mapped, grouped, searched
and selected the same way a web select component does it.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.cfg, opts.cfgErr = loadConfig(cmd.Context(), opts.configPath)

			loggingCfg := config.New().Logging
			if opts.cfg != nil {
				loggingCfg = opts.cfg.Logging
			}
			result := setupLogging(cmd, loggingCfg, opts.debug)
			logResult = &result

			if opts.cfgErr != nil {
				logger.Debug().Err(opts.cfgErr).Msg("configuration failed to load")
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"configuration file (default: nearest "+config.ProjectFileName+", then $"+config.EnvConfig+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newPickCmd(opts),
		newFilterCmd(opts),
		newRangeCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

// loadConfig layers the user configuration and the project configuration over the defaults.
func loadConfig(ctx context.Context, flagValue string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	project := config.ResolveProjectFile(ctx, flagValue, wd)
	cfg, err := config.Load(ctx, config.UserConfigFile(), project)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Pick one option from a YAML list
  dropdown pick fruits.yaml

  # Pick several options from JSON on stdin and print the values as JSON
  cat users.json | dropdown pick --multiple -o json

  # Search options without the picker
  dropdown filter "ap" fruits.yaml --limit 5

  # Show which rows a virtual scroll panel renders
  dropdown range --items 10000 --scroll 520

  # Validate configuration
  dropdown config validate`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		newConfigInitCmd(opts), newConfigShowCmd(opts), newConfigValidateCmd(opts),
	)
	return cmd
}
