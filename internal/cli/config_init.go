package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/config"
)

// newConfigInitCmd creates the config init command that writes a project
// configuration file with default values.
func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a project configuration file with default values",
		Long: `Creates ` + config.ProjectFileName + ` with default values in the current
directory (or --dir). dropdown finds the file from any subdirectory.

An existing file is only replaced with --force, or after confirmation when
running in a terminal.`,
		Example: `  # Create configuration in the current directory
  dropdown config init

  # Create configuration, overwriting existing
  dropdown config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				dir = wd
			}
			return runConfigInit(cmd, root, filepath.Join(dir, config.ProjectFileName), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to create the file in (default: current directory)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, root *rootOptions, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if !root.interactive() {
				return errors.New("configuration file already exists, use --force to overwrite")
			}
			answer := Confirm(cmd.ErrOrStderr(), cmd.InOrStdin(),
				fmt.Sprintf("%s already exists. Overwrite it?", path))
			if !answer.Accepted {
				cmd.Printf("Configuration left unchanged\n")
				return nil
			}
		case !os.IsNotExist(err):
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	data, err := config.Marshal(config.New())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Debug().Str("path", path).Msg("configuration initialized")
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
