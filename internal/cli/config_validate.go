package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/config"
)

// newConfigValidateCmd creates the config validate command for validating configuration.
func newConfigValidateCmd(root *rootOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Loads the user configuration and the project configuration over the
defaults and checks them for syntax and semantic correctness.

This includes:
- Schema version compatibility
- Comparator specs (identity, deep, field:<path>)
- Search function names (contains, fuzzy, prefix)
- Selection limits, panel height and buffer
- Logging level and format`,
		Example: `  # Validate current configuration
  dropdown config validate

  # Validate a specific file and show the effective settings
  dropdown --config ./picker.yaml config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("✅ Configuration is valid\n")

			if verbose {
				printVerboseDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// printVerboseDetails prints the effective settings that shape the dropdown.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	s := cfg.Select
	cmd.Printf("\nConfiguration details:\n")
	cmd.Printf("  Version: %s\n", cfg.Version)
	cmd.Printf("  Bind label: %s\n", s.BindLabel)
	if s.BindValue != "" {
		cmd.Printf("  Bind value: %s\n", s.BindValue)
	}
	if s.GroupBy != "" {
		cmd.Printf("  Group by: %s\n", s.GroupBy)
	}
	mode := "single"
	if s.Multiple {
		mode = "multiple"
		if s.MaxSelectedItems > 0 {
			mode = fmt.Sprintf("multiple (max %d)", s.MaxSelectedItems)
		}
	}
	cmd.Printf("  Selection: %s\n", mode)
	search := s.Search
	if search == "" {
		search = "contains"
	}
	cmd.Printf("  Search: %s\n", search)
	cmd.Printf("  Virtual scroll: %t (buffer %d, height %d)\n",
		cfg.Panel.VirtualScroll, cfg.Panel.Buffer, cfg.Panel.Height)
	cmd.Printf("  Log level: %s\n", cfg.Logging.Level)
}
