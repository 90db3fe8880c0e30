package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/config"
)

// newConfigShowCmd creates the config show command that prints the effective configuration.
func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # Show the merged configuration as YAML
  dropdown config show

  # As JSON
  dropdown config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if output == formatYAML {
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return writeStructured(cmd.OutOrStdout(), cfg, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatYAML, "output format: yaml or json")

	return cmd
}
