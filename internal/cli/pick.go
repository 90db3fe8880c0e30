package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/config"
	"github.com/rshade/dropdown/internal/itemslist"
	listview "github.com/rshade/dropdown/internal/tui/list"
)

// ErrCancelled is returned when the user leaves the picker without accepting.
var ErrCancelled = errors.New("selection cancelled")

// errNotInteractive is returned when the picker has no terminal to draw on.
var errNotInteractive = errors.New("pick needs an interactive terminal on stderr")

type pickOptions struct {
	multiple bool
	addTag   bool
	virtual  bool
	output   string
	values   []string
}

// newPickCmd creates the pick command that runs the interactive picker.
func newPickCmd(root *rootOptions) *cobra.Command {
	var opts pickOptions

	cmd := &cobra.Command{
		Use:   "pick [files...]",
		Short: "Choose options interactively",
		Long: `Opens a searchable picker over the items in the given files (or stdin) and
prints the selected model value on stdout. The picker draws on stderr, so the
output can be piped or redirected.

Keys: type to search, up/down to move, enter to select, tab to finish a
multiple selection, backspace on an empty search to remove the last choice,
ctrl+x to clear, esc to cancel.`,
		Example: `  # Pick one fruit
  dropdown pick fruits.yaml

  # Pick up to three users, preselecting ids 4 and 7
  dropdown pick users.json --multiple --value 4 --value 7 -o json

  # Allow new entries
  dropdown pick tags.yaml --multiple --add-tag`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.multiple, "multiple", false, "allow several selections (overrides select.multiple)")
	cmd.Flags().BoolVar(&opts.addTag, "add-tag", false, "offer the search term as a new option (overrides select.add_tag)")
	cmd.Flags().BoolVar(&opts.virtual, "virtual", false, "render only the visible rows (overrides panel.virtual_scroll)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatYAML, "output format: yaml or json")
	cmd.Flags().StringArrayVar(&opts.values, "value", nil, "preselected model value (repeatable)")

	return cmd
}

func runPick(cmd *cobra.Command, root *rootOptions, opts pickOptions, args []string) error {
	cfg, err := root.config()
	if err != nil {
		return err
	}
	applyPickFlags(cmd, cfg, opts)

	if !root.interactive() {
		return errNotInteractive
	}

	ctx := cmd.Context()
	list, err := buildPickList(ctx, cmd, cfg, opts, args)
	if err != nil {
		return err
	}

	model := listview.NewPickerModel(ctx, list, pickerOptions(cfg))
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithInputTTY(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	if !model.Confirmed() {
		return ErrCancelled
	}

	logger.Info().Int("selected", len(list.SelectedItems())).Msg("selection confirmed")
	return writeStructured(cmd.OutOrStdout(), list.ModelValue(), opts.output)
}

// applyPickFlags copies explicitly set flags over the configuration.
func applyPickFlags(cmd *cobra.Command, cfg *config.Config, opts pickOptions) {
	if cmd.Flags().Changed("multiple") {
		cfg.Select.Multiple = opts.multiple
	}
	if cmd.Flags().Changed("add-tag") {
		cfg.Select.AddTag = opts.addTag
	}
	if cmd.Flags().Changed("virtual") {
		cfg.Panel.VirtualScroll = opts.virtual
	}
}

// buildPickList loads the items and writes the preselected values.
func buildPickList(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	opts pickOptions,
	args []string,
) (*itemslist.List, error) {
	if opts.output != formatYAML && opts.output != formatJSON {
		return nil, fmt.Errorf("unsupported output format %q (use %s or %s)", opts.output, formatYAML, formatJSON)
	}

	items, err := loadItems(ctx, cmd.InOrStdin(), args)
	if err != nil {
		return nil, err
	}

	list, err := cfg.Select.NewList(ctx)
	if err != nil {
		return nil, err
	}
	list.SetItems(items)

	if len(opts.values) > 0 {
		value, err := parseValues(opts.values, cfg.Select.Multiple)
		if err != nil {
			return nil, err
		}
		list.WriteValue(value)
	}
	return list, nil
}

// pickerOptions maps the configuration onto the picker.
func pickerOptions(cfg *config.Config) listview.Options {
	texts := cfg.Select.Texts
	return listview.Options{
		Height:           cfg.Panel.Height,
		MarkFirst:        cfg.Select.MarkFirst,
		ClearOnBackspace: cfg.Select.ClearOnBackspace,
		AddTag:           cfg.Select.AddTag,
		MinTermLength:    cfg.Select.MinTermLength,
		Texts: listview.Texts{
			NotFound:     texts.NotFound,
			TypeToSearch: texts.TypeToSearch,
			AddTag:       texts.AddTag,
			ClearAll:     texts.ClearAll,
		},
		Panel: cfg.Panel.PanelOptions(func() {
			logger.Debug().Msg("picker scrolled to the end of the options")
		}),
	}
}
