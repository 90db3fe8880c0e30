package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/cli/pagination"
	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/option"
)

type filterOptions struct {
	search    string
	output    string
	paginate  pagination.PaginationParams
	markFirst bool
}

// filterRow is one option of the structured filter output.
type filterRow struct {
	Label    string `json:"label"              yaml:"label"`
	Value    any    `json:"value"              yaml:"value"`
	Group    bool   `json:"group,omitempty"    yaml:"group,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Marked   bool   `json:"marked,omitempty"   yaml:"marked,omitempty"`
}

// filterResult is the structured filter output.
type filterResult struct {
	Term       string                    `json:"term"       yaml:"term"`
	Options    []filterRow               `json:"options"    yaml:"options"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// newFilterCmd creates the filter command that searches options without the picker.
func newFilterCmd(root *rootOptions) *cobra.Command {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "filter TERM [files...]",
		Short: "Print the options matching a search term",
		Long: `Runs the same search as the picker and prints the matching options in order.
Group headers are printed ahead of their matching children. An empty term lists
every option.`,
		Example: `  # Options containing "ap"
  dropdown filter ap fruits.yaml

  # Fuzzy search, second page of ten, as JSON
  dropdown filter --search fuzzy --page 2 --page-size 10 -o json brn users.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, root, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "match function: contains, fuzzy or prefix (overrides select.search)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatText, "output format: text, yaml or json")
	cmd.Flags().BoolVar(&opts.markFirst, "mark-first", false, "flag the option the picker would mark")
	opts.paginate.AddFlags(cmd)

	return cmd
}

func runFilter(cmd *cobra.Command, root *rootOptions, opts filterOptions, term string, paths []string) error {
	cfg, err := root.config()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("search") {
		cfg.Select.Search = opts.search
	}
	if err := opts.paginate.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	items, err := loadItems(ctx, cmd.InOrStdin(), paths)
	if err != nil {
		return err
	}

	list, err := cfg.Select.NewList(ctx)
	if err != nil {
		return err
	}
	list.SetItems(items)
	list.Filter(term, nil)
	if opts.markFirst {
		list.MarkSelectedOrDefault(true)
	}

	filtered := list.FilteredItems()
	rows := pagination.Apply(opts.paginate, filtered)
	meta := pagination.NewPaginationMeta(opts.paginate, len(filtered))

	logger.Debug().
		Str("term", term).
		Int("matches", len(filtered)).
		Int("shown", meta.Shown).
		Msg("filter complete")

	if opts.output == formatText {
		return writeFilterText(cmd.OutOrStdout(), list, rows, meta)
	}
	return writeStructured(cmd.OutOrStdout(), newFilterResult(term, list, rows, meta), opts.output)
}

func newFilterResult(term string, list *itemslist.List, rows []*option.Option, meta pagination.PaginationMeta) filterResult {
	out := filterResult{Term: term, Options: make([]filterRow, 0, len(rows)), Pagination: meta}
	marked := list.MarkedItem()
	for _, o := range rows {
		out.Options = append(out.Options, filterRow{
			Label:    o.Label,
			Value:    o.Value,
			Group:    o.IsGroup(),
			Disabled: o.Disabled,
			Marked:   o == marked,
		})
	}
	return out
}

func writeFilterText(w io.Writer, list *itemslist.List, rows []*option.Option, meta pagination.PaginationMeta) error {
	marked := list.MarkedItem()
	for _, o := range rows {
		var b strings.Builder
		if o == marked {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		if o.HasParent() {
			b.WriteString("  ")
		}
		b.WriteString(o.Label)
		if o.Disabled && !o.IsGroup() {
			b.WriteString(" (disabled)")
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}

	summary := printer.Sprintf("%d of %d options match", meta.TotalItems, len(list.Items()))
	if meta.Shown < meta.TotalItems {
		summary += printer.Sprintf(", showing %d from %d", meta.Shown, meta.Offset+1)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
