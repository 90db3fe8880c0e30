package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/scroll"
)

const tabPadding = 2

type rangeOptions struct {
	items       int
	itemHeight  float64
	panelHeight float64
	scrollPos   float64
	buffer      int
	scrollTo    int
	output      string
}

// rangeResult is the structured range output.
type rangeResult struct {
	Start        int      `json:"start"                yaml:"start"`
	End          int      `json:"end"                  yaml:"end"`
	TopPadding   float64  `json:"top_padding"          yaml:"top_padding"`
	ScrollHeight float64  `json:"scroll_height"        yaml:"scroll_height"`
	ScrollTo     *float64 `json:"scroll_to,omitempty"  yaml:"scroll_to,omitempty"`
}

// newRangeCmd creates the range command that evaluates the virtual scroll calculator.
func newRangeCmd(root *rootOptions) *cobra.Command {
	opts := rangeOptions{scrollTo: -1}

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Compute the rows a virtual scroll panel renders",
		Long: `Evaluates the virtual scroll calculator for a list of --items options of
--item-height each in a panel of --panel-height, scrolled to --scroll, and
prints the rendered index range with its padding. With --scroll-to it also
prints the offset that brings that option into view.

Panel height and buffer default to the panel section of the configuration.`,
		Example: `  # Rows rendered for 10,000 one-line options scrolled to 520
  dropdown range --items 10000 --scroll 520

  # Offset that reveals option 75 in a 40px panel of 10px rows
  dropdown range --items 100 --item-height 10 --panel-height 40 --scroll-to 75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRange(cmd, root, opts)
		},
	}

	cmd.Flags().IntVar(&opts.items, "items", 0, "number of options in the list")
	cmd.Flags().Float64Var(&opts.itemHeight, "item-height", 1, "height of one option")
	cmd.Flags().Float64Var(&opts.panelHeight, "panel-height", 0, "viewport height (default panel.height)")
	cmd.Flags().Float64Var(&opts.scrollPos, "scroll", 0, "current scroll offset")
	cmd.Flags().IntVar(&opts.buffer, "buffer", 0, "options rendered beyond each viewport edge (default panel.buffer)")
	cmd.Flags().IntVar(&opts.scrollTo, "scroll-to", -1, "index of an option to bring into view")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatText, "output format: text, yaml or json")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

func runRange(cmd *cobra.Command, root *rootOptions, opts rangeOptions) error {
	cfg, err := root.config()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("panel-height") {
		opts.panelHeight = float64(cfg.Panel.Height)
	}
	if !cmd.Flags().Changed("buffer") {
		opts.buffer = cfg.Panel.Buffer
	}
	if err := opts.validate(); err != nil {
		return err
	}

	calc := scroll.NewCalculator(opts.itemHeight, opts.panelHeight)
	r := calc.CalculateItems(opts.scrollPos, opts.items, opts.buffer)
	result := rangeResult{
		Start:        r.Start,
		End:          r.End,
		TopPadding:   r.TopPadding,
		ScrollHeight: r.ScrollHeight,
	}

	inView := false
	if opts.scrollTo >= 0 {
		offset, needed := calc.GetScrollTo(float64(opts.scrollTo)*opts.itemHeight, opts.itemHeight, opts.scrollPos)
		if !needed {
			offset = opts.scrollPos
			inView = true
		}
		result.ScrollTo = &offset
	}

	logger.Debug().
		Int("items", opts.items).
		Int("start", r.Start).
		Int("end", r.End).
		Msg("range calculated")

	if opts.output != formatText {
		return writeStructured(cmd.OutOrStdout(), result, opts.output)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	printer.Fprintf(w, "Start\t%d\n", result.Start)
	printer.Fprintf(w, "End\t%d\n", result.End)
	printer.Fprintf(w, "Rendered\t%d\n", r.Len())
	printer.Fprintf(w, "Top padding\t%.0f\n", result.TopPadding)
	printer.Fprintf(w, "Scroll height\t%.0f\n", result.ScrollHeight)
	if result.ScrollTo != nil {
		if inView {
			printer.Fprintf(w, "Scroll to\tin view\n")
		} else {
			printer.Fprintf(w, "Scroll to\t%.0f\n", *result.ScrollTo)
		}
	}
	return w.Flush()
}

func (o rangeOptions) validate() error {
	switch {
	case o.items < 0:
		return fmt.Errorf("items must not be negative, got %d", o.items)
	case o.itemHeight <= 0:
		return errors.New("item-height must be positive")
	case o.panelHeight <= 0:
		return errors.New("panel-height must be positive")
	case o.buffer < 0:
		return fmt.Errorf("buffer must not be negative, got %d", o.buffer)
	case o.scrollTo >= o.items && o.scrollTo >= 0:
		return fmt.Errorf("scroll-to %d is outside the list of %d options", o.scrollTo, o.items)
	}
	return nil
}
