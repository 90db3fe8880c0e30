package scroll

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/dropdown/internal/logging"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Errors returned when a ticket can't be redeemed.
var (
	// ErrStaleTicket indicates the items changed after the ticket was issued.
	ErrStaleTicket = constError("stale panel ticket")

	// ErrWrongPhase indicates a ticket was redeemed with the other phase's call.
	ErrWrongPhase = constError("ticket redeemed in wrong phase")
)

// DefaultBuffer is the number of extra options rendered on each side of the viewport.
const DefaultBuffer = 4

// scrollToEndSlack absorbs rounding when comparing the viewport bottom to the list end.
const scrollToEndSlack = 1

// Phase is the deferred step a Ticket stands for.
type Phase int

const (
	// PhaseMeasure asks the renderer to draw the first option alone and report
	// its height.
	PhaseMeasure Phase = iota

	// PhaseLayout asks the renderer to report the viewport height once the new
	// options are drawn.
	PhaseLayout
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	if p == PhaseMeasure {
		return "measure"
	}
	return "layout"
}

// Ticket is a deferred continuation handed out by ItemsChanged.
type Ticket struct {
	Generation uint64
	Phase      Phase
}

// PanelOptions configures a Panel.
type PanelOptions struct {
	// Virtual renders only the visible range; otherwise every option is rendered.
	Virtual bool

	// Buffer is the number of extra options on each side of the viewport.
	Buffer int

	// OnScrollToEnd is called once per items change when the viewport reaches
	// the end of the list.
	OnScrollToEnd func()
}

// Panel tracks the scroll state of one dropdown panel.
type Panel struct {
	opts   PanelOptions
	calc   *Calculator
	logger zerolog.Logger

	generation     uint64
	itemCount      int
	lastScroll     float64
	current        Range
	scrollEndFired bool
}

// NewPanel creates an unmeasured panel. The logger is taken from ctx.
func NewPanel(ctx context.Context, opts PanelOptions) *Panel {
	if opts.Buffer < 0 {
		opts.Buffer = 0
	}
	return &Panel{
		opts:   opts,
		calc:   &Calculator{},
		logger: logging.ComponentLogger(*logging.FromContext(ctx), "scroll"),
	}
}

// Dimensions returns the measured dimensions.
func (p *Panel) Dimensions() Dimensions {
	return p.calc.Dimensions()
}

// Range returns the range from the last layout or scroll.
func (p *Panel) Range() Range {
	return p.current
}

// LastScroll returns the last reported scroll offset.
func (p *Panel) LastScroll() float64 {
	return p.lastScroll
}

// Generation returns the number of items changes seen so far.
func (p *Panel) Generation() uint64 {
	return p.generation
}

// ItemsChanged records a new filtered option count and returns the ticket the
// renderer redeems after its next draw. Outstanding tickets become stale.
//
// A virtual panel that has never measured a non-empty list asks for a measure
// pass; everything else goes straight to layout.
func (p *Panel) ItemsChanged(count int) Ticket {
	p.generation++
	p.itemCount = max(count, 0)
	p.scrollEndFired = false

	phase := PhaseLayout
	if p.opts.Virtual && !p.calc.Dimensions().Measured() && p.itemCount > 0 {
		phase = PhaseMeasure
		p.current = Range{Start: 0, End: 1}
	}

	p.logger.Debug().
		Uint64("generation", p.generation).
		Int("items", p.itemCount).
		Str("phase", phase.String()).
		Msg("panel items changed")
	return Ticket{Generation: p.generation, Phase: phase}
}

// Measured redeems a measure ticket with the height of the option drawn alone
// and the viewport height, and lays the panel out.
func (p *Panel) Measured(t Ticket, itemHeight, panelHeight float64) (Range, error) {
	if err := p.redeem(t, PhaseMeasure); err != nil {
		return Range{}, err
	}
	p.calc.SetDimensions(itemHeight, panelHeight)
	return p.layout(), nil
}

// Settle redeems a layout ticket with the current viewport height and lays
// the panel out. A non-zero itemHeight replaces the measured one.
func (p *Panel) Settle(t Ticket, itemHeight, panelHeight float64) (Range, error) {
	if err := p.redeem(t, PhaseLayout); err != nil {
		return Range{}, err
	}
	if itemHeight <= 0 {
		itemHeight = p.calc.Dimensions().ItemHeight
	}
	p.calc.SetDimensions(itemHeight, panelHeight)
	return p.layout(), nil
}

func (p *Panel) redeem(t Ticket, phase Phase) error {
	if t.Generation != p.generation {
		p.logger.Debug().
			Uint64("ticket", t.Generation).
			Uint64("generation", p.generation).
			Msg("dropping stale panel ticket")
		return fmt.Errorf("%w: generation %d, current %d", ErrStaleTicket, t.Generation, p.generation)
	}
	if t.Phase != phase {
		return fmt.Errorf("%w: %s ticket", ErrWrongPhase, t.Phase)
	}
	return nil
}

func (p *Panel) layout() Range {
	if !p.opts.Virtual {
		p.current = Range{
			End:          p.itemCount,
			ScrollHeight: float64(p.itemCount) * p.calc.Dimensions().ItemHeight,
		}
		return p.current
	}

	scrollHeight := float64(p.itemCount) * p.calc.Dimensions().ItemHeight
	maxScroll := max(scrollHeight-p.calc.Dimensions().PanelHeight, 0)
	p.lastScroll = min(p.lastScroll, maxScroll)

	p.current = p.calc.CalculateItems(p.lastScroll, p.itemCount, p.opts.Buffer)
	return p.current
}

// Scrolled records a new scroll offset from the renderer and returns the range
// to draw. It fires OnScrollToEnd when the viewport reaches the end of the list.
func (p *Panel) Scrolled(pos float64) Range {
	p.lastScroll = max(pos, 0)
	if p.opts.Virtual {
		p.current = p.calc.CalculateItems(p.lastScroll, p.itemCount, p.opts.Buffer)
	}
	p.checkScrollToEnd()
	return p.current
}

func (p *Panel) checkScrollToEnd() {
	dims := p.calc.Dimensions()
	if p.scrollEndFired || p.lastScroll == 0 || !dims.Measured() {
		return
	}

	listHeight := float64(p.itemCount) * dims.ItemHeight
	if p.lastScroll+dims.PanelHeight < listHeight-scrollToEndSlack {
		return
	}

	p.scrollEndFired = true
	p.logger.Debug().Float64("scroll", p.lastScroll).Msg("scrolled to end")
	if p.opts.OnScrollToEnd != nil {
		p.opts.OnScrollToEnd()
	}
}

// ScrollTo returns the offset that brings the option at index into view, or
// false when it is visible already, out of range, or the panel is unmeasured.
// The renderer applies the offset and reports it back through Scrolled.
func (p *Panel) ScrollTo(index int) (float64, bool) {
	h := p.calc.Dimensions().ItemHeight
	if index < 0 || index >= p.itemCount || h <= 0 {
		return 0, false
	}
	return p.calc.GetScrollTo(float64(index)*h, h, p.lastScroll)
}

// ScrollToEnd returns the offset of the end of the list, used after a tag is added.
func (p *Panel) ScrollToEnd() float64 {
	dims := p.calc.Dimensions()
	return max(float64(p.itemCount)*dims.ItemHeight-dims.PanelHeight, 0)
}
