package scroll

import "math"

// Dimensions are the measured sizes the range computation works from.
type Dimensions struct {
	// ItemHeight is the uniform option height; 0 means not measured yet.
	ItemHeight float64

	// PanelHeight is the viewport height.
	PanelHeight float64

	// ItemsPerViewport is how many options fit the viewport, rounded up.
	ItemsPerViewport int
}

// Measured reports whether an item height is known.
func (d Dimensions) Measured() bool {
	return d.ItemHeight > 0
}

// Range is the renderable slice [Start, End) of the filtered options.
type Range struct {
	Start int
	End   int

	// TopPadding is the offset to translate the rendered slice by.
	TopPadding float64

	// ScrollHeight is the height of the whole list.
	ScrollHeight float64
}

// Len returns the number of options in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

type rangeInput struct {
	scrollPos float64
	itemCount int
	buffer    int
	dims      Dimensions
}

// Calculator converts scroll offsets into renderable ranges. The zero value is
// unmeasured and ready to use.
type Calculator struct {
	dims Dimensions

	last       rangeInput
	lastRange  Range
	calculated bool
}

// NewCalculator creates a calculator with known dimensions.
func NewCalculator(itemHeight, panelHeight float64) *Calculator {
	c := &Calculator{}
	c.SetDimensions(itemHeight, panelHeight)
	return c
}

// Dimensions returns the current dimensions.
func (c *Calculator) Dimensions() Dimensions {
	return c.dims
}

// SetDimensions overwrites the dimensions. An itemHeight of 0 marks the list as
// unmeasured; negative values are treated as 0.
func (c *Calculator) SetDimensions(itemHeight, panelHeight float64) {
	itemHeight = math.Max(itemHeight, 0)
	panelHeight = math.Max(panelHeight, 0)

	perViewport := 0
	if itemHeight > 0 {
		perViewport = int(math.Ceil(panelHeight / itemHeight))
	}

	c.dims = Dimensions{
		ItemHeight:       itemHeight,
		PanelHeight:      panelHeight,
		ItemsPerViewport: perViewport,
	}
}

// CalculateItems returns the options to render at scrollPos.
//
// The first visible option is floor(scrollPos/itemHeight); the range extends
// buffer options before it and buffer options past the last option that fits
// the viewport, clipped to [0, itemCount). A call with the same input as the
// previous one returns the previous result. Unmeasured dimensions yield an
// empty range.
func (c *Calculator) CalculateItems(scrollPos float64, itemCount, buffer int) Range {
	in := rangeInput{scrollPos: scrollPos, itemCount: itemCount, buffer: buffer, dims: c.dims}
	if c.calculated && in == c.last {
		return c.lastRange
	}

	r := computeRange(in)
	c.last, c.lastRange, c.calculated = in, r, true
	return r
}

func computeRange(in rangeInput) Range {
	h := in.dims.ItemHeight
	if h <= 0 || in.itemCount <= 0 {
		return Range{}
	}
	buffer := max(in.buffer, 0)

	// Clamped before the conversion so huge offsets cannot overflow int.
	first := int(math.Min(math.Floor(math.Max(in.scrollPos, 0)/h), float64(in.itemCount)))
	end := min(in.itemCount, first+in.dims.ItemsPerViewport+buffer)
	start := min(max(0, first-buffer), end)

	return Range{
		Start:        start,
		End:          end,
		TopPadding:   float64(start) * h,
		ScrollHeight: float64(in.itemCount) * h,
	}
}

// GetScrollTo returns the smallest scroll offset that brings the item spanning
// [itemTop, itemTop+itemHeight) fully into the viewport that currently starts
// at lastScroll. It reports false when the item is already fully visible.
//
// An item above the viewport is aligned to the top, one below it to the
// bottom. An item taller than the viewport is aligned to the top, and is
// considered in view once it is.
func (c *Calculator) GetScrollTo(itemTop, itemHeight, lastScroll float64) (float64, bool) {
	panel := c.dims.PanelHeight
	itemBottom := itemTop + itemHeight

	switch {
	case itemHeight >= panel && itemTop == lastScroll:
		return 0, false
	case itemTop < lastScroll:
		return itemTop, true
	case itemBottom > lastScroll+panel:
		if itemHeight >= panel {
			return itemTop, true
		}
		return itemBottom - panel, true
	default:
		return 0, false
	}
}
