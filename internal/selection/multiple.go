package selection

import "github.com/rshade/dropdown/internal/option"

// Multiple keeps any number of options, up to max when max > 0, in selection order.
type Multiple struct {
	set
	max int
}

var _ Model = (*Multiple)(nil)

// NewMultiple creates a multi-choice model. max <= 0 means unlimited; a nil
// compare uses option.Equal.
func NewMultiple(maxSelected int, compare option.Comparator) *Multiple {
	if maxSelected < 0 {
		maxSelected = 0
	}
	return &Multiple{set: newSet(compare), max: maxSelected}
}

// Select adds item unless the model is full or an equal value is already selected.
//
// Selecting a header selects its enabled children. With groupAsModel the header
// itself is stored (when every child is enabled or already selected), otherwise
// the enabled children are appended until the model is full. Selecting the last
// unselected child of a group marks its header selected.
func (m *Multiple) Select(item *option.Option, lineage option.Lineage, groupAsModel bool) {
	if item == nil || m.AtCapacity() {
		return
	}
	if m.has(item) {
		item.Selected = true
		return
	}
	if !item.IsGroup() && m.Contains(item.Value) {
		return
	}

	if parent := parentOf(item, lineage); parent != nil {
		item.Selected = true
		m.selected = append(m.selected, item)
		parent.Selected = allSelected(parent.Children)
		return
	}

	if !item.IsGroup() {
		item.Selected = true
		m.selected = append(m.selected, item)
		return
	}

	if groupAsModel && activeChildren(item) {
		setChildrenSelected(item.Children, true)
		m.removeChildren(item)
		item.Selected = true
		m.selected = append(m.selected, item)
		return
	}
	for _, c := range item.Children {
		if c.Disabled || m.has(c) {
			continue
		}
		if m.AtCapacity() {
			break
		}
		c.Selected = true
		m.selected = append(m.selected, c)
	}
	item.Selected = allSelected(item.Children)
}

// Unselect removes item. Removing a child of a group stored as its header puts
// the remaining children in the header's place; removing a header removes its
// enabled children. Disabled children keep their selection.
func (m *Multiple) Unselect(item *option.Option, lineage option.Lineage) {
	if item == nil {
		return
	}

	parent := parentOf(item, lineage)
	switch {
	case parent != nil && parent.Selected:
		m.expand(parent, func(c *option.Option) bool { return c != item && c.Selected })
		parent.Selected = false
	case item.IsGroup():
		setChildrenSelected(item.Children, false)
		m.keep(func(o *option.Option) bool {
			return o.Disabled || option.IndexOf(item.Children, o) < 0
		})
		m.expand(item, func(c *option.Option) bool { return c.Selected })
	}

	m.remove(item)
	item.Selected = false
}

// Clear empties the selection, keeping disabled options when keepDisabled is set.
func (m *Multiple) Clear(keepDisabled bool) {
	m.clear(keepDisabled)
}

// AtCapacity reports whether max options are selected.
func (m *Multiple) AtCapacity() bool {
	return m.max > 0 && len(m.selected) >= m.max
}

// Multiple reports true.
func (m *Multiple) Multiple() bool {
	return true
}

// Max returns the configured limit, 0 when unlimited.
func (m *Multiple) Max() int {
	return m.max
}

// expand replaces a stored header with its children matching keep, in place.
func (m *Multiple) expand(header *option.Option, keep func(c *option.Option) bool) {
	at := option.IndexOf(m.selected, header)
	if at < 0 {
		return
	}
	out := make([]*option.Option, 0, len(m.selected)+len(header.Children))
	out = append(out, m.selected[:at]...)
	for _, c := range header.Children {
		if keep(c) && !m.has(c) {
			out = append(out, c)
		}
	}
	m.selected = append(out, m.selected[at+1:]...)
}

func (m *Multiple) removeChildren(header *option.Option) {
	m.keep(func(o *option.Option) bool {
		return option.IndexOf(header.Children, o) < 0
	})
}

func allSelected(children []*option.Option) bool {
	for _, c := range children {
		if !c.Selected {
			return false
		}
	}
	return len(children) > 0
}

func activeChildren(header *option.Option) bool {
	for _, c := range header.Children {
		if c.Disabled && !c.Selected {
			return false
		}
	}
	return true
}
