package selection

import "github.com/rshade/dropdown/internal/option"

// Single holds zero or one selected option. Selecting replaces the previous choice.
type Single struct {
	set
}

var _ Model = (*Single)(nil)

// NewSingle creates a single-choice model. A nil compare uses option.Equal.
func NewSingle(compare option.Comparator) *Single {
	return &Single{set: newSet(compare)}
}

// Select replaces any existing selection with item. Group headers are stored as
// themselves; a single choice can't hold a set of children.
func (s *Single) Select(item *option.Option, _ option.Lineage, _ bool) {
	if item == nil {
		return
	}
	for _, o := range s.selected {
		if o != item {
			o.Selected = false
		}
	}
	item.Selected = true
	s.selected = []*option.Option{item}
}

// Unselect clears item if it is the current choice.
func (s *Single) Unselect(item *option.Option, _ option.Lineage) {
	if item == nil {
		return
	}
	if s.has(item) {
		s.remove(item)
	}
	item.Selected = false
}

// Clear drops the choice unless it is disabled and keepDisabled is set.
func (s *Single) Clear(keepDisabled bool) {
	s.clear(keepDisabled)
}

// AtCapacity is always false: selecting replaces.
func (s *Single) AtCapacity() bool {
	return false
}

// Multiple reports false.
func (s *Single) Multiple() bool {
	return false
}
