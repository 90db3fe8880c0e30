// Package selection records which options of a dropdown are selected.
//
// Model is a strategy chosen when the items list is built: Single keeps at most
// one option, Multiple keeps options in the order they were selected and
// understands group headers. Both variants write the Selected mirror on every
// option they touch.
package selection

import "github.com/rshade/dropdown/internal/option"

// Model is the selection strategy consumed by the items list.
type Model interface {
	// Select adds item to the selection. lineage resolves group parents;
	// groupAsModel stores a fully selected group as its header instead of its children.
	Select(item *option.Option, lineage option.Lineage, groupAsModel bool)

	// Unselect removes item; a no-op when it isn't selected.
	Unselect(item *option.Option, lineage option.Lineage)

	// Clear empties the selection, keeping disabled options when keepDisabled is set.
	Clear(keepDisabled bool)

	// Value returns the selected options in selection order.
	Value() []*option.Option

	// Contains reports whether an option with a value equal to value is selected.
	Contains(value any) bool

	// AtCapacity reports whether no further option can be selected.
	AtCapacity() bool

	// Multiple reports whether the model keeps more than one option.
	Multiple() bool
}

// set is the ordered option list shared by both variants.
type set struct {
	selected []*option.Option
	compare  option.Comparator
}

func newSet(compare option.Comparator) set {
	if compare == nil {
		compare = option.Equal
	}
	return set{compare: compare}
}

func (s *set) Value() []*option.Option {
	out := make([]*option.Option, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *set) Contains(value any) bool {
	for _, o := range s.selected {
		if s.compare(o.Value, value) {
			return true
		}
	}
	return false
}

func (s *set) has(item *option.Option) bool {
	return option.IndexOf(s.selected, item) >= 0
}

func (s *set) remove(item *option.Option) {
	s.keep(func(o *option.Option) bool { return o != item })
}

func (s *set) keep(pred func(o *option.Option) bool) {
	kept := make([]*option.Option, 0, len(s.selected))
	for _, o := range s.selected {
		if pred(o) {
			kept = append(kept, o)
		}
	}
	s.selected = kept
}

func (s *set) clear(keepDisabled bool) {
	s.keep(func(o *option.Option) bool {
		if keepDisabled && o.Disabled {
			return true
		}
		o.Selected = false
		if o.IsGroup() {
			setChildrenSelected(o.Children, false)
		}
		return false
	})
}

// setChildrenSelected writes the mirror of every enabled child.
func setChildrenSelected(children []*option.Option, selected bool) {
	for _, c := range children {
		if c.Disabled {
			continue
		}
		c.Selected = selected
	}
}

func parentOf(item *option.Option, lineage option.Lineage) *option.Option {
	if lineage == nil || !item.HasParent() {
		return nil
	}
	return lineage.Parent(item)
}
