package itemslist

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rshade/dropdown/internal/option"
)

// Filter narrows the filtered sequence to options matching term.
//
// An empty term, or one whose trimmed length is below MinTermLength, restores
// the full sequence. With a SearchFn every leaf value is handed to it with params;
// otherwise leaves whose folded label contains the folded term survive. Group
// headers are kept ahead of their surviving children. HideSelected drops selected
// leaves and children of selected groups.
func (l *List) Filter(term string, params any) {
	if term == "" || utf8.RuneCountInString(strings.TrimSpace(term)) < l.opts.MinTermLength {
		l.resetFilteredItems()
		l.emit(FilterChanged, nil)
		return
	}

	match := l.matcher(term, params)
	out := make([]*option.Option, 0, len(l.filtered))

	var lastHeader *option.Option
	for _, item := range l.items {
		if item.IsGroup() {
			continue
		}
		parent := l.Parent(item)
		if l.opts.HideSelected && (item.Selected || (parent != nil && parent.Selected)) {
			continue
		}
		if !match(item) {
			continue
		}
		if parent != nil && parent != lastHeader {
			out = append(out, parent)
			lastHeader = parent
		}
		out = append(out, item)
	}

	l.setFiltered(out)
	l.logger.Debug().Str("term", term).Int("matches", len(out)).Msg("filtered items")
	l.emit(FilterChanged, nil)
}

func (l *List) matcher(term string, params any) func(o *option.Option) bool {
	if l.opts.SearchFn != nil {
		search := l.opts.SearchFn
		return func(o *option.Option) bool { return search(term, o.Value, params) }
	}

	folded := option.Fold(term)
	return func(o *option.Option) bool {
		return strings.Contains(option.Fold(o.Label), folded)
	}
}

// ResetFilteredItems restores the full sequence, minus selected options when
// HideSelected is on.
func (l *List) ResetFilteredItems() {
	l.resetFilteredItems()
	l.emit(FilterChanged, nil)
}

func (l *List) resetFilteredItems() {
	if l.opts.HideSelected && len(l.model.Value()) > 0 {
		l.setFiltered(l.unselectedItems())
		return
	}
	l.setFiltered(append([]*option.Option(nil), l.items...))
}

func (l *List) unselectedItems() []*option.Option {
	out := make([]*option.Option, 0, len(l.items))
	for _, item := range l.items {
		if !item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// setFiltered installs out as the filtered sequence, renumbers it and keeps the
// marked option marked if it survived.
func (l *List) setFiltered(out []*option.Option) {
	marked := l.MarkedItem()

	l.filtered = out
	for i, o := range out {
		o.Index = i
	}

	l.markedIndex = option.IndexOf(out, marked)
}

// hideSelected removes a newly selected item, and whatever it makes redundant,
// from the filtered sequence.
func (l *List) hideSelected(item *option.Option) {
	out := make([]*option.Option, 0, len(l.filtered))
	parent := l.Parent(item)
	dropParent := parent != nil && parent.Selected

	for _, o := range l.filtered {
		switch {
		case o == item:
		case dropParent && o == parent:
		case item.IsGroup() && o.ParentID == item.HTMLID:
		default:
			out = append(out, o)
		}
	}
	l.setFiltered(out)
}

// showSelected puts an unselected item, its header or its children back into
// the filtered sequence in list order. Options outside the list are ignored.
func (l *List) showSelected(item *option.Option) {
	if _, ok := l.position[item]; !ok {
		return
	}

	out := append([]*option.Option(nil), l.filtered...)
	add := func(o *option.Option) {
		if option.IndexOf(out, o) < 0 {
			out = append(out, o)
		}
	}

	add(item)
	if parent := l.Parent(item); parent != nil {
		add(parent)
	} else if item.IsGroup() {
		for _, child := range item.Children {
			add(child)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return l.position[out[i]] < l.position[out[j]]
	})
	l.setFiltered(out)
}
