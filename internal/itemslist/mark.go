package itemslist

import "github.com/rshade/dropdown/internal/option"

// MarkedIndex returns the index of the marked option in the filtered sequence, or -1.
func (l *List) MarkedIndex() int {
	return l.markedIndex
}

// MarkedItem returns the marked option, or nil.
func (l *List) MarkedItem() *option.Option {
	if l.markedIndex < 0 || l.markedIndex >= len(l.filtered) {
		return nil
	}
	return l.filtered[l.markedIndex]
}

// NoItemsToSelect reports whether the filtered sequence is empty or fully disabled.
func (l *List) NoItemsToSelect() bool {
	for _, o := range l.filtered {
		if !o.Disabled {
			return false
		}
	}
	return true
}

// MarkItem marks item. Options outside the filtered sequence clear the mark;
// disabled options are never marked.
func (l *List) MarkItem(item *option.Option) {
	idx := option.IndexOf(l.filtered, item)
	if idx >= 0 && item.Disabled {
		return
	}
	l.setMark(idx)
}

// UnmarkItem clears the mark.
func (l *List) UnmarkItem() {
	l.setMark(-1)
}

// MarkNextItem moves the mark to the next enabled option. It does not wrap: at
// the last enabled option the mark stays put. With nothing marked it starts at
// the first enabled option.
func (l *List) MarkNextItem() {
	l.stepToItem(1)
}

// MarkPreviousItem moves the mark to the previous enabled option without
// wrapping. With nothing marked it starts at the last enabled option.
func (l *List) MarkPreviousItem() {
	l.stepToItem(-1)
}

func (l *List) stepToItem(step int) {
	if l.NoItemsToSelect() {
		return
	}

	i := l.markedIndex + step
	if l.markedIndex < 0 {
		i = 0
		if step < 0 {
			i = len(l.filtered) - 1
		}
	}

	for ; i >= 0 && i < len(l.filtered); i += step {
		if !l.filtered[i].Disabled {
			l.setMark(i)
			return
		}
	}
}

// MarkSelectedOrDefault marks the first selected option in the filtered
// sequence. Failing that it marks the first enabled option when markFirst is
// set, and clears the mark otherwise.
func (l *List) MarkSelectedOrDefault(markFirst bool) {
	idx := -1
	for i, o := range l.filtered {
		if o.Selected && !o.Disabled {
			idx = i
			break
		}
	}

	if idx < 0 && markFirst {
		idx = l.firstEnabled()
	}
	l.setMark(idx)
}

func (l *List) firstEnabled() int {
	for i, o := range l.filtered {
		if !o.Disabled {
			return i
		}
	}
	return -1
}

func (l *List) setMark(idx int) {
	if idx == l.markedIndex {
		return
	}
	l.markedIndex = idx
	l.emit(MarkChanged, l.MarkedItem())
}
