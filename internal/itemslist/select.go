package itemslist

import (
	"reflect"
	"strings"

	"github.com/rshade/dropdown/internal/option"
)

// Select selects item. Already selected items and a full model are ignored; a
// single-choice list drops the previous choice first.
func (l *List) Select(item *option.Option) {
	if !l.selectItem(item) {
		return
	}
	l.emit(SelectionChanged, item)
}

func (l *List) selectItem(item *option.Option) bool {
	if item == nil || item.Selected || l.model.AtCapacity() {
		return false
	}
	if !l.model.Multiple() {
		l.clearSelected(false)
	}

	before := len(l.model.Value())
	l.model.Select(item, l, l.opts.SelectableGroupAsModel)
	if !item.Selected {
		// A header the model filled only up to its maximum.
		if len(l.model.Value()) == before {
			return false
		}
		if l.opts.HideSelected {
			for _, c := range item.Children {
				if c.Selected {
					l.hideSelected(c)
				}
			}
		}
		return true
	}

	if l.opts.HideSelected {
		l.hideSelected(item)
	}
	return true
}

// Unselect removes item from the selection; a no-op when it isn't selected.
func (l *List) Unselect(item *option.Option) {
	if item == nil || !item.Selected {
		return
	}

	l.model.Unselect(item, l)
	if l.opts.HideSelected && l.model.Multiple() {
		l.showSelected(item)
	}
	l.emit(SelectionChanged, item)
}

// ToggleItem flips the selection of an enabled item. In a single-choice list a
// selected item stays selected.
func (l *List) ToggleItem(item *option.Option) {
	if item == nil || item.Disabled {
		return
	}
	if l.model.Multiple() && item.Selected {
		l.Unselect(item)
		return
	}
	l.Select(item)
}

// SelectTag creates an option for a free-text tag and selects it. With
// addToList the option joins the list; otherwise it stays transient.
func (l *List) SelectTag(raw any, addToList bool) *option.Option {
	var tag *option.Option
	if addToList {
		tag = l.AddItem(raw)
	} else {
		tag = l.MapItem(raw, -1)
	}
	l.Select(tag)
	return tag
}

// NewTag builds the raw item of a free-text tag, term stored under the bind label path.
func (l *List) NewTag(term string) map[string]any {
	return nestedMap(l.opts.BindLabel, term)
}

// ClearSelected empties the selection. With keepDisabled, selected disabled
// options stay selected.
func (l *List) ClearSelected(keepDisabled bool) {
	l.clearSelected(keepDisabled)
	l.emit(SelectionChanged, nil)
}

func (l *List) clearSelected(keepDisabled bool) {
	l.model.Clear(keepDisabled)
	for _, item := range l.items {
		item.Selected = keepDisabled && item.Selected && item.Disabled
	}
	l.syncGroupMirrors()

	if l.opts.HideSelected {
		l.resetFilteredItems()
	}
}

// syncGroupMirrors recomputes the Selected flag of headers that aren't members
// themselves: in a multiple list a header is selected when all its children are.
func (l *List) syncGroupMirrors() {
	members := l.model.Value()
	for _, header := range l.groups {
		if option.IndexOf(members, header) >= 0 {
			header.Selected = true
			continue
		}
		header.Selected = l.model.Multiple() && allSelected(header.Children)
	}
}

func allSelected(children []*option.Option) bool {
	for _, c := range children {
		if !c.Selected {
			return false
		}
	}
	return len(children) > 0
}

// MapSelectedItems re-resolves every selected value against the current
// sequence so the matching new options carry the selection. Values that no
// longer exist stay selected as orphans unless DropOrphanedSelections is set.
func (l *List) MapSelectedItems() {
	l.mapSelectedItems()
	l.emit(SelectionChanged, nil)
}

func (l *List) mapSelectedItems() {
	orphans := 0
	previous := l.model.Value()
	l.model.Clear(false)
	for _, selected := range previous {
		value := selected.Value
		if l.opts.BindValue != "" {
			value = option.ResolveNested(value, l.opts.BindValue)
		}

		var item *option.Option
		if value != nil {
			item = l.FindItem(value)
		}

		if item == nil {
			orphans++
			if l.opts.DropOrphanedSelections {
				continue
			}
			item = selected
		}
		l.model.Select(item, l, l.opts.SelectableGroupAsModel)
	}

	if orphans > 0 {
		l.logger.Debug().
			Int("orphans", orphans).
			Bool("dropped", l.opts.DropOrphanedSelections).
			Msg("selected values missing from items")
	}

	if l.opts.HideSelected {
		l.resetFilteredItems()
	}
}

// WriteValue replaces the selection from an external model value, the way a
// form binding writes into the widget.
//
// nil, an empty slice, or "" for a multiple list clear the selection. A multiple
// list requires a slice; anything else is logged and ignored, leaving the
// selection untouched. Object values can't be written when BindValue is set
// unless CompareWith is configured. Values missing from the list are selected as
// transient options.
func (l *List) WriteValue(v any) {
	if isEmptyModel(v, l.model.Multiple()) {
		l.ClearSelected(false)
		return
	}

	values := []any{v}
	if l.model.Multiple() {
		var ok bool
		values, ok = toSlice(v)
		if !ok {
			l.logger.Warn().
				Str("type", reflect.TypeOf(v).String()).
				Msg("multiple select model value should be a slice, ignoring write")
			return
		}
	}

	for _, val := range values {
		if !l.validBinding(val) {
			return
		}
	}

	l.clearSelected(false)
	for _, val := range values {
		l.writeOne(val)
	}
	l.emit(SelectionChanged, nil)
}

func (l *List) validBinding(val any) bool {
	if l.opts.CompareWith == nil && l.opts.BindValue != "" && option.IsObject(val) {
		l.logger.Warn().
			Str("bind_value", l.opts.BindValue).
			Msg("object model values with a bind value require a comparator, ignoring write")
		return false
	}
	return true
}

func (l *List) writeOne(val any) {
	if item := l.FindItem(val); item != nil {
		l.selectItem(item)
		return
	}

	if option.IsObject(val) || l.opts.BindValue == "" {
		l.selectItem(l.MapItem(val, -1))
		return
	}

	raw := nestedMap(l.opts.BindValue, val)
	if _, ok := raw[l.opts.BindLabel]; !ok {
		raw[l.opts.BindLabel] = nil
	}
	l.selectItem(l.MapItem(raw, -1))
}

// ModelValue is the external model: bound values of the selected options, as a
// slice for multiple lists and a single value (or nil) otherwise.
func (l *List) ModelValue() any {
	selected := l.model.Value()
	values := make([]any, 0, len(selected))
	for _, item := range selected {
		if l.opts.BindValue == "" {
			values = append(values, item.Value)
			continue
		}
		v := option.ResolveNested(item.Value, l.opts.BindValue)
		if v == nil && item.IsGroup() {
			v = item.Value
		}
		values = append(values, v)
	}

	if l.model.Multiple() {
		return values
	}
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func isEmptyModel(v any, multiple bool) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && multiple && s == "" {
		return true
	}
	if values, ok := toSlice(v); ok && len(values) == 0 {
		return true
	}
	return false
}

func toSlice(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// nestedMap builds {"a": {"b": val}} for the path "a.b".
func nestedMap(path string, val any) map[string]any {
	segments := strings.Split(path, ".")
	root := map[string]any{}
	current := root
	for _, segment := range segments[:len(segments)-1] {
		next := map[string]any{}
		current[segment] = next
		current = next
	}
	current[segments[len(segments)-1]] = val
	return root
}
