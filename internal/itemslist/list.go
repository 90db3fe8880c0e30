package itemslist

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/dropdown/internal/group"
	"github.com/rshade/dropdown/internal/logging"
	"github.com/rshade/dropdown/internal/option"
	"github.com/rshade/dropdown/internal/selection"
)

// DefaultBindLabel is the field read for labels when Options.BindLabel is empty.
const DefaultBindLabel = "label"

// disabledField is the raw item field that marks an option disabled.
const disabledField = "disabled"

// SearchFunc decides whether value matches term. params is passed through from Filter.
type SearchFunc func(term string, value any, params any) bool

// Options configures a List.
type Options struct {
	// BindLabel is the dotted path of the label field in raw items.
	BindLabel string

	// BindValue is the dotted path of the model value; the whole item is the value when empty.
	BindValue string

	// GroupBy groups raw items; nil disables grouping.
	GroupBy group.KeyFunc

	// GroupValue builds header values; the group key is used when nil.
	GroupValue group.ValueFunc

	// SelectableGroup lets group headers be selected.
	SelectableGroup bool

	// SelectableGroupAsModel stores a selected group as its header rather than its children.
	SelectableGroupAsModel bool

	// HideSelected removes selected options from the filtered sequence.
	HideSelected bool

	// MinTermLength is the shortest trimmed term that filters; shorter terms show everything.
	MinTermLength int

	// CompareWith overrides value equality in FindItem.
	CompareWith option.Comparator

	// SearchFn replaces the default label match.
	SearchFn SearchFunc

	// DropOrphanedSelections unselects values that vanish on SetItems instead of keeping them.
	DropOrphanedSelections bool
}

// List is the items list of one dropdown.
type List struct {
	opts      Options
	model     selection.Model
	ids       *option.IDSource
	flattener *group.Flattener
	logger    zerolog.Logger

	items       []*option.Option
	filtered    []*option.Option
	groups      map[string]*option.Option
	position    map[*option.Option]int
	markedIndex int

	subs      []subscription
	nextSubID int
}

var _ option.Lineage = (*List)(nil)

// New creates an empty List using model for selection state. The logger is taken from ctx.
func New(ctx context.Context, opts Options, model selection.Model) *List {
	if opts.BindLabel == "" {
		opts.BindLabel = DefaultBindLabel
	}

	l := &List{
		opts:        opts,
		model:       model,
		ids:         option.NewIDSource(),
		logger:      logging.ComponentLogger(*logging.FromContext(ctx), "itemslist"),
		groups:      map[string]*option.Option{},
		position:    map[*option.Option]int{},
		markedIndex: -1,
	}
	l.flattener = &group.Flattener{
		Map:             l.MapItem,
		Key:             opts.GroupBy,
		Value:           opts.GroupValue,
		BindLabel:       opts.BindLabel,
		SelectableGroup: opts.SelectableGroup,
		IDs:             l.ids,
	}
	return l
}

// Items returns the full flattened sequence.
func (l *List) Items() []*option.Option {
	return l.items
}

// FilteredItems returns the options currently shown, in list order.
func (l *List) FilteredItems() []*option.Option {
	return l.filtered
}

// SelectedItems returns the selected options in selection order.
func (l *List) SelectedItems() []*option.Option {
	return l.model.Value()
}

// SelectedValues returns the payloads of the selected options.
func (l *List) SelectedValues() []any {
	return option.Values(l.model.Value())
}

// FirstSelectedItem returns the earliest selected option, or nil.
func (l *List) FirstSelectedItem() *option.Option {
	selected := l.model.Value()
	if len(selected) == 0 {
		return nil
	}
	return selected[0]
}

// LastSelectedItem returns the most recently selected enabled option, or nil.
func (l *List) LastSelectedItem() *option.Option {
	selected := l.model.Value()
	for i := len(selected) - 1; i >= 0; i-- {
		if !selected[i].Disabled {
			return selected[i]
		}
	}
	return nil
}

// MaxItemsSelected reports whether the selection model is full.
func (l *List) MaxItemsSelected() bool {
	return l.model.AtCapacity()
}

// Multiple reports whether the list allows several selections.
func (l *List) Multiple() bool {
	return l.model.Multiple()
}

// IDPrefix returns the prefix shared by every html id of this list.
func (l *List) IDPrefix() string {
	return l.ids.Prefix()
}

// Parent resolves the group header of o through the current sequence.
func (l *List) Parent(o *option.Option) *option.Option {
	if o == nil || o.ParentID == "" {
		return nil
	}
	return l.groups[o.ParentID]
}

// SetItems rebuilds the sequence from raw. A nil raw is treated as empty. The
// selection survives: previously selected values are re-mapped onto the new
// options.
func (l *List) SetItems(raw []any) {
	l.items = l.flattener.Flatten(raw)

	l.groups = make(map[string]*option.Option)
	l.position = make(map[*option.Option]int, len(l.items))
	for i, item := range l.items {
		l.position[item] = i
		if item.IsGroup() {
			l.groups[item.HTMLID] = item
		}
	}

	l.markedIndex = -1
	l.setFiltered(append([]*option.Option(nil), l.items...))

	if len(l.items) > 0 && len(l.model.Value()) > 0 {
		l.mapSelectedItems()
	}

	l.logger.Debug().
		Int("raw", len(raw)).
		Int("options", len(l.items)).
		Int("groups", len(l.groups)).
		Msg("items set")
	l.emit(ItemsChanged, nil)
}

// MapItem wraps raw into an option without adding it to the list. index is the
// caller's position for it; transient options use -1. Unresolvable label paths
// give an empty label.
func (l *List) MapItem(raw any, index int) *option.Option {
	label := ""
	if v := option.ResolveNested(raw, l.opts.BindLabel); v != nil {
		label = fmt.Sprint(v)
	}

	disabled := false
	if option.IsObject(raw) {
		disabled, _ = option.ResolveNested(raw, disabledField).(bool)
	}

	return &option.Option{
		Value:    raw,
		Label:    label,
		Disabled: disabled,
		Index:    index,
		HTMLID:   l.ids.Next(),
	}
}

// AddItem appends a new option built from raw to both the full and the
// filtered sequence and returns it.
func (l *List) AddItem(raw any) *option.Option {
	o := l.MapItem(raw, len(l.items))
	l.position[o] = len(l.items)
	l.items = append(l.items, o)
	o.Index = len(l.filtered)
	l.filtered = append(l.filtered, o)

	l.emit(ItemsChanged, o)
	return o
}

// FindItem returns the first option in the full sequence matching value, or nil.
//
// A CompareWith comparator wins; otherwise with BindValue the bound field of leaf
// options is compared; otherwise the whole value is compared, or its label
// against leaf labels.
func (l *List) FindItem(value any) *option.Option {
	var match func(o *option.Option) bool
	switch {
	case l.opts.CompareWith != nil:
		match = func(o *option.Option) bool { return l.opts.CompareWith(o.Value, value) }
	case l.opts.BindValue != "":
		match = func(o *option.Option) bool {
			return !o.IsGroup() && option.Equal(option.ResolveNested(o.Value, l.opts.BindValue), value)
		}
	default:
		label := l.labelOf(value)
		match = func(o *option.Option) bool {
			if option.Equal(o.Value, value) {
				return true
			}
			return !o.IsGroup() && o.Label != "" && o.Label == label
		}
	}

	for _, o := range l.items {
		if match(o) {
			return o
		}
	}
	return nil
}

// FindByLabel returns the first option whose label equals term, ignoring case
// and diacritics, or nil. It backs type-ahead navigation.
func (l *List) FindByLabel(term string) *option.Option {
	want := option.Fold(term)
	for _, o := range l.items {
		if option.Fold(o.Label) == want {
			return o
		}
	}
	return nil
}

// ResolveNested reads the dotted path from value. See option.ResolveNested.
func (l *List) ResolveNested(value any, path string) any {
	return option.ResolveNested(value, path)
}

func (l *List) labelOf(value any) string {
	v := option.ResolveNested(value, l.opts.BindLabel)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
