package itemslist

import "github.com/rshade/dropdown/internal/option"

// EventKind identifies what a mutating call changed.
type EventKind int

// Event kinds published by List.
const (
	ItemsChanged EventKind = iota
	FilterChanged
	SelectionChanged
	MarkChanged
)

// String returns the event kind name used in logs.
func (k EventKind) String() string {
	switch k {
	case ItemsChanged:
		return "items_changed"
	case FilterChanged:
		return "filter_changed"
	case SelectionChanged:
		return "selection_changed"
	case MarkChanged:
		return "mark_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a mutating call completes.
type Event struct {
	Kind EventKind

	// Item is the option the call acted on, when there is one.
	Item *option.Option
}

// Listener receives events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it.
func (l *List) Subscribe(fn Listener) func() {
	l.nextSubID++
	id := l.nextSubID
	l.subs = append(l.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *List) emit(kind EventKind, item *option.Option) {
	l.logger.Debug().
		Str("event", kind.String()).
		Int("filtered", len(l.filtered)).
		Int("selected", len(l.model.Value())).
		Msg("items list changed")

	ev := Event{Kind: kind, Item: item}
	for _, s := range append([]subscription(nil), l.subs...) {
		s.fn(ev)
	}
}
