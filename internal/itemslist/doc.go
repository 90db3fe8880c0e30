// Package itemslist is the orchestrator of the dropdown core.
//
// A List owns the flattened option sequence, the filtered subsequence shown to
// the user, the marked (keyboard cursor) index and a selection.Model strategy
// passed in at construction. Hosts drive it with decoded intents (Filter,
// MarkNextItem, ToggleItem, ...) and re-render on the Events it publishes.
//
// A List is not safe for concurrent use; it belongs to one widget instance and
// is mutated only from that instance's event loop.
package itemslist
