package option

// Option is one selectable candidate or a group header.
type Option struct {
	// Value is the application payload the option was built from.
	Value any

	// Label is used for display and text search.
	Label string

	// Disabled options can't be marked or selected by the user.
	Disabled bool

	// Children is non-nil only for group headers.
	Children []*Option

	// ParentID is the HTMLID of the owning group header, empty for top-level options.
	ParentID string

	// Index is the position of the option in the current filtered sequence.
	Index int

	// HTMLID is generated once per instance and never changes.
	HTMLID string

	// Selected mirrors selection model membership. Only the selection model
	// and the items list clear pass write it.
	Selected bool
}

// IsGroup reports whether the option is a group header.
func (o *Option) IsGroup() bool {
	return o != nil && o.Children != nil
}

// HasParent reports whether the option belongs to a group.
func (o *Option) HasParent() bool {
	return o != nil && o.ParentID != ""
}

// Lineage resolves the parent edge of an option.
// Implementations return nil when the parent is unknown.
type Lineage interface {
	Parent(o *Option) *Option
}

// Values returns the payloads of opts in order.
func Values(opts []*Option) []any {
	values := make([]any, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return values
}

// IndexOf returns the position of target in opts by identity, or -1.
func IndexOf(opts []*Option, target *Option) int {
	if target == nil {
		return -1
	}
	for i, o := range opts {
		if o == target {
			return i
		}
	}
	return -1
}
