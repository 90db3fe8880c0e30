// Package group flattens raw item collections into the ordered option sequence
// the dropdown navigates, synthesizing one header option per group.
package group

import (
	"fmt"

	"github.com/rshade/dropdown/internal/option"
)

// KeyFunc returns the group key of a raw value. A nil or empty-string key leaves
// the item ungrouped.
type KeyFunc func(value any) any

// ValueFunc produces the value of a group header from its key and the values of its children.
type ValueFunc func(key any, children []any) any

// MapFunc wraps a raw value into a leaf option.
type MapFunc func(raw any, index int) *option.Option

// Flattener turns raw items into a flat, pre-order option sequence.
type Flattener struct {
	// Map builds leaf options. Required.
	Map MapFunc

	// Key groups items when set.
	Key KeyFunc

	// Value builds header values; the key itself is used when nil.
	Value ValueFunc

	// BindLabel resolves header labels for object keys.
	BindLabel string

	// SelectableGroup makes headers selectable; unselectable headers are disabled.
	SelectableGroup bool

	// IDs issues header html ids. Required when Key is set.
	IDs *option.IDSource
}

// bucket is one first-seen group with its members.
type bucket struct {
	key     any
	grouped bool
	members []*option.Option
}

// KeyFromPath returns a KeyFunc reading the dotted path from each value.
func KeyFromPath(path string) KeyFunc {
	if path == "" {
		return nil
	}
	return func(value any) any {
		if !option.IsObject(value) {
			return nil
		}
		return option.ResolveNested(value, path)
	}
}

// Flatten maps raw into options. Without a Key every raw item becomes one leaf in
// order; with a Key items are grouped by first-seen key and each group is emitted
// as its header followed by its children. Ungrouped items keep the position of the
// first ungrouped item.
func (f *Flattener) Flatten(raw []any) []*option.Option {
	leaves := make([]*option.Option, 0, len(raw))
	for i, item := range raw {
		leaves = append(leaves, f.Map(item, i))
	}

	if f.Key == nil {
		for i, leaf := range leaves {
			leaf.Index = i
		}
		return leaves
	}

	buckets := f.groupBy(leaves)

	out := make([]*option.Option, 0, len(leaves)+len(buckets))
	for _, b := range buckets {
		if !b.grouped {
			for _, leaf := range b.members {
				leaf.Index = len(out)
				out = append(out, leaf)
			}
			continue
		}

		header := f.header(b, len(out))
		out = append(out, header)
		for _, child := range b.members {
			child.ParentID = header.HTMLID
			child.Children = nil
			child.Index = len(out)
			out = append(out, child)
		}
	}
	return out
}

func (f *Flattener) groupBy(leaves []*option.Option) []*bucket {
	var buckets []*bucket
	var ungrouped *bucket
	seen := make(map[string]*bucket)

	for _, leaf := range leaves {
		key := f.Key(leaf.Value)
		if isEmptyKey(key) {
			if ungrouped == nil {
				ungrouped = &bucket{}
				buckets = append(buckets, ungrouped)
			}
			ungrouped.members = append(ungrouped.members, leaf)
			continue
		}

		id := keyID(key)
		b, ok := seen[id]
		if !ok {
			b = &bucket{key: key, grouped: true}
			seen[id] = b
			buckets = append(buckets, b)
		}
		b.members = append(b.members, leaf)
	}
	return buckets
}

func (f *Flattener) header(b *bucket, index int) *option.Option {
	values := option.Values(b.members)

	var value any = b.key
	if f.Value != nil {
		value = f.Value(b.key, values)
	}

	label := ""
	if option.IsObject(b.key) {
		if l := option.ResolveNested(b.key, f.BindLabel); l != nil {
			label = fmt.Sprint(l)
		}
	} else {
		label = fmt.Sprint(b.key)
	}

	return &option.Option{
		Value:    value,
		Label:    label,
		Disabled: !f.SelectableGroup,
		Children: b.members,
		Index:    index,
		HTMLID:   f.IDs.Next(),
	}
}

func isEmptyKey(key any) bool {
	if key == nil {
		return true
	}
	s, ok := key.(string)
	return ok && s == ""
}

// keyID identifies a group key. Object keys are grouped by their printed form,
// which keeps equal-looking keys decoded from separate documents together.
func keyID(key any) string {
	return fmt.Sprintf("%T:%v", key, key)
}
