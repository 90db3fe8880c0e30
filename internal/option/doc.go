// Package option defines the Option value type shared by the dropdown core.
//
// An Option is either a leaf candidate or a group header. Group headers own their
// children; children refer back to their header only by id (ParentID), which the
// owning items list resolves through the Lineage interface. The package also holds
// the value helpers every other core package leans on:
//   - ResolveNested for dotted bind paths into maps, structs and slices
//   - Equal and Comparator for membership tests
//   - Fold for case- and diacritic-insensitive label matching
//   - IDSource for stable per-instance html ids
package option
