// Package pagination windows the option listings printed by the CLI.
//
// Two mutually exclusive modes are supported:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// Windows are taken over the filtered sequence, so group headers count as rows.
package pagination
