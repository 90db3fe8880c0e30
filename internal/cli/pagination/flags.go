package pagination

import (
	"errors"

	"github.com/spf13/cobra"
)

// Flag names registered by AddFlags.
const (
	FlagLimit    = "limit"
	FlagOffset   = "offset"
	FlagPage     = "page"
	FlagPageSize = "page-size"
)

// PaginationParams holds CLI pagination flags. A zero Limit means no limit.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit is the maximum number of rows to return (offset-based mode).
	Limit int

	// Offset is the number of rows to skip (offset-based mode).
	Offset int

	// Page is the 1-based page number (page-based mode).
	Page int

	// PageSize is the number of rows per page (page-based mode).
	PageSize int
}

// AddFlags registers the pagination flags on cmd, bound to p.
func (p *PaginationParams) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, FlagLimit, 0, "maximum number of rows to print (0 = all)")
	cmd.Flags().IntVar(&p.Offset, FlagOffset, 0, "number of rows to skip")
	cmd.Flags().IntVar(&p.Page, FlagPage, 0, "1-based page to print (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, FlagPageSize, 0, "rows per page")
}

// Validate checks that the parameters are non-negative and use one mode.
func (p PaginationParams) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if p.PageSize < 0 {
		return errors.New("page-size cannot be negative")
	}

	if p.Page > 0 && p.Offset > 0 {
		return errors.New("page and offset parameters are mutually exclusive")
	}
	if p.Page == 0 && p.PageSize > 0 {
		return errors.New("page must be specified when using page-size")
	}
	if p.PageSize == 0 && p.Page > 0 {
		return errors.New("page-size must be specified when using page")
	}

	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Window returns the half-open index range [start, end) of total rows selected
// by p. Offsets past the end give an empty window at total.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) Window(total int) (start, end int) {
	offset, limit := p.CalculateOffsetLimit()
	start = min(max(offset, 0), total)
	end = total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return start, end
}

// Apply returns the rows of items selected by p.
func Apply[T any](p PaginationParams, items []T) []T {
	start, end := p.Window(len(items))
	return items[start:end]
}
