package pagination

// PaginationMeta describes the window printed from a listing.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	Offset     int  `json:"offset"      yaml:"offset"`
	Shown      int  `json:"shown"       yaml:"shown"`
	TotalItems int  `json:"total_items" yaml:"total_items"`
	HasMore    bool `json:"has_more"    yaml:"has_more"`
}

// NewPaginationMeta creates the metadata of the window p selects from totalCount rows.
func NewPaginationMeta(params PaginationParams, totalCount int) PaginationMeta {
	start, end := params.Window(totalCount)
	return PaginationMeta{
		Offset:     start,
		Shown:      end - start,
		TotalItems: totalCount,
		HasMore:    end < totalCount,
	}
}
