package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPagination clamps page and pageSize and describes the slice [From-1, To)
// of a list holding total items. From and To are 1-based and zero when the
// page is empty.
func NewPagination(page, pageSize int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}

	start := int64(page-1) * int64(pageSize)
	if start < total {
		end := start + int64(pageSize)
		if end > total {
			end = total
		}
		p.From = int(start) + 1
		p.To = int(end)
	}
	return p
}

// Bounds returns the half-open slice indexes for the page.
func (p *Pagination) Bounds() (int, int) {
	if p.From == 0 {
		return 0, 0
	}
	return p.From - 1, p.To
}
