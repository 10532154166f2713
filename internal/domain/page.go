package domain

// PaginationParams carries the page/limit pair from the task-listing
// endpoint down to the repo. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query values.
// Nil or out-of-range pointers fall back to page=1, limit=20; a trip's
// checklist rarely exceeds a handful of tasks, so the limit is capped at 100.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset converts the page number into a zero-based SQL OFFSET.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
