package domain

import "math"

// Pagination defaults and limits shared by the HTTP layer, the export job and
// the repos.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxPage keeps Page*Limit within int for any limit up to MaxPageLimit.
	MaxPage = math.MaxInt / MaxPageLimit
)

// PaginationParams carries page/limit values from the caller to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Nil or non-positive values fall back to page=1, limit=DefaultPageLimit; the
// page is capped at MaxPage and the limit at MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Next returns the params for the following page.
func (p PaginationParams) Next() PaginationParams {
	return PaginationParams{Page: p.Page + 1, Limit: p.Limit}
}

// HasMore reports whether rows beyond this page exist given the total count.
func (p PaginationParams) HasMore(total int64) bool {
	return int64(p.Page*p.Limit) < total
}
