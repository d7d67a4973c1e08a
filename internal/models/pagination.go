package models

// Pagination is the offset-based pagination envelope returned by list
// endpoints. HasNext derives from skip + returned < total.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination builds the envelope for one page. returned is the number
// of items actually on this page.
func NewPagination(page, limit, returned int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	skip := (page - 1) * limit
	return Pagination{
		Current: page,
		Total:   pages,
		HasNext: int64(skip+returned) < total,
		HasPrev: page > 1,
	}
}
