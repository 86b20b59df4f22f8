package service

import "math"

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	ItemCount int64 `json:"itemCount"`
	PageCount int   `json:"pageCount"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
}

// NewPageMeta computes page metadata for a total match count.
// pageCount = ceil(itemCount / pageSize).
func NewPageMeta(total int64, page, pageSize int) PageMeta {
	pageCount := 0
	if pageSize > 0 {
		pageCount = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return PageMeta{
		ItemCount: total,
		PageCount: pageCount,
		Page:      page,
		PageSize:  pageSize,
	}
}
