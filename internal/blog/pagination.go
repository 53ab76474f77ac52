package blog

import "math"

// PageInfo describes one page of an ordered listing.
type PageInfo struct {
	Number   int   `json:"number"`
	Size     int   `json:"size"`
	Total    int64 `json:"total"`
	NumPages int   `json:"num_pages"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_previous"`
}

type Page[T any] struct {
	PageInfo
	Items []T `json:"items"`
}

// Window returns the offset and limit for page number of the given size.
// Page numbers below 1 are treated as 1; numbers too large for the offset to
// fit an int are capped, which still lands past the last row.
func Window(number, size int) (offset, limit int) {
	if size < 1 {
		size = 1
	}
	if number < 1 {
		number = 1
	}
	if last := math.MaxInt / size; number > last {
		number = last
	}
	return (number - 1) * size, size
}

// Paginate computes page metadata for total items split into pages of size.
// Numbers past the last page are kept as-is; such pages are simply empty.
func Paginate(total int64, number, size int) PageInfo {
	if size < 1 {
		size = 1
	}
	if number < 1 {
		number = 1
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	return PageInfo{
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
		HasNext:  number < numPages,
		HasPrev:  number > 1,
	}
}

// NewPage wraps items with their page metadata. A nil slice becomes empty.
func NewPage[T any](info PageInfo, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{PageInfo: info, Items: items}
}
