package models

// Page is one bounded slice of a larger collection.
type Page[T any] struct {
	Items []T `json:"items"`
	// PageIndex is 1-based.
	PageIndex  int `json:"page"`
	PageSize   int `json:"page_size,omitempty"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// HasNext reports whether a page after this one exists.
func (p Page[T]) HasNext() bool {
	return p.PageIndex < p.TotalPages
}

// HasPrevious reports whether a page before this one exists.
func (p Page[T]) HasPrevious() bool {
	return p.PageIndex > 1
}

// Paginate cuts page index (1-based) of size pageSize out of items. An index
// past the last page yields no items and the true TotalPages. The returned
// slice never aliases items.
func Paginate[T any](items []T, index, pageSize int) Page[T] {
	if index < 1 {
		index = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	page := Page[T]{
		Items:      []T{},
		PageIndex:  index,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}

	start := (index - 1) * pageSize
	if start >= total {
		return page
	}
	end := min(start+pageSize, total)
	page.Items = append(page.Items, items[start:end]...)
	return page
}
