package repository

import (
	"stempede-store/pkg/utils"
)

// Page is one slice of an ordered query plus the total row count of the
// same plan.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	PageIndex  int
	PageSize   int
	TotalPages int
}

// Paginate materializes rows [(page-1)*size, page*size) of q. A page below 1
// is read as the first page; a non-positive size yields no items.
func Paginate[T any](q *Query[T], page, size int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}

	total, err := q.Count()
	if err != nil {
		return nil, err
	}

	result := &Page[T]{
		Items:      []T{},
		TotalCount: total,
		PageIndex:  page,
		PageSize:   size,
		TotalPages: utils.CalculateTotalPages(total, size),
	}
	if size <= 0 || total == 0 {
		return result, nil
	}

	// Past the last row. Checked before the offset is formed so a huge page
	// cannot wrap it.
	if int64(page-1) > (total-1)/int64(size) {
		return result, nil
	}

	items, err := q.window(utils.CalculateOffset(page, size), size).List()
	if err != nil {
		return nil, err
	}
	result.Items = items

	return result, nil
}
