package response

import (
	"stempede-store/internal/data/repository"
	"stempede-store/pkg/utils"
)

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, perPage),
		},
	}
}

// PageToResponse maps every item of page with convert.
func PageToResponse[E, T any](page *repository.Page[E], convert func(*E) T) *PaginatedResponse[T] {
	data := make([]T, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, convert(&page.Items[i]))
	}
	return NewPaginatedResponse(data, page.PageIndex, page.PageSize, page.TotalCount)
}
