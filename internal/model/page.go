package model

import (
	"net/http"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PageQuery carries 1-based pagination parameters.
type PageQuery struct {
	Page     uint64 `json:"page"`
	PageSize uint64 `json:"page_size"`
}

// Offset returns the row offset for this page.
func (q PageQuery) Offset() uint64 {
	return (q.Page - 1) * q.PageSize
}

// ParsePageQuery reads page and page_size from the query string, applying the
// defaults (page 1, size 10) for missing or unusable values.
func ParsePageQuery(r *http.Request) PageQuery {
	q := PageQuery{Page: defaultPage, PageSize: defaultPageSize}
	if v, err := strconv.ParseUint(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.ParseUint(r.URL.Query().Get("page_size"), 10, 64); err == nil && v > 0 {
		q.PageSize = v
	}
	return q
}

// PageResponse is the pagination envelope returned by all paged endpoints.
type PageResponse[T any] struct {
	Data        []T    `json:"data"`
	Total       uint64 `json:"total"`
	CurrentPage uint64 `json:"current_page"`
	PageSize    uint64 `json:"page_size"`
	TotalPages  uint64 `json:"total_pages"`
}

// NewPageResponse assembles the envelope, computing total_pages = ceil(total / page_size).
func NewPageResponse[T any](data []T, total uint64, q PageQuery) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:        data,
		Total:       total,
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
		TotalPages:  (total + q.PageSize - 1) / q.PageSize,
	}
}
