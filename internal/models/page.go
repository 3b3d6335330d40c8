package models

import (
	"net/url"
	"strconv"
)

// Page — страница списка в формате бэкенда.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// ListQuery — общие параметры пагинации и фильтрации для табличных экранов.
type ListQuery struct {
	Page   int    `json:"page"`
	Size   int    `json:"size"`
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Values нормализует запрос (страница с 0, размер в [1..MaxPageSize])
// и кодирует его в query string.
func (q ListQuery) Values() url.Values {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	return v
}
