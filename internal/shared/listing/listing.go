// Package listing implements the search / filter / paginate step every list
// endpoint applies to a collection fetched from the ERP backend.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// ParseQuery reads q, page, page_size and the allowed filter keys from url values.
// Empty filter values are treated as inactive.
func ParseQuery(values url.Values, allowedFilters ...string) Query {
	q := Query{
		Search:   strings.TrimSpace(values.Get("q")),
		Filters:  map[string]string{},
		Page:     atoiDefault(values.Get("page"), 1),
		PageSize: atoiDefault(values.Get("page_size"), DefaultPageSize),
	}
	for _, key := range allowedFilters {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			q.Filters[key] = v
		}
	}
	return q
}

func atoiDefault(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Spec tells Apply which fields of T are searchable and which are filterable.
type Spec[T any] struct {
	SearchFields func(T) []string
	Filters      map[string]func(T) string
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Apply filters items (search OR across fields, filters ANDed) and slices one page.
// Order is the input order.
func Apply[T any](items []T, spec Spec[T], q Query) Page[T] {
	filtered := Filter(items, spec, q)
	return Paginate(filtered, q.Page, q.PageSize)
}

func Filter[T any](items []T, spec Spec[T], q Query) []T {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if term != "" && !matchesSearch(item, spec, term) {
			continue
		}
		if !matchesFilters(item, spec, q.Filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, spec Spec[T], term string) bool {
	if spec.SearchFields == nil {
		return true
	}
	for _, field := range spec.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, spec Spec[T], filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		get, ok := spec.Filters[key]
		if !ok {
			continue
		}
		if get(item) != want {
			return false
		}
	}
	return true
}

// Paginate clamps page into [1, totalPages] and returns that slice.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start > total {
		start = total
	}

	p := Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	if end > start {
		p.From = start + 1
		p.To = end
	}
	return p
}
