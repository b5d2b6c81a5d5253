package table

import (
	"fmt"
	"strings"

	"github.com/nurpe/contracts-admin/internal/model"
)

type EmptyState int

const (
	NotEmpty EmptyState = iota
	// EmptyNone: the collection has no rows at all.
	EmptyNone
	// EmptyNoMatch: rows exist but none match search or filter.
	EmptyNoMatch
)

func (e EmptyState) None() bool    { return e == EmptyNone }
func (e EmptyState) NoMatch() bool { return e == EmptyNoMatch }

type Option struct {
	Value string
	Label string
}

// Spec describes how one entity is searched and filtered client-side.
type Spec[T any] struct {
	SearchFields func(row T) []string
	Filters      []Option
	Match        func(row T, filter string) bool
}

// View is one rendered page of a table.
type View[T any] struct {
	Rows    []T
	Params  Params
	Total   int
	Overall int
	Page    int
	Pages   int
	Empty   EmptyState
}

// Apply filters, searches and pages rows, which are kept in their given
// order.
func Apply[T any](rows []T, spec Spec[T], p Params) View[T] {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	matched := Filter(rows, spec, p)

	v := View[T]{Params: p, Total: len(matched), Overall: len(rows)}
	v.Pages = pages(v.Total, p.Size)
	v.Page = clampPage(p.Page, v.Pages)
	v.Params.Page = v.Page

	start := v.Page * p.Size
	end := min(start+p.Size, v.Total)
	if start < end {
		v.Rows = matched[start:end]
	} else {
		v.Rows = []T{}
	}
	v.Empty = emptyState(v.Total, v.Overall, p)
	return v
}

// Filter returns every row matching the search and filter of p, ignoring
// pagination.
func Filter[T any](rows []T, spec Spec[T], p Params) []T {
	needle := strings.ToLower(p.Search)
	matched := make([]T, 0, len(rows))
	for _, row := range rows {
		if p.Filter != "" && spec.Match != nil && !spec.Match(row, p.Filter) {
			continue
		}
		if needle != "" && !matchesSearch(spec, row, needle) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

// FilterLabel describes the active search and filter, or "" when neither
// is set.
func (s Spec[T]) FilterLabel(p Params) string {
	var parts []string
	if p.Filter != "" {
		label := p.Filter
		for _, o := range s.Filters {
			if strings.EqualFold(o.Value, p.Filter) {
				label = o.Label
			}
		}
		parts = append(parts, label)
	}
	if p.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", p.Search))
	}
	return strings.Join(parts, ", ")
}

// FromPage adapts a server-side page. overall is the unfiltered count when
// known, or -1.
func FromPage[T any](page *model.Page[T], p Params, overall int) View[T] {
	v := View[T]{Params: p, Overall: overall, Rows: []T{}}
	if page == nil {
		v.Empty = emptyState(0, overall, p)
		return v
	}
	if page.Content != nil {
		v.Rows = page.Content
	}
	v.Total = int(page.TotalElements)
	v.Pages = page.TotalPages
	v.Page = page.Number
	v.Empty = emptyState(v.Total, overall, p)
	return v
}

func matchesSearch[T any](spec Spec[T], row T, needle string) bool {
	if spec.SearchFields == nil {
		return true
	}
	for _, f := range spec.SearchFields(row) {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func emptyState(total, overall int, p Params) EmptyState {
	if total > 0 {
		return NotEmpty
	}
	if overall == 0 || (overall < 0 && !p.Filtered()) {
		return EmptyNone
	}
	return EmptyNoMatch
}

func pages(total, size int) int {
	if size <= 0 || total == 0 {
		return 0
	}
	return (total + size - 1) / size
}

func clampPage(page, pages int) int {
	if pages == 0 || page < 0 {
		return 0
	}
	if page >= pages {
		return pages - 1
	}
	return page
}

func (v View[T]) HasPrev() bool { return v.Page > 0 }
func (v View[T]) HasNext() bool { return v.Page+1 < v.Pages }

func (v View[T]) Prev() Params { return v.Params.WithPage(v.Page - 1) }
func (v View[T]) Next() Params { return v.Params.WithPage(v.Page + 1) }

// From and To are the 1-based row range shown, 0/0 when empty.
func (v View[T]) From() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.Page*v.Params.Size + 1
}

func (v View[T]) To() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.Page*v.Params.Size + len(v.Rows)
}

// DisplayPage is the 1-based page number.
func (v View[T]) DisplayPage() int { return v.Page + 1 }
