package table

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	FilterAll       = "ALL"
)

// Params is the table's local state, carried in the query string so that
// closing a dialog returns to the same view.
type Params struct {
	Search string
	Filter string
	Page   int
	Size   int
}

// ParseParams reads q=, filter=, page= and size=. Unknown sizes fall back
// to defaultSize and negative pages to 0.
func ParseParams(q url.Values, defaultSize int, sizes []int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	p := Params{Size: defaultSize}.
		WithSearch(q.Get("q")).
		WithFilter(q.Get("filter"))
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		if len(sizes) == 0 || slices.Contains(sizes, size) {
			p = p.WithSize(size)
		}
	}
	// page last: every other setter resets it
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		p = p.WithPage(page)
	}
	return p
}

func (p Params) WithSearch(s string) Params {
	p.Search = strings.TrimSpace(s)
	p.Page = 0
	return p
}

func (p Params) WithFilter(f string) Params {
	f = strings.TrimSpace(f)
	if strings.EqualFold(f, FilterAll) {
		f = ""
	}
	p.Filter = f
	p.Page = 0
	return p
}

func (p Params) WithSize(n int) Params {
	p.Size = n
	p.Page = 0
	return p
}

func (p Params) WithPage(n int) Params {
	if n < 0 {
		n = 0
	}
	p.Page = n
	return p
}

// Cleared drops search and filter but keeps the page size.
func (p Params) Cleared() Params {
	return Params{Size: p.Size}
}

func (p Params) Filtered() bool {
	return p.Search != "" || p.Filter != ""
}

func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	return v
}

// Encode is the query string without the leading '?'.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// URL appends the encoded params to base.
func (p Params) URL(base string) string {
	if enc := p.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}
