package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the standard page size when a page_size is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any page query can request.
	MaxPageSize = 100
)

// Params holds page-number pagination inputs from controllers.
type Params struct {
	Page     int
	PageSize int
}

// FromRequest reads page/page_size query parameters. Unparsable values fall
// back to the defaults; out-of-range values are clamped.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	page := parseIntDefault(query.Get("page"), 1)
	size := parseIntDefault(query.Get("page_size"), DefaultPageSize)
	return Params{
		Page:     NormalizePage(page),
		PageSize: NormalizePageSize(size),
	}
}

// NormalizePage floors the page number at 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizePageSize enforces the configured default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset converts the params into a row offset.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizePageSize(p.PageSize)
}

// Page wraps a page of shaped records plus count and neighbor links.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage assembles the response, deriving next/previous URLs from the
// request that produced it.
func NewPage[T any](r *http.Request, params Params, count int64, results []T) Page[T] {
	page := Page[T]{
		Count:   count,
		Results: results,
	}
	if results == nil {
		page.Results = []T{}
	}

	size := NormalizePageSize(params.PageSize)
	current := NormalizePage(params.Page)

	if int64(current*size) < count {
		page.Next = pageLink(r.URL, current+1)
	}
	if current > 1 {
		page.Previous = pageLink(r.URL, current-1)
	}
	return page
}

func pageLink(u *url.URL, page int) *string {
	link := *u
	query := link.Query()
	query.Set("page", strconv.Itoa(page))
	link.RawQuery = query.Encode()
	encoded := link.String()
	return &encoded
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
