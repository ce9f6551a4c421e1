package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SortOrder selects how matched products are ordered
type SortOrder string

const (
	SortNone      SortOrder = "none"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// Pagination bounds accepted at the service boundary
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ParseSortOrder maps a request value to a SortOrder. Empty means SortNone.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", ErrInvalidRequest, s)
}

// Query is a validated search request
type Query struct {
	Text     string    `json:"q,omitempty"`
	MinPrice *float64  `json:"min_price,omitempty"`
	MaxPrice *float64  `json:"max_price,omitempty"`
	Size     string    `json:"size,omitempty"`
	Color    string    `json:"color,omitempty"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Sort     SortOrder `json:"sort,omitempty"`
}

// Validate checks the pagination and sort ranges
func (q *Query) Validate() error {
	if q == nil {
		return ErrInvalidRequest
	}
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidRequest, q.Page)
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		return fmt.Errorf("%w: per_page must be in [1,%d], got %d", ErrInvalidRequest, MaxPerPage, q.PerPage)
	}
	switch q.Sort {
	case "", SortNone, SortPriceAsc, SortPriceDesc:
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidRequest, q.Sort)
	}
	return nil
}

// Offset returns the zero-based index of the first hit on the requested page
func (q *Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// CacheKey builds a stable key for the query.
// Format: "search:{text}|{min}|{max}|{size}|{color}|{sort}|{page}|{per_page}"
func (q *Query) CacheKey() string {
	parts := []string{
		strings.ToLower(q.Text),
		formatBound(q.MinPrice),
		formatBound(q.MaxPrice),
		q.Size,
		strings.ToLower(q.Color),
		string(q.Sort),
		strconv.Itoa(q.Page),
		strconv.Itoa(q.PerPage),
	}
	return "search:" + strings.Join(parts, "|")
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
