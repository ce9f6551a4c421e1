package usecase

import (
	"strings"

	"github.com/catalogsearch/backend/internal/domain"
)

// Matches reports whether p satisfies every predicate set on q.
// Unset query fields impose no constraint.
func Matches(p *domain.Product, q *domain.Query) bool {
	return matchesText(p, q.Text) &&
		matchesPrice(p, q.MinPrice, q.MaxPrice) &&
		matchesSize(p, q.Size) &&
		matchesColor(p, q.Color)
}

// matchesText is a case-insensitive literal substring test on title, description and sku
func matchesText(p *domain.Product, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, field := range []string{p.Title, p.Description, p.SKU} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// matchesPrice applies inclusive bounds. A product without a price fails any set bound.
func matchesPrice(p *domain.Product, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if p.Price == nil {
		return false
	}
	if min != nil && *p.Price < *min {
		return false
	}
	if max != nil && *p.Price > *max {
		return false
	}
	return true
}

func matchesSize(p *domain.Product, size string) bool {
	if size == "" {
		return true
	}
	return p.HasSize(size)
}

// matchesColor compares against the already resolved color; no inference happens here
func matchesColor(p *domain.Product, color string) bool {
	if color == "" {
		return true
	}
	return strings.EqualFold(p.Color, color)
}

// Filter returns the products matching q, preserving their order
func Filter(products []domain.Product, q *domain.Query) []domain.Product {
	matched := make([]domain.Product, 0)
	for i := range products {
		if Matches(&products[i], q) {
			matched = append(matched, products[i])
		}
	}
	return matched
}
