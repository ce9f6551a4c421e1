package usecase

import (
	"sort"

	"github.com/catalogsearch/backend/internal/domain"
)

// OrderAndPage sorts a copy of products and returns the requested page.
// Products without a price go last in both directions. An offset past the
// end yields an empty page.
func OrderAndPage(products []domain.Product, order domain.SortOrder, page, perPage int) []domain.Product {
	ordered := products
	switch order {
	case domain.SortPriceAsc, domain.SortPriceDesc:
		ordered = make([]domain.Product, len(products))
		copy(ordered, products)
		desc := order == domain.SortPriceDesc
		sort.SliceStable(ordered, func(i, j int) bool {
			return priceLess(ordered[i].Price, ordered[j].Price, desc)
		})
	}

	if page < 1 || perPage < 1 || page-1 > len(ordered)/perPage {
		return []domain.Product{}
	}
	offset := (page - 1) * perPage
	if offset >= len(ordered) {
		return []domain.Product{}
	}
	end := offset + perPage
	if end > len(ordered) {
		end = len(ordered)
	}

	hits := make([]domain.Product, end-offset)
	copy(hits, ordered[offset:end])
	return hits
}

// priceLess orders present prices by direction and always puts absent prices after them
func priceLess(a, b *float64, desc bool) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case desc:
		return *a > *b
	default:
		return *a < *b
	}
}
