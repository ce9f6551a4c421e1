package domain

import "time"

// UnknownColor is the color label used when neither the stored value nor the URL yields one
const UnknownColor = "unknown"

// RawDocument is a loosely-typed product document as scraped or as stored in the backend
type RawDocument map[string]any

// Product is the canonical product record every query component works on
type Product struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	SKU          string   `json:"sku"`
	Price        *float64 `json:"price"`
	Currency     string   `json:"currency,omitempty"`
	Sizes        []string `json:"sizes"`
	Color        string   `json:"color"`
	URL          string   `json:"url"`
	Images       []string `json:"images"`
	Availability string   `json:"availability,omitempty"`
}

// HasPrice reports whether the product carries a parsed price
func (p *Product) HasPrice() bool {
	return p.Price != nil
}

// HasSize reports whether size is one of the product's sizes
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Snapshot is an immutable, point-in-time set of normalized products
type Snapshot struct {
	Products []Product
	Source   string
	LoadedAt time.Time
	// Rejected counts raw documents dropped for lacking both url and sku
	Rejected int
}

// Len returns the number of products in the snapshot; a nil snapshot is empty
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Products)
}
