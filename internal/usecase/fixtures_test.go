package usecase

import (
	"github.com/catalogsearch/backend/internal/domain"
)

func price(v float64) *float64 {
	return &v
}

// sampleProducts is a small catalog covering absent prices, missing sizes and inferred colors
func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Light Blue Jacket", Description: "Water resistant shell", SKU: "JK-001", Price: price(120), Sizes: []string{"S", "M", "L"}, Color: "light blue", URL: "https://shop.example/products/light-blue-jacket"},
		{ID: "p2", Title: "Dark Hoodie", Description: "Heavy cotton hoodie", SKU: "HD-002", Price: price(59.95), Sizes: []string{"M", "L"}, Color: "black", URL: "https://shop.example/products/dark-hoodie"},
		{ID: "p3", Title: "Classic Cap", Description: "One size cap", SKU: "CP-003", Price: nil, Sizes: []string{"One Size"}, Color: "unknown", URL: "https://shop.example/products/classic-cap"},
		{ID: "p4", Title: "Burgundy Sweater", Description: "Knitted", SKU: "SW-004", Price: price(80), Sizes: []string{}, Color: "burgundy", URL: "https://shop.example/products/burgundy-sweater"},
		{ID: "p5", Title: "Black Tee", Description: "Basic HOODIE layer", SKU: "TE-005", Price: price(25), Sizes: []string{"S"}, Color: "black", URL: "https://shop.example/products/black-tee"},
	}
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{Products: sampleProducts(), Source: "test"}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
