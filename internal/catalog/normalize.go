// Package catalog turns raw scraped documents into canonical product records.
package catalog

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/catalogsearch/backend/internal/colors"
	"github.com/catalogsearch/backend/internal/domain"
)

// Normalize coerces a raw document into a Product. It never fails: malformed
// fields degrade to empty or absent values.
func Normalize(raw domain.RawDocument) domain.Product {
	url := textField(raw, "url")
	sku := textField(raw, "sku")

	id := url
	if id == "" {
		id = sku
	}

	return domain.Product{
		ID:           id,
		Title:        textField(raw, "title"),
		Description:  textField(raw, "description"),
		SKU:          sku,
		Price:        priceField(raw["price"]),
		Currency:     textField(raw, "currency"),
		Sizes:        ParseSizes(raw["sizes"]),
		Color:        ResolveColor(textField(raw, "color"), url),
		URL:          url,
		Images:       stringList(raw["images"]),
		Availability: textField(raw, "availability"),
	}
}

// NormalizeAll normalizes docs in order, dropping those without an identity.
// The second return value is the number of dropped documents.
func NormalizeAll(docs []domain.RawDocument) ([]domain.Product, int) {
	products := make([]domain.Product, 0, len(docs))
	rejected := 0
	for _, doc := range docs {
		p := Normalize(doc)
		if p.ID == "" {
			rejected++
			continue
		}
		products = append(products, p)
	}
	return products, rejected
}

// ResolveColor keeps a usable stored color and otherwise infers one from the URL.
// The result is always lower-cased and never empty.
func ResolveColor(stored, url string) string {
	c := strings.ToLower(strings.TrimSpace(stored))
	if c == "" || c == domain.UnknownColor {
		c = strings.ToLower(colors.Infer(url))
	}
	if c == "" {
		return domain.UnknownColor
	}
	return c
}

// textField reads key as text. Lists are joined with spaces, numbers are formatted.
func textField(raw domain.RawDocument, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if list, ok := v.([]any); ok {
		return strings.Join(stringList(list), " ")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// stringList coerces a scalar or a sequence into a list of non-empty strings
func stringList(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case nil:
	case []any:
		for _, item := range items {
			if s, err := cast.ToStringE(item); err == nil && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range items {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	default:
		if s, err := cast.ToStringE(items); err == nil && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
