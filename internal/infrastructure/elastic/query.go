package elastic

import (
	"strings"

	"github.com/catalogsearch/backend/internal/domain"
)

// DefaultFacetSize is the number of terms buckets requested per facet
const DefaultFacetSize = 100

// textFields are searched by free-text queries, title boosted
var textFields = []string{"title^3", "title.autocomplete", "description", "sku"}

// BuildSearchBody translates a query into the Elasticsearch request body:
// bool must (text) and filter (price range, size, color) clauses, paging,
// facet aggregations and an optional price sort.
func BuildSearchBody(q *domain.Query, facetSize int) map[string]any {
	must := []any{}
	filters := []any{}

	if q.Text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  q.Text,
				"fields": textFields,
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		rng := map[string]any{}
		if q.MinPrice != nil {
			rng["gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			rng["lte"] = *q.MaxPrice
		}
		filters = append(filters, map[string]any{"range": map[string]any{"price": rng}})
	}

	if q.Size != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"sizes": q.Size}})
	}

	if q.Color != "" {
		// color is indexed as a lower-case keyword
		filters = append(filters, map[string]any{"term": map[string]any{"color": strings.ToLower(q.Color)}})
	}

	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must, "filter": filters},
		},
		"from":             q.Offset(),
		"size":             q.PerPage,
		"track_total_hits": true,
		"aggs": map[string]any{
			"sizes":       map[string]any{"terms": map[string]any{"field": "sizes", "size": facetSize}},
			"colors":      map[string]any{"terms": map[string]any{"field": "color", "size": facetSize}},
			"price_stats": map[string]any{"stats": map[string]any{"field": "price"}},
		},
	}

	switch q.Sort {
	case domain.SortPriceAsc:
		body["sort"] = []any{map[string]any{"price": map[string]any{"order": "asc", "missing": "_last"}}}
	case domain.SortPriceDesc:
		body["sort"] = []any{map[string]any{"price": map[string]any{"order": "desc", "missing": "_last"}}}
	}

	return body
}
