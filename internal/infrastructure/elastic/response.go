package elastic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/catalogsearch/backend/internal/catalog"
	"github.com/catalogsearch/backend/internal/domain"
)

// searchResponse is the subset of the Elasticsearch search response we read
type searchResponse struct {
	Hits struct {
		Total json.RawMessage `json:"total"`
		Hits  []struct {
			ID     string             `json:"_id"`
			Source domain.RawDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Sizes      domain.BucketAggregation `json:"sizes"`
		Colors     domain.BucketAggregation `json:"colors"`
		PriceStats domain.PriceStats        `json:"price_stats"`
	} `json:"aggregations"`
}

// toResult maps the native response onto the uniform result shape. Hits go
// through the same normalizer as snapshot documents.
func (r *searchResponse) toResult() (*domain.SearchResult, error) {
	total, err := ParseTotal(r.Hits.Total)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.Product, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		p := catalog.Normalize(h.Source)
		if p.ID == "" {
			p.ID = h.ID
		}
		hits = append(hits, p)
	}

	facets := domain.Facets{
		Sizes:      r.Aggregations.Sizes,
		Colors:     r.Aggregations.Colors,
		PriceStats: r.Aggregations.PriceStats,
	}
	if facets.Sizes.Buckets == nil {
		facets.Sizes.Buckets = []domain.Bucket{}
	}
	if facets.Colors.Buckets == nil {
		facets.Colors.Buckets = []domain.Bucket{}
	}
	if facets.PriceStats.Count == 0 {
		facets.PriceStats = domain.PriceStats{}
	}

	return &domain.SearchResult{
		Total:        total,
		Hits:         hits,
		Aggregations: facets,
	}, nil
}

// ParseTotal reads hits.total, which is a bare number on old clusters and
// {"value": n, "relation": "eq"} on newer ones.
func ParseTotal(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var obj struct {
		Value    *int   `json:"value"`
		Relation string `json:"relation"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Value == nil {
		return 0, fmt.Errorf("unexpected hits.total %s", raw)
	}
	return *obj.Value, nil
}
