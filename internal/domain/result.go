package domain

// Backend names reported as result provenance
const (
	BackendElasticsearch = "elasticsearch"
	BackendSnapshot      = "snapshot"
)

// Bucket is one facet value with the number of matching documents
type Bucket struct {
	Key      string `json:"key"`
	DocCount int    `json:"doc_count"`
}

// BucketAggregation mirrors the backend's terms aggregation shape
type BucketAggregation struct {
	Buckets []Bucket `json:"buckets"`
}

// PriceStats summarizes the present prices of the matched set.
// Min, Max and Avg are nil when Count is zero.
type PriceStats struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
	Count int      `json:"count"`
}

// Facets are computed over the full filtered set, not the page
type Facets struct {
	Sizes      BucketAggregation `json:"sizes"`
	Colors     BucketAggregation `json:"colors"`
	PriceStats PriceStats        `json:"price_stats"`
}

// SearchResult is the response of one query, whichever path served it
type SearchResult struct {
	Total        int       `json:"total"`
	Page         int       `json:"page"`
	PerPage      int       `json:"per_page"`
	Hits         []Product `json:"hits"`
	Aggregations Facets    `json:"aggregations"`
	ES           bool      `json:"es"`
	Backend      string    `json:"backend"`
	Error        string    `json:"error,omitempty"`
	TookMs       int64     `json:"took_ms"`
}
