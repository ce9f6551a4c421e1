package elastic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsearch/backend/internal/domain"
)

// roundTrip encodes the body as it would go on the wire
func roundTrip(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestBuildSearchBody(t *testing.T) {
	t.Run("match all without text", func(t *testing.T) {
		body := roundTrip(t, BuildSearchBody(&domain.Query{Page: 3, PerPage: 20}, 50))

		must := body["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
		require.Len(t, must, 1)
		assert.Contains(t, must[0], "match_all")
		assert.Equal(t, float64(40), body["from"])
		assert.Equal(t, float64(20), body["size"])
		assert.Equal(t, true, body["track_total_hits"])
		assert.NotContains(t, body, "sort")

		aggs := body["aggs"].(map[string]any)
		assert.Equal(t, float64(50), aggs["colors"].(map[string]any)["terms"].(map[string]any)["size"])
		assert.Equal(t, "price", aggs["price_stats"].(map[string]any)["stats"].(map[string]any)["field"])
	})

	t.Run("text uses multi_match", func(t *testing.T) {
		body := roundTrip(t, BuildSearchBody(&domain.Query{Text: "hoodie", Page: 1, PerPage: 20}, 10))

		must := body["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
		mm := must[0].(map[string]any)["multi_match"].(map[string]any)
		assert.Equal(t, "hoodie", mm["query"])
		assert.Equal(t, []any{"title^3", "title.autocomplete", "description", "sku"}, mm["fields"])
	})

	t.Run("filters", func(t *testing.T) {
		q := &domain.Query{MinPrice: price(10), Size: "M", Color: "Light Blue", Page: 1, PerPage: 20}
		body := roundTrip(t, BuildSearchBody(q, 10))

		filters := body["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
		require.Len(t, filters, 3)
		assert.Equal(t, map[string]any{"range": map[string]any{"price": map[string]any{"gte": float64(10)}}}, filters[0])
		assert.Equal(t, map[string]any{"term": map[string]any{"sizes": "M"}}, filters[1])
		assert.Equal(t, map[string]any{"term": map[string]any{"color": "light blue"}}, filters[2])
	})

	t.Run("price sorts keep missing last", func(t *testing.T) {
		for order, dir := range map[domain.SortOrder]string{domain.SortPriceAsc: "asc", domain.SortPriceDesc: "desc"} {
			body := roundTrip(t, BuildSearchBody(&domain.Query{Sort: order, Page: 1, PerPage: 20}, 10))
			sort := body["sort"].([]any)[0].(map[string]any)["price"].(map[string]any)
			assert.Equal(t, dir, sort["order"])
			assert.Equal(t, "_last", sort["missing"])
		}
	})
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"bare number", `42`, 42, false},
		{"object", `{"value": 7, "relation": "eq"}`, 7, false},
		{"lower bound object", `{"value": 10000, "relation": "gte"}`, 10000, false},
		{"null", `null`, 0, false},
		{"missing", ``, 0, false},
		{"object without value", `{"relation": "eq"}`, 0, true},
		{"string", `"many"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTotal(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
