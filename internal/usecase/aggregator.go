package usecase

import (
	"sort"

	"github.com/catalogsearch/backend/internal/domain"
)

// bucketCounter counts keys while remembering first-occurrence order
type bucketCounter struct {
	index   map[string]int
	buckets []domain.Bucket
}

func newBucketCounter() *bucketCounter {
	return &bucketCounter{
		index:   make(map[string]int),
		buckets: []domain.Bucket{},
	}
}

func (c *bucketCounter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.buckets[i].DocCount++
		return
	}
	c.index[key] = len(c.buckets)
	c.buckets = append(c.buckets, domain.Bucket{Key: key, DocCount: 1})
}

// Aggregate computes size and color buckets plus price statistics over the
// full filtered set. Buckets are in first-occurrence order.
func Aggregate(products []domain.Product) domain.Facets {
	sizes := newBucketCounter()
	colors := newBucketCounter()

	var stats domain.PriceStats
	var min, max, sum float64

	for i := range products {
		p := &products[i]
		for _, s := range p.Sizes {
			sizes.add(s)
		}
		colors.add(p.Color)

		if p.Price == nil {
			continue
		}
		price := *p.Price
		if stats.Count == 0 || price < min {
			min = price
		}
		if stats.Count == 0 || price > max {
			max = price
		}
		sum += price
		stats.Count++
	}

	if stats.Count > 0 {
		avg := sum / float64(stats.Count)
		stats.Min = &min
		stats.Max = &max
		stats.Avg = &avg
	}

	return domain.Facets{
		Sizes:      domain.BucketAggregation{Buckets: sizes.buckets},
		Colors:     domain.BucketAggregation{Buckets: colors.buckets},
		PriceStats: stats,
	}
}

// SortBuckets returns a copy of buckets ordered by descending count, then key.
// Used where a deterministic presentation order is required.
func SortBuckets(buckets []domain.Bucket) []domain.Bucket {
	sorted := make([]domain.Bucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DocCount != sorted[j].DocCount {
			return sorted[i].DocCount > sorted[j].DocCount
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
