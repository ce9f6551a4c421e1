package usecase

import (
	"context"

	"github.com/catalogsearch/backend/internal/domain"
)

// cancelCheckInterval is how many products are scanned between context checks
const cancelCheckInterval = 1024

// Engine evaluates queries in-process over a snapshot. It holds no state.
type Engine struct{}

// NewEngine creates a new in-process query engine
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate filters the snapshot, aggregates facets over the full match set and
// returns the requested page. A nil snapshot behaves as an empty one.
func (e *Engine) Evaluate(ctx context.Context, snapshot *domain.Snapshot, query *domain.Query) (*domain.SearchResult, error) {
	var products []domain.Product
	if snapshot != nil {
		products = snapshot.Products
	}

	matched := make([]domain.Product, 0)
	for i := range products {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if Matches(&products[i], query) {
			matched = append(matched, products[i])
		}
	}

	return &domain.SearchResult{
		Total:        len(matched),
		Page:         query.Page,
		PerPage:      query.PerPage,
		Hits:         OrderAndPage(matched, query.Sort, query.Page, query.PerPage),
		Aggregations: Aggregate(matched),
		Backend:      domain.BackendSnapshot,
	}, nil
}
