package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/catalogsearch/backend/internal/colors"
	"github.com/catalogsearch/backend/internal/domain"
)

const (
	serviceName    = "catalogsearch-backend"
	serviceVersion = "1.0.0"

	// statusClientClosedRequest is reported when the caller goes away mid-search
	statusClientClosedRequest = 499
)

// SearchUsecase is the search surface the handlers depend on
type SearchUsecase interface {
	Search(ctx context.Context, query *domain.Query) (*domain.SearchResult, error)
	BackendAlive(ctx context.Context) bool
	Snapshot() *domain.Snapshot
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search SearchUsecase
	logger zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(search SearchUsecase, logger zerolog.Logger) *Handler {
	return &Handler{
		search: search,
		logger: logger.With().Str("component", "http").Logger(),
	}
}

// searchParams is the query string accepted by the search endpoints
type searchParams struct {
	Q        string   `form:"q"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Size     string   `form:"size"`
	Color    string   `form:"color"`
	Page     int      `form:"page,default=1" binding:"min=1"`
	PerPage  int      `form:"per_page,default=20" binding:"min=1,max=100"`
	Sort     string   `form:"sort"`
}

func (p *searchParams) toQuery() (*domain.Query, error) {
	order, err := domain.ParseSortOrder(p.Sort)
	if err != nil {
		return nil, err
	}
	q := &domain.Query{
		Text:     p.Q,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Size:     p.Size,
		Color:    p.Color,
		Page:     p.Page,
		PerPage:  p.PerPage,
		Sort:     order,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}

	if h.search != nil {
		snap := h.search.Snapshot()
		snapshotInfo := gin.H{"documents": snap.Len()}
		if snap != nil && !snap.LoadedAt.IsZero() {
			snapshotInfo["loaded_at"] = snap.LoadedAt.UTC().Format(time.RFC3339)
			snapshotInfo["source"] = snap.Source
		}
		response["snapshot"] = snapshotInfo
		response["elasticsearch"] = h.search.BackendAlive(c.Request.Context())
	}

	c.JSON(http.StatusOK, response)
}

// Search handles product search requests
func (h *Handler) Search(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Search service not configured",
		})
		return
	}

	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: " + err.Error(),
		})
		return
	}

	query, err := params.toQuery()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// InferColor reports the color inferred from a product URL
func (h *Handler) InferColor(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   rawURL,
		"color": colors.Infer(rawURL),
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search timed out"})
	default:
		h.logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
