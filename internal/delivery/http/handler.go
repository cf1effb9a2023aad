package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skinsift/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skinsift-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the flat product table for the configured search term.
func (h *Handler) ListProducts(c *gin.Context) {
	catalog, err := h.catalog.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fetchedAt": catalog.FetchedAt,
		"count":     len(catalog.Products),
		"products":  catalog.Products,
	})
}

// ListIngredientGroups returns the ranked ingredient summary rows.
func (h *Handler) ListIngredientGroups(c *gin.Context) {
	catalog, err := h.catalog.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fetchedAt": catalog.FetchedAt,
		"count":     len(catalog.Groups),
		"groups":    catalog.Groups,
	})
}

// RefreshCatalog drops the cached catalog and re-runs the pipeline.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	catalog, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fetchedAt": catalog.FetchedAt,
		"products":  len(catalog.Products),
		"groups":    len(catalog.Groups),
	})
}
