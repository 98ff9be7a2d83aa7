package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"moviepreview/internal/handlers/render"
	"moviepreview/internal/services"
)

// CatalogProxyHandler relays raw catalog requests for browser clients that
// cannot call the catalog directly
type CatalogProxyHandler struct {
	catalog services.CatalogService
}

// NewCatalogProxyHandler creates a new catalog proxy handler
func NewCatalogProxyHandler(catalog services.CatalogService) *CatalogProxyHandler {
	return &CatalogProxyHandler{catalog: catalog}
}

// Search handles GET /api/itunes/search
func (h *CatalogProxyHandler) Search(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		c.JSON(http.StatusBadRequest, render.ErrorResponse{
			Error:   render.ErrorCodeInvalidRequest,
			Message: "term is required",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, render.ErrorResponse{
				Error:   render.ErrorCodeInvalidRequest,
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	body, err := h.catalog.SearchRaw(c.Request.Context(), services.CatalogQuery{
		Term:      term,
		Entity:    c.Query("entity"),
		Attribute: c.Query("attribute"),
		Limit:     limit,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// Lookup handles GET /api/itunes/lookup
func (h *CatalogProxyHandler) Lookup(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	rawID := strings.TrimSpace(c.Query("id"))
	if rawID == "" {
		c.JSON(http.StatusBadRequest, render.ErrorResponse{
			Error:   render.ErrorCodeInvalidRequest,
			Message: "id is required",
		})
		return
	}

	collectionID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, render.ErrorResponse{
			Error:   render.ErrorCodeInvalidRequest,
			Message: "id must be an integer",
		})
		return
	}

	body, err := h.catalog.LookupRaw(c.Request.Context(), collectionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// writeError forwards upstream responses as they came and maps every other
// failure through the shared problem table
func (h *CatalogProxyHandler) writeError(c *gin.Context, err error) {
	var upstreamErr *services.UpstreamError
	if errors.As(err, &upstreamErr) {
		c.Data(upstreamErr.Status, "application/json", upstreamErr.Body)
		return
	}

	slog.Warn("Catalog proxy request failed", "path", c.Request.URL.Path, "error", err)
	render.RenderError(c, err)
}
