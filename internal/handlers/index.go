package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"moviepreview/internal/templates"
)

// IndexHandler serves the chat page for the root and every unmatched GET
type IndexHandler struct {
	page templates.IndexPage
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(storefront string) *IndexHandler {
	return &IndexHandler{
		page: templates.IndexPage{
			Title:      "Movie Song Preview",
			Storefront: storefront,
		},
	}
}

// Index renders the chat page
func (h *IndexHandler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := templates.Render(&buf, "index", h.page); err != nil {
		slog.Error("Failed to render index page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render error"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// NoRoute falls back to the chat page for browser navigation and answers
// JSON 404s for unknown API paths and non-GET methods
func (h *IndexHandler) NoRoute(c *gin.Context) {
	method := c.Request.Method
	if (method == http.MethodGet || method == http.MethodHead) && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		h.Index(c)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
