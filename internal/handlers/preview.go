package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"moviepreview/internal/handlers/render"
	"moviepreview/internal/services"
)

// PreviewHandler serves movie preview resolution and the session's current
// preview
type PreviewHandler struct {
	resolver *services.PreviewResolutionService
	sessions *services.PreviewSessionService
}

// NewPreviewHandler creates a new preview handler. sessions may be nil, in
// which case nothing is remembered between requests.
func NewPreviewHandler(resolver *services.PreviewResolutionService, sessions *services.PreviewSessionService) *PreviewHandler {
	return &PreviewHandler{
		resolver: resolver,
		sessions: sessions,
	}
}

// ResolvePreview handles GET /api/preview?movie=
func (h *PreviewHandler) ResolvePreview(c *gin.Context) {
	ctx := c.Request.Context()
	movie := strings.TrimSpace(c.Query("movie"))
	sessionID := SessionID(c)

	// A new query always drops whatever the session was showing
	if movie != "" && h.sessions != nil && sessionID != "" {
		if err := h.sessions.Reset(ctx, sessionID); err != nil {
			slog.Warn("Failed to reset session", "session", sessionID, "error", err)
		}
	}

	result, err := h.resolver.ResolvePreview(ctx, movie)
	if err != nil {
		render.RenderError(c, err)
		return
	}

	if result != nil && h.sessions != nil && sessionID != "" {
		if err := h.sessions.SetCurrent(ctx, sessionID, movie, result); err != nil {
			slog.Warn("Failed to store current preview", "session", sessionID, "error", err)
		}
	}

	render.RenderPreview(c, result)
}

// CurrentPreview handles GET /api/preview/current
func (h *PreviewHandler) CurrentPreview(c *gin.Context) {
	var current *services.CurrentPreview
	if h.sessions != nil {
		var err error
		current, err = h.sessions.Current(c.Request.Context(), SessionID(c))
		if err != nil {
			slog.Error("Failed to load current preview", "session", SessionID(c), "error", err)
			render.RenderError(c, err)
			return
		}
	}

	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"found":   false,
			"message": "Nothing is playing",
		})
		return
	}

	c.JSON(http.StatusOK, current)
}

// ResetPreview handles DELETE /api/preview/current
func (h *PreviewHandler) ResetPreview(c *gin.Context) {
	if h.sessions != nil {
		if err := h.sessions.Reset(c.Request.Context(), SessionID(c)); err != nil {
			slog.Error("Failed to reset current preview", "session", SessionID(c), "error", err)
			render.RenderError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
