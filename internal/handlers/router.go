package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"moviepreview/internal/services"
)

// RouterConfig carries everything the HTTP surface is built from
type RouterConfig struct {
	Catalog    services.CatalogService
	Resolver   *services.PreviewResolutionService
	Sessions   *services.PreviewSessionService
	Gatherer   prometheus.Gatherer
	Storefront string
	SessionTTL time.Duration
}

// NewRouter wires every route onto a new gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET("/health", Health)
	if cfg.Gatherer != nil {
		router.GET("/metrics", Metrics(cfg.Gatherer))
	}

	proxy := NewCatalogProxyHandler(cfg.Catalog)
	preview := NewPreviewHandler(cfg.Resolver, cfg.Sessions)
	index := NewIndexHandler(cfg.Storefront)

	api := router.Group("/api")
	{
		itunes := api.Group("/itunes")
		itunes.GET("/search", proxy.Search)
		itunes.GET("/lookup", proxy.Lookup)

		previews := api.Group("/preview", SessionMiddleware(cfg.SessionTTL))
		previews.GET("", preview.ResolvePreview)
		previews.GET("/current", preview.CurrentPreview)
		previews.DELETE("/current", preview.ResetPreview)
	}

	router.GET("/", SessionMiddleware(cfg.SessionTTL), index.Index)
	router.NoRoute(index.NoRoute)

	return router
}

// RequestLogger logs one line per request with slog
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"clientIP", c.ClientIP())
	}
}
