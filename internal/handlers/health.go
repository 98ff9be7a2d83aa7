package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Health handles GET /health. It only reports that the process is serving;
// catalog reachability is never probed.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Metrics exposes the collectors registered with gatherer
func Metrics(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
