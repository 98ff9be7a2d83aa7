package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the catalog and the resolution pipeline
const (
	OutcomeSuccess   = "success"
	OutcomeTimeout   = "timeout"
	OutcomeTransport = "transport"
	OutcomeUpstream  = "upstream"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Metrics holds the prometheus collectors for catalog traffic and resolutions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CatalogRequests    *prometheus.CounterVec
	CatalogDuration    *prometheus.HistogramVec
	Resolutions        *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CatalogRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviepreview_catalog_requests_total",
				Help: "Total number of catalog requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		CatalogDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moviepreview_catalog_request_duration_seconds",
				Help:    "Time spent waiting on the catalog",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviepreview_resolutions_total",
				Help: "Total number of preview resolutions by outcome",
			},
			[]string{"outcome"},
		),
		ResolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "moviepreview_resolution_duration_seconds",
				Help:    "End-to-end preview resolution time",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.CatalogRequests,
			m.CatalogDuration,
			m.Resolutions,
			m.ResolutionDuration,
		)
	}

	return m
}

// ObserveCatalogRequest records one catalog round-trip
func (m *Metrics) ObserveCatalogRequest(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(operation, outcome).Inc()
	m.CatalogDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveResolution records one finished pipeline run. outcome is the result
// source on success.
func (m *Metrics) ObserveResolution(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
	m.ResolutionDuration.Observe(elapsed.Seconds())
}
