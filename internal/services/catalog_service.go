package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"moviepreview/internal/metrics"
)

// Catalog defaults for the iTunes Search API
const (
	DefaultCatalogBaseURL    = "https://itunes.apple.com"
	DefaultCatalogStorefront = "in"
	DefaultCatalogTimeout    = 10 * time.Second
	DefaultCatalogUserAgent  = "moviepreview/1.0"

	defaultSearchLimit = 10
	lookupLimit        = 50
)

// CatalogService is the read-only gateway to the music catalog
type CatalogService interface {
	// Search runs a term search and decodes the result list
	Search(ctx context.Context, query CatalogQuery) (*CatalogResponse, error)

	// Lookup returns the songs of a collection, decoded
	Lookup(ctx context.Context, collectionID int64) (*CatalogResponse, error)

	// SearchRaw runs a term search and returns the upstream body verbatim
	SearchRaw(ctx context.Context, query CatalogQuery) ([]byte, error)

	// LookupRaw returns the upstream lookup body verbatim
	LookupRaw(ctx context.Context, collectionID int64) ([]byte, error)
}

// CatalogQuery describes a term search
type CatalogQuery struct {
	Term      string `json:"term"`
	Entity    string `json:"entity,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// CatalogOptions configures the iTunes catalog client
type CatalogOptions struct {
	BaseURL    string
	Storefront string
	Timeout    time.Duration
	UserAgent  string
	Metrics    *metrics.Metrics
}

// itunesCatalogService implements CatalogService for the iTunes Search API
type itunesCatalogService struct {
	client     *resty.Client
	storefront string
	timeout    time.Duration
	metrics    *metrics.Metrics
}

// NewCatalogService creates a new iTunes catalog client. Zero-valued options
// fall back to the public endpoint, the India storefront and a 10s window.
func NewCatalogService(opts CatalogOptions) CatalogService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultCatalogBaseURL
	}
	if opts.Storefront == "" {
		opts.Storefront = DefaultCatalogStorefront
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCatalogTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultCatalogUserAgent
	}

	// No retries: a failed call either falls through in the pipeline or is
	// reported to the caller.
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	return &itunesCatalogService{
		client:     client,
		storefront: opts.Storefront,
		timeout:    opts.Timeout,
		metrics:    opts.Metrics,
	}
}

// Search runs a term search against the storefront
func (s *itunesCatalogService) Search(ctx context.Context, query CatalogQuery) (*CatalogResponse, error) {
	body, err := s.SearchRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return decodeCatalogResponse("search", body)
}

// Lookup fetches the songs of a collection
func (s *itunesCatalogService) Lookup(ctx context.Context, collectionID int64) (*CatalogResponse, error) {
	body, err := s.LookupRaw(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return decodeCatalogResponse("lookup", body)
}

// SearchRaw runs a term search and returns the body untouched
func (s *itunesCatalogService) SearchRaw(ctx context.Context, query CatalogQuery) ([]byte, error) {
	term := strings.TrimSpace(query.Term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	entity := query.Entity
	if entity == "" {
		entity = EntitySong
	}

	params := map[string]string{
		"term":   term,
		"media":  "music",
		"entity": entity,
		"limit":  strconv.Itoa(limit),
	}
	if query.Attribute != "" {
		params["attribute"] = query.Attribute
	}

	return s.get(ctx, "search", params)
}

// LookupRaw fetches a collection's songs and returns the body untouched
func (s *itunesCatalogService) LookupRaw(ctx context.Context, collectionID int64) ([]byte, error) {
	return s.get(ctx, "lookup", map[string]string{
		"id":     strconv.FormatInt(collectionID, 10),
		"entity": EntitySong,
		"limit":  strconv.Itoa(lookupLimit),
	})
}

// get issues one bounded GET against /<storefront>/<operation>
func (s *itunesCatalogService) get(ctx context.Context, operation string, params map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + s.storefront + "/" + operation)
	elapsed := time.Since(start)

	if err != nil {
		catalogErr := classifyTransportError(ctx, operation, err)
		outcome := metrics.OutcomeTransport
		var timeoutErr *TimeoutError
		if errors.As(catalogErr, &timeoutErr) {
			outcome = metrics.OutcomeTimeout
		}
		s.metrics.ObserveCatalogRequest(operation, outcome, elapsed)
		slog.Warn("Catalog request failed",
			"operation", operation,
			"outcome", outcome,
			"elapsed", elapsed,
			"error", err)
		return nil, catalogErr
	}

	if !resp.IsSuccess() {
		s.metrics.ObserveCatalogRequest(operation, metrics.OutcomeUpstream, elapsed)
		slog.Warn("Catalog returned non-success status",
			"operation", operation,
			"status", resp.StatusCode())
		return nil, &UpstreamError{
			Operation: operation,
			Status:    resp.StatusCode(),
			Body:      resp.Body(),
		}
	}

	s.metrics.ObserveCatalogRequest(operation, metrics.OutcomeSuccess, elapsed)
	slog.Debug("Catalog request completed",
		"operation", operation,
		"elapsed", elapsed,
		"bytes", len(resp.Body()))

	return resp.Body(), nil
}

// classifyTransportError separates a timeout from every other transport failure
func classifyTransportError(ctx context.Context, operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Operation: operation, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Operation: operation, Err: err}
	}

	return &TransportError{
		Operation: operation,
		Message:   "request failed",
		Err:       err,
	}
}

func decodeCatalogResponse(operation string, body []byte) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{
			Operation: operation,
			Message:   "invalid response body",
			Err:       err,
		}
	}
	return &resp, nil
}
