package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"moviepreview/internal/metrics"
)

// PreviewSource tells which pipeline stage produced a result
type PreviewSource string

const (
	SourceAlbumLookup PreviewSource = "album_lookup"
	SourceSongSearch  PreviewSource = "song_search"
)

// Search term suffixes. The song search is pinned to Tamil film music.
const (
	albumTermSuffix = " original motion picture soundtrack"
	songTermSuffix  = " song tamil"
	searchLimit     = 10
)

// PreviewResult is a resolved, playable preview. It is either fully populated
// or not returned at all.
type PreviewResult struct {
	Source     PreviewSource `json:"source"`
	Album      string        `json:"album,omitempty"`
	Song       string        `json:"song"`
	Artist     string        `json:"artist"`
	PreviewURL string        `json:"previewUrl"`
	Debug      string        `json:"debug"`
}

// PreviewResolutionService turns a movie name into a single preview
type PreviewResolutionService struct {
	catalog        CatalogService
	metrics        *metrics.Metrics
	strictFallback bool
}

// ResolutionOption customizes a PreviewResolutionService
type ResolutionOption func(*PreviewResolutionService)

// WithMetrics records resolution outcomes
func WithMetrics(m *metrics.Metrics) ResolutionOption {
	return func(s *PreviewResolutionService) {
		s.metrics = m
	}
}

// WithStrictFallback makes the song search stage require wrapperType "track",
// like the album lookup stage does. Off by default.
func WithStrictFallback(strict bool) ResolutionOption {
	return func(s *PreviewResolutionService) {
		s.strictFallback = strict
	}
}

// NewPreviewResolutionService creates a new resolution pipeline
func NewPreviewResolutionService(catalog CatalogService, opts ...ResolutionOption) *PreviewResolutionService {
	s := &PreviewResolutionService{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolvePreview runs album search, album lookup and the song search fallback
// in that order and returns the first playable track. A nil result with a nil
// error means every stage completed without a usable preview. Catalog
// failures abort the run and are returned wrapped.
func (s *PreviewResolutionService) ResolvePreview(ctx context.Context, movieName string) (*PreviewResult, error) {
	movieName = strings.TrimSpace(movieName)
	if movieName == "" {
		s.metrics.ObserveResolution(metrics.OutcomeInvalid, 0)
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	result, err := s.resolve(ctx, movieName)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		s.metrics.ObserveResolution(metrics.OutcomeError, elapsed)
		slog.Error("Preview resolution failed", "movie", movieName, "error", err)
	case result == nil:
		s.metrics.ObserveResolution(metrics.OutcomeNotFound, elapsed)
		slog.Info("No preview found", "movie", movieName, "elapsed", elapsed)
	default:
		s.metrics.ObserveResolution(string(result.Source), elapsed)
		slog.Info("Resolved preview",
			"movie", movieName,
			"source", result.Source,
			"song", result.Song,
			"album", result.Album,
			"elapsed", elapsed)
	}

	return result, err
}

func (s *PreviewResolutionService) resolve(ctx context.Context, movieName string) (*PreviewResult, error) {
	result, err := s.resolveFromAlbum(ctx, movieName)
	if err != nil || result != nil {
		return result, err
	}
	return s.resolveFromSongSearch(ctx, movieName)
}

// resolveFromAlbum covers the album search, selection and lookup stages. A
// nil result with a nil error sends the caller to the fallback.
func (s *PreviewResolutionService) resolveFromAlbum(ctx context.Context, movieName string) (*PreviewResult, error) {
	albumSearch, err := s.catalog.Search(ctx, CatalogQuery{
		Term:      movieName + albumTermSuffix,
		Entity:    EntityAlbum,
		Attribute: AttributeAlbumTerm,
		Limit:     searchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("album search: %w", err)
	}

	albums := albumSearch.AlbumCandidates()
	if len(albums) == 0 {
		slog.Debug("Album search returned no results", "movie", movieName)
		return nil, nil
	}

	album, ok := PickBestAlbum(albums, movieName)
	if !ok || album.CollectionID == 0 {
		slog.Debug("Selected album has no collection id", "movie", movieName)
		return nil, nil
	}

	lookup, err := s.catalog.Lookup(ctx, album.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("album lookup %d: %w", album.CollectionID, err)
	}

	var playable []TrackCandidate
	for _, track := range lookup.TrackCandidates() {
		if track.IsPlayableTrack() {
			playable = append(playable, track)
		}
	}
	if len(playable) == 0 {
		slog.Debug("Album has no playable tracks",
			"movie", movieName,
			"collectionID", album.CollectionID)
		return nil, nil
	}

	track := playable[0]
	return &PreviewResult{
		Source:     SourceAlbumLookup,
		Album:      album.CollectionName,
		Song:       track.TrackName,
		Artist:     track.ArtistName,
		PreviewURL: track.PreviewURL,
		Debug:      fmt.Sprintf("AlbumSearch=%d, AlbumTracks=%d", albumSearch.Count(), len(playable)),
	}, nil
}

// resolveFromSongSearch is the broader, noisier last stage
func (s *PreviewResolutionService) resolveFromSongSearch(ctx context.Context, movieName string) (*PreviewResult, error) {
	songSearch, err := s.catalog.Search(ctx, CatalogQuery{
		Term:      movieName + songTermSuffix,
		Entity:    EntitySong,
		Attribute: AttributeSongTerm,
		Limit:     searchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("song search: %w", err)
	}

	var usable []TrackCandidate
	for _, track := range songSearch.TrackCandidates() {
		if s.strictFallback && !track.IsPlayableTrack() {
			continue
		}
		if track.HasPreview() {
			usable = append(usable, track)
		}
	}
	if len(usable) == 0 {
		return nil, nil
	}

	track := usable[0]
	return &PreviewResult{
		Source:     SourceSongSearch,
		Album:      track.CollectionName,
		Song:       track.TrackName,
		Artist:     track.ArtistName,
		PreviewURL: track.PreviewURL,
		Debug:      fmt.Sprintf("SongSearch=%d", len(usable)),
	}, nil
}

// IsCatalogFailure reports whether err is an infrastructure failure rather than
// an input problem
func IsCatalogFailure(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}
