package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moviepreview/internal/cache"
)

const (
	// DefaultSessionTTL bounds how long an idle session keeps its current preview
	DefaultSessionTTL = 30 * time.Minute

	sessionKeyPrefix = "session:"
)

// CurrentPreview is what a session is currently showing and can play
type CurrentPreview struct {
	Query      string         `json:"query"`
	Result     *PreviewResult `json:"result"`
	ResolvedAt time.Time      `json:"resolved_at"`
}

// PreviewSessionService keeps the current preview per presentation session.
// It holds display state only; the pipeline itself stays stateless.
type PreviewSessionService struct {
	store cache.Cache
	ttl   time.Duration
}

// NewPreviewSessionService creates a session service backed by store
func NewPreviewSessionService(store cache.Cache, ttl time.Duration) *PreviewSessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &PreviewSessionService{
		store: store,
		ttl:   ttl,
	}
}

// Current returns the session's current preview, or nil when there is none
func (s *PreviewSessionService) Current(ctx context.Context, sessionID string) (*CurrentPreview, error) {
	data, err := s.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if data == nil {
		return nil, nil
	}

	var current CurrentPreview
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &current, nil
}

// SetCurrent replaces the session's current preview
func (s *PreviewSessionService) SetCurrent(ctx context.Context, sessionID, query string, result *PreviewResult) error {
	if result == nil {
		return s.Reset(ctx, sessionID)
	}

	data, err := json.Marshal(CurrentPreview{
		Query:      query,
		Result:     result,
		ResolvedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sessionID, err)
	}

	if err := s.store.Set(ctx, sessionKey(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return nil
}

// Reset clears the session's current preview
func (s *PreviewSessionService) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to reset session %s: %w", sessionID, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
