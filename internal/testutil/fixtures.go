package testutil

import (
	"encoding/json"
	"net/http"
	"time"
)

// Fixture values shared by the catalog, pipeline and handler tests
const (
	LeoCollectionID    = 1
	LeoAlbumName       = "Leo (Original Motion Picture Soundtrack)"
	LeoTrackName       = "Naa Ready"
	LeoArtistName      = "Anirudh"
	LeoPreviewURL      = "https://x/1.m4a"
	FallbackPreviewURL = "https://x/2.m4a"
)

// CatalogAlbum creates an album search result
func CatalogAlbum(collectionID int64, collectionName string) map[string]interface{} {
	return map[string]interface{}{
		"wrapperType":    "collection",
		"collectionType": "Album",
		"collectionId":   collectionID,
		"collectionName": collectionName,
		"artistName":     "Various Artists",
	}
}

// CatalogTrack creates a track result. An empty previewURL leaves the field out.
func CatalogTrack(trackName, artistName, collectionName, previewURL string) map[string]interface{} {
	track := map[string]interface{}{
		"wrapperType":    "track",
		"kind":           "song",
		"trackId":        1000,
		"trackName":      trackName,
		"artistName":     artistName,
		"collectionName": collectionName,
	}
	if previewURL != "" {
		track["previewUrl"] = previewURL
	}
	return track
}

// CatalogResponse wraps results in the catalog's envelope
func CatalogResponse(results ...map[string]interface{}) map[string]interface{} {
	if results == nil {
		results = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"resultCount": len(results),
		"results":     results,
	}
}

// JSONHandler answers every request with status and the JSON encoding of body.
// The catalog labels its JSON as text/javascript, so the fixture does too.
func JSONHandler(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// RawHandler answers every request with status and body verbatim
func RawHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// SlowHandler blocks until delay passes or the client gives up
func SlowHandler(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	}
}

// SearchHandler routes search requests by entity so one mock server can
// answer both the album search and the song search
func SearchHandler(albums, songs map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := songs
		if r.URL.Query().Get("entity") == "album" {
			body = albums
		}
		JSONHandler(http.StatusOK, body)(w, r)
	}
}
