package services

import (
	"net/url"
	"strings"
)

// Catalog entity and attribute values used by the iTunes Search API
const (
	EntityAlbum = "album"
	EntitySong  = "song"

	AttributeAlbumTerm = "albumTerm"
	AttributeSongTerm  = "songTerm"

	WrapperTypeTrack      = "track"
	WrapperTypeCollection = "collection"
)

// CatalogResponse is the envelope returned by both search and lookup
type CatalogResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []CatalogItem `json:"results"`
}

// Count returns the upstream result count, falling back to the decoded length
// when the upstream omitted resultCount.
func (r *CatalogResponse) Count() int {
	if r == nil {
		return 0
	}
	if r.ResultCount > 0 {
		return r.ResultCount
	}
	return len(r.Results)
}

// CatalogItem is a single search or lookup result. Albums and tracks share the
// envelope and are told apart by WrapperType.
type CatalogItem struct {
	WrapperType       string `json:"wrapperType"`
	Kind              string `json:"kind,omitempty"`
	CollectionID      int64  `json:"collectionId,omitempty"`
	CollectionName    string `json:"collectionName,omitempty"`
	TrackID           int64  `json:"trackId,omitempty"`
	TrackName         string `json:"trackName,omitempty"`
	ArtistName        string `json:"artistName,omitempty"`
	PreviewURL        string `json:"previewUrl,omitempty"`
	ArtworkURL100     string `json:"artworkUrl100,omitempty"`
	TrackViewURL      string `json:"trackViewUrl,omitempty"`
	CollectionViewURL string `json:"collectionViewUrl,omitempty"`
	PrimaryGenreName  string `json:"primaryGenreName,omitempty"`
	ReleaseDate       string `json:"releaseDate,omitempty"`
}

// AlbumCandidate is the subset of an album result the selector consumes
type AlbumCandidate struct {
	CollectionID   int64
	CollectionName string
}

// TrackCandidate is the subset of a track result the pipeline consumes
type TrackCandidate struct {
	TrackName      string
	ArtistName     string
	CollectionName string
	PreviewURL     string
	WrapperType    string
}

// AlbumCandidate converts the item into an album candidate
func (i CatalogItem) AlbumCandidate() AlbumCandidate {
	return AlbumCandidate{
		CollectionID:   i.CollectionID,
		CollectionName: i.CollectionName,
	}
}

// TrackCandidate converts the item into a track candidate
func (i CatalogItem) TrackCandidate() TrackCandidate {
	return TrackCandidate{
		TrackName:      i.TrackName,
		ArtistName:     i.ArtistName,
		CollectionName: i.CollectionName,
		PreviewURL:     i.PreviewURL,
		WrapperType:    i.WrapperType,
	}
}

// AlbumCandidates returns album views of every result, in upstream order
func (r *CatalogResponse) AlbumCandidates() []AlbumCandidate {
	if r == nil {
		return nil
	}
	albums := make([]AlbumCandidate, 0, len(r.Results))
	for _, item := range r.Results {
		albums = append(albums, item.AlbumCandidate())
	}
	return albums
}

// TrackCandidates returns track views of every result, in upstream order
func (r *CatalogResponse) TrackCandidates() []TrackCandidate {
	if r == nil {
		return nil
	}
	tracks := make([]TrackCandidate, 0, len(r.Results))
	for _, item := range r.Results {
		tracks = append(tracks, item.TrackCandidate())
	}
	return tracks
}

// IsPlayableTrack reports whether the candidate is a track entry with a usable
// http(s) preview URL. Used by the album lookup stage.
func (t TrackCandidate) IsPlayableTrack() bool {
	return t.WrapperType == WrapperTypeTrack && isPreviewURL(t.PreviewURL) && t.hasName()
}

// HasPreview reports whether the candidate carries any preview URL. The song
// search stage only checks this, not the wrapper type.
func (t TrackCandidate) HasPreview() bool {
	return strings.TrimSpace(t.PreviewURL) != "" && t.hasName()
}

func (t TrackCandidate) hasName() bool {
	return strings.TrimSpace(t.TrackName) != ""
}

func isPreviewURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
