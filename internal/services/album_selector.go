package services

import (
	"strings"

	"golang.org/x/text/cases"
)

// PickBestAlbum returns the first candidate whose collection name contains the
// movie name, ignoring case. When nothing matches it trusts the catalog's own
// ranking and returns the first candidate. ok is false only for an empty list.
func PickBestAlbum(candidates []AlbumCandidate, movieName string) (AlbumCandidate, bool) {
	if len(candidates) == 0 {
		return AlbumCandidate{}, false
	}

	// Casers are stateful, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(movieName)

	for _, candidate := range candidates {
		if strings.Contains(fold.String(candidate.CollectionName), needle) {
			return candidate, true
		}
	}

	return candidates[0], true
}
