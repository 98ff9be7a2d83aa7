package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickBestAlbum(t *testing.T) {
	leo := AlbumCandidate{CollectionID: 1, CollectionName: "Leo (Original Motion Picture Soundtrack)"}
	jailer := AlbumCandidate{CollectionID: 2, CollectionName: "Jailer (Original Motion Picture Soundtrack)"}
	vikram := AlbumCandidate{CollectionID: 3, CollectionName: "VIKRAM (Original Motion Picture Soundtrack)"}
	leoDeluxe := AlbumCandidate{CollectionID: 4, CollectionName: "Leo (Deluxe Edition)"}

	tests := []struct {
		name       string
		candidates []AlbumCandidate
		movieName  string
		want       AlbumCandidate
		wantOK     bool
	}{
		{
			name:       "empty list",
			candidates: nil,
			movieName:  "Leo",
			wantOK:     false,
		},
		{
			name:       "substring match beats position",
			candidates: []AlbumCandidate{jailer, leo},
			movieName:  "Leo",
			want:       leo,
			wantOK:     true,
		},
		{
			name:       "match is case-insensitive",
			candidates: []AlbumCandidate{jailer, vikram},
			movieName:  "vikram",
			want:       vikram,
			wantOK:     true,
		},
		{
			name:       "first match wins",
			candidates: []AlbumCandidate{jailer, leo, leoDeluxe},
			movieName:  "LEO",
			want:       leo,
			wantOK:     true,
		},
		{
			name:       "no match falls back to first candidate",
			candidates: []AlbumCandidate{jailer, vikram},
			movieName:  "Master",
			want:       jailer,
			wantOK:     true,
		},
		{
			name:       "candidate without name is still eligible as fallback",
			candidates: []AlbumCandidate{{CollectionID: 9}},
			movieName:  "Leo",
			want:       AlbumCandidate{CollectionID: 9},
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickBestAlbum(tt.candidates, tt.movieName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Contains(t, tt.candidates, got)
			}
		})
	}
}

func TestPickBestAlbum_UnicodeFolding(t *testing.T) {
	candidates := []AlbumCandidate{
		{CollectionID: 1, CollectionName: "Something Else"},
		{CollectionID: 2, CollectionName: "ÉTÉ INDIEN (Bande Originale)"},
	}

	got, ok := PickBestAlbum(candidates, "été indien")
	assert.True(t, ok)
	assert.Equal(t, int64(2), got.CollectionID)
}
