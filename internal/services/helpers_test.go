package services

// Test data builders
func albumResponse(albums ...CatalogItem) *CatalogResponse {
	return &CatalogResponse{ResultCount: len(albums), Results: albums}
}

func trackResponse(tracks ...CatalogItem) *CatalogResponse {
	return &CatalogResponse{ResultCount: len(tracks), Results: tracks}
}

func testAlbum(collectionID int64, name string) CatalogItem {
	return CatalogItem{
		WrapperType:    WrapperTypeCollection,
		CollectionID:   collectionID,
		CollectionName: name,
	}
}

func testTrack(trackName, artistName, collectionName, previewURL string) CatalogItem {
	return CatalogItem{
		WrapperType:    WrapperTypeTrack,
		Kind:           "song",
		TrackName:      trackName,
		ArtistName:     artistName,
		CollectionName: collectionName,
		PreviewURL:     previewURL,
	}
}
