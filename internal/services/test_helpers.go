package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	mock.Mock
}

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

func (m *MockCatalogService) Search(ctx context.Context, query CatalogQuery) (*CatalogResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CatalogResponse), args.Error(1)
}

func (m *MockCatalogService) Lookup(ctx context.Context, collectionID int64) (*CatalogResponse, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CatalogResponse), args.Error(1)
}

func (m *MockCatalogService) SearchRaw(ctx context.Context, query CatalogQuery) ([]byte, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCatalogService) LookupRaw(ctx context.Context, collectionID int64) ([]byte, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Search queries the pipeline issues for a movie name
func AlbumSearchQuery(movieName string) CatalogQuery {
	return CatalogQuery{
		Term:      movieName + albumTermSuffix,
		Entity:    EntityAlbum,
		Attribute: AttributeAlbumTerm,
		Limit:     searchLimit,
	}
}

func SongSearchQuery(movieName string) CatalogQuery {
	return CatalogQuery{
		Term:      movieName + songTermSuffix,
		Entity:    EntitySong,
		Attribute: AttributeSongTerm,
		Limit:     searchLimit,
	}
}
