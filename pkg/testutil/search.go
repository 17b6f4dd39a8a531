package testutil

import (
	"context"

	"github.com/lyricroom/backend/internal/domain/search"
)

type MockSearchIndexer struct {
	IndexLyricsFunc  func(ctx context.Context, id string, data search.LyricsData) error
	DeleteLyricsFunc func(ctx context.Context, id string) error
	SearchLyricsFunc func(ctx context.Context, query string, offset, limit int) ([]string, error)
}

func (m *MockSearchIndexer) IndexLyrics(ctx context.Context, id string, data search.LyricsData) error {
	if m.IndexLyricsFunc != nil {
		return m.IndexLyricsFunc(ctx, id, data)
	}

	return nil
}

func (m *MockSearchIndexer) DeleteLyrics(ctx context.Context, id string) error {
	if m.DeleteLyricsFunc != nil {
		return m.DeleteLyricsFunc(ctx, id)
	}

	return nil
}

func (m *MockSearchIndexer) SearchLyrics(ctx context.Context, query string, offset, limit int) ([]string, error) {
	if m.SearchLyricsFunc != nil {
		return m.SearchLyricsFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (m *MockSearchIndexer) Close() {}
