package testutil

import (
	"context"

	"github.com/lyricroom/backend/pkg/api/spotify"
	"golang.org/x/oauth2"
)

type MockSpotifyEndpoint struct {
	AuthCodeURLFunc func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (*oauth2.Token, error)
	WithTokenFunc   func(ctx context.Context, token *oauth2.Token) spotify.IClient
}

func (m *MockSpotifyEndpoint) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}

	return "https://accounts.spotify.com/authorize?state=" + state
}

func (m *MockSpotifyEndpoint) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}

	return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}, nil
}

func (m *MockSpotifyEndpoint) WithToken(ctx context.Context, token *oauth2.Token) spotify.IClient {
	if m.WithTokenFunc != nil {
		return m.WithTokenFunc(ctx, token)
	}

	return &MockSpotifyClient{CurrentToken: token}
}

type MockSpotifyClient struct {
	CurrentToken     *oauth2.Token
	GetMeFunc        func(ctx context.Context) (*spotify.User, error)
	GetTopTracksFunc func(ctx context.Context, limit int) ([]spotify.Track, error)
	GetPlaylistsFunc func(ctx context.Context, limit int) ([]spotify.Playlist, error)
}

func (m *MockSpotifyClient) GetMe(ctx context.Context) (*spotify.User, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx)
	}

	return &spotify.User{ID: "spotify-user", DisplayName: "Spotify User"}, nil
}

func (m *MockSpotifyClient) GetTopTracks(ctx context.Context, limit int) ([]spotify.Track, error) {
	if m.GetTopTracksFunc != nil {
		return m.GetTopTracksFunc(ctx, limit)
	}

	return nil, nil
}

func (m *MockSpotifyClient) GetPlaylists(ctx context.Context, limit int) ([]spotify.Playlist, error) {
	if m.GetPlaylistsFunc != nil {
		return m.GetPlaylistsFunc(ctx, limit)
	}

	return nil, nil
}

func (m *MockSpotifyClient) Token() (*oauth2.Token, error) {
	return m.CurrentToken, nil
}
