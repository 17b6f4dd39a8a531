package spotify

import (
	"context"

	"golang.org/x/oauth2"
)

type IEndpoint interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// WithToken returns a client acting on behalf of the token owner. The
	// token is refreshed when it expires.
	WithToken(ctx context.Context, token *oauth2.Token) IClient
}

type IClient interface {
	GetMe(ctx context.Context) (*User, error)
	GetTopTracks(ctx context.Context, limit int) ([]Track, error)
	GetPlaylists(ctx context.Context, limit int) ([]Playlist, error)

	// Token returns the current token, which differs from the original one
	// after a refresh.
	Token() (*oauth2.Token, error)
}
