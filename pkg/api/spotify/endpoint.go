package spotify

import (
	"context"
	"strconv"

	"github.com/lyricroom/backend/config"
	"github.com/lyricroom/backend/pkg/api"
	"golang.org/x/oauth2"
)

type Endpoint struct {
	oauth2Config *oauth2.Config
	apiBaseURL   string
}

func New(cfg config.SpotifyConfigs) *Endpoint {
	return &Endpoint{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiBaseURL: cfg.APIBaseURL,
	}
}

func (e *Endpoint) AuthCodeURL(state string) string {
	return e.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (e *Endpoint) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return e.oauth2Config.Exchange(ctx, code)
}

func (e *Endpoint) WithToken(ctx context.Context, token *oauth2.Token) IClient {
	tokenSource := oauth2.ReuseTokenSource(token, e.oauth2Config.TokenSource(ctx, token))
	return &client{
		tokenSource:  tokenSource,
		apiGenerator: api.NewGenerator(e.apiBaseURL, oauth2.NewClient(ctx, tokenSource)),
	}
}

type client struct {
	tokenSource  oauth2.TokenSource
	apiGenerator api.Generator
}

func (c *client) Token() (*oauth2.Token, error) {
	return c.tokenSource.Token()
}

func (c *client) GetMe(ctx context.Context) (*User, error) {
	resp, err := c.apiGenerator.New("/me").GET(ctx)
	if err != nil {
		return nil, err
	}

	var user User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *client) GetTopTracks(ctx context.Context, limit int) ([]Track, error) {
	resp, err := c.apiGenerator.New("/me/top/tracks").
		Query(api.Parameter{"limit": strconv.Itoa(limit)}).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	var result page[Track]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}

func (c *client) GetPlaylists(ctx context.Context, limit int) ([]Playlist, error) {
	resp, err := c.apiGenerator.New("/me/playlists").
		Query(api.Parameter{"limit": strconv.Itoa(limit)}).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	var result page[Playlist]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}
