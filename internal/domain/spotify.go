package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/api/spotify"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	spotifyStateKey  = "spotify_state"
	spotifyItemLimit = 20
)

type SpotifyDomain interface {
	AuthURL(context.Context, *model.GetSpotifyAuthURLRequest) (*model.GetSpotifyAuthURLResponse, error)
	Callback(context.Context, *model.SpotifyCallbackRequest) (*model.SpotifyCallbackResponse, error)
	Get(context.Context, *model.GetSpotifyIntegrationRequest) (*model.GetSpotifyIntegrationResponse, error)
	Disconnect(context.Context, *model.DisconnectSpotifyRequest) (*model.DisconnectSpotifyResponse, error)
	TopTracks(context.Context, *model.GetSpotifyTopTracksRequest) (*model.GetSpotifyTopTracksResponse, error)
	Playlists(context.Context, *model.GetSpotifyPlaylistsRequest) (*model.GetSpotifyPlaylistsResponse, error)
	LinkTrack(context.Context, *model.LinkSpotifyTrackRequest) (*model.LinkSpotifyTrackResponse, error)
}

type spotifyDomain struct {
	spotifyRepo repository.SpotifyRepository
	musicRepo   repository.MusicRepository
	endpoint    spotify.IEndpoint
}

func NewSpotifyDomain(
	spotifyRepo repository.SpotifyRepository,
	musicRepo repository.MusicRepository,
	endpoint spotify.IEndpoint,
) *spotifyDomain {
	return &spotifyDomain{
		spotifyRepo: spotifyRepo,
		musicRepo:   musicRepo,
		endpoint:    endpoint,
	}
}

func (d *spotifyDomain) AuthURL(
	ctx context.Context, req *model.GetSpotifyAuthURLRequest,
) (*model.GetSpotifyAuthURLResponse, error) {
	state := uuid.NewString()
	return model.NewSpotifyAuthURLResponse(d.endpoint.AuthCodeURL(state), state, req.Redirect), nil
}

// Callback finishes the authorization code flow started by AuthURL. The
// state must match the one kept in the session of the caller.
func (d *spotifyDomain) Callback(
	ctx context.Context, req *model.SpotifyCallbackRequest,
) (*model.SpotifyCallbackResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Authorization code is required")
	}

	userType := entity.SpotifyUserType(req.UserType)
	switch userType {
	case "":
		userType = entity.SpotifyListener
	case entity.SpotifyArtist, entity.SpotifyListener:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid user type %s", req.UserType)
	}

	if err := checkSpotifyState(ctx, req.State); err != nil {
		return nil, err
	}

	token, err := d.endpoint.Exchange(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange spotify code: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Failed to authenticate with Spotify")
	}

	me, err := d.endpoint.WithToken(ctx, token).GetMe(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get spotify profile: %v", err)
		return nil, errorx.New(errorx.BadResponse, "Cannot get the Spotify profile")
	}

	err = d.spotifyRepo.Upsert(ctx, &entity.SpotifyIntegration{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       userID,
		UserType:     userType,
		SpotifyID:    me.ID,
		DisplayName:  me.DisplayName,
		Email:        me.Email,
		ProfileImage: me.ImageURL(),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
		Followers:    me.Followers.Total,
		LinkedTracks: entity.Array[string]{},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save spotify integration: %v", err)
		return nil, errorx.Unknown
	}

	integration, err := d.spotifyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Spotify integration not found")
	}

	return &model.SpotifyCallbackResponse{
		Success:     true,
		Integration: model.ConvertSpotifyIntegration(integration),
	}, nil
}

func (d *spotifyDomain) Get(
	ctx context.Context, req *model.GetSpotifyIntegrationRequest,
) (*model.GetSpotifyIntegrationResponse, error) {
	integration, err := d.getIntegration(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	resp := model.GetSpotifyIntegrationResponse(model.ConvertSpotifyIntegration(integration))
	return &resp, nil
}

func (d *spotifyDomain) Disconnect(
	ctx context.Context, req *model.DisconnectSpotifyRequest,
) (*model.DisconnectSpotifyResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := d.spotifyRepo.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotConnected, "Not connected to Spotify")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete spotify integration: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DisconnectSpotifyResponse{Message: "Spotify disconnected"}, nil
}

func (d *spotifyDomain) TopTracks(
	ctx context.Context, req *model.GetSpotifyTopTracksRequest,
) (*model.GetSpotifyTopTracksResponse, error) {
	integration, err := d.getIntegration(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	client := d.endpoint.WithToken(ctx, spotifyToken(integration))
	tracks, err := client.GetTopTracks(ctx, spotifyItemLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get spotify top tracks: %v", err)
		return nil, errorx.New(errorx.BadResponse, "Failed to fetch top tracks")
	}

	d.persistToken(ctx, integration, client)

	if tracks == nil {
		tracks = []spotify.Track{}
	}

	return &model.GetSpotifyTopTracksResponse{Tracks: tracks}, nil
}

func (d *spotifyDomain) Playlists(
	ctx context.Context, req *model.GetSpotifyPlaylistsRequest,
) (*model.GetSpotifyPlaylistsResponse, error) {
	integration, err := d.getIntegration(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	client := d.endpoint.WithToken(ctx, spotifyToken(integration))
	playlists, err := client.GetPlaylists(ctx, spotifyItemLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get spotify playlists: %v", err)
		return nil, errorx.New(errorx.BadResponse, "Failed to fetch playlists")
	}

	d.persistToken(ctx, integration, client)

	if playlists == nil {
		playlists = []spotify.Playlist{}
	}

	return &model.GetSpotifyPlaylistsResponse{Playlists: playlists}, nil
}

// LinkTrack creates a music from a spotify track and remembers it in the
// integration of the uploader.
func (d *spotifyDomain) LinkTrack(
	ctx context.Context, req *model.LinkSpotifyTrackRequest,
) (*model.LinkSpotifyTrackResponse, error) {
	integration, err := d.getIntegration(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.SpotifyID == "" {
		return nil, errorx.New(errorx.BadRequest, "Spotify id is required")
	}

	music, err := createMusic(ctx, d.musicRepo, &entity.Music{
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		ImageURL:   req.ImageURL,
		UploadedBy: integration.UserID,
	}, req.SpotifyID)
	if err != nil {
		return nil, err
	}

	linkedTracks := append(entity.Array[string]{}, integration.LinkedTracks...)
	linkedTracks = append(linkedTracks, req.SpotifyID)
	if err := d.spotifyRepo.UpdateLinkedTracks(ctx, integration.UserID, linkedTracks); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update linked tracks: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.LinkSpotifyTrackResponse(model.ConvertMusic(music))
	return &resp, nil
}

func (d *spotifyDomain) getIntegration(ctx context.Context, pathUserID string) (*entity.SpotifyIntegration, error) {
	userID, err := resolveActor(ctx, pathUserID)
	if err != nil {
		return nil, err
	}

	integration, err := d.spotifyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotConnected, "Not connected to Spotify")
		}

		xcontext.Logger(ctx).Errorf("Cannot get spotify integration: %v", err)
		return nil, errorx.Unknown
	}

	return integration, nil
}

// persistToken stores the token again when the client refreshed it. A
// failure here does not fail the request.
func (d *spotifyDomain) persistToken(
	ctx context.Context, integration *entity.SpotifyIntegration, client spotify.IClient,
) {
	token, err := client.Token()
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get spotify token: %v", err)
		return
	}

	if token.AccessToken == integration.AccessToken {
		return
	}

	err = d.spotifyRepo.UpdateToken(ctx, integration.UserID, entity.SpotifyIntegration{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot persist refreshed spotify token: %v", err)
	}
}

func spotifyToken(integration *entity.SpotifyIntegration) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  integration.AccessToken,
		RefreshToken: integration.RefreshToken,
		TokenType:    integration.TokenType,
		Expiry:       integration.ExpiresAt,
	}
}

// checkSpotifyState compares the state with the one saved in the session and
// consumes it.
func checkSpotifyState(ctx context.Context, state string) error {
	store := xcontext.SessionStore(ctx)
	req := xcontext.HTTPRequest(ctx)
	if store == nil || req == nil || state == "" {
		return errorx.New(errorx.BadRequest, "Invalid state")
	}

	session, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get session: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid state")
	}

	expected, ok := session.Values[spotifyStateKey].(string)
	if !ok || expected != state {
		return errorx.New(errorx.BadRequest, "Invalid state")
	}

	delete(session.Values, spotifyStateKey)
	if w := xcontext.HTTPWriter(ctx); w != nil {
		if err := session.Save(req, w); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot save session: %v", err)
		}
	}

	return nil
}
