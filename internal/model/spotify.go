package model

import "net/http"

type GetSpotifyAuthURLRequest struct {
	// Redirect answers with a redirection to the authorization page instead
	// of returning the url.
	Redirect bool `json:"redirect"`
}

type GetSpotifyAuthURLResponse struct {
	AuthURL string `json:"auth_url"`

	state    string
	redirect bool
}

func NewSpotifyAuthURLResponse(authURL, state string, redirect bool) *GetSpotifyAuthURLResponse {
	return &GetSpotifyAuthURLResponse{AuthURL: authURL, state: state, redirect: redirect}
}

func (r GetSpotifyAuthURLResponse) SessionInfo() map[string]any {
	return map[string]any{"spotify_state": r.state}
}

func (r GetSpotifyAuthURLResponse) RedirectInfo() (int, string) {
	if !r.redirect {
		return 0, ""
	}

	return http.StatusSeeOther, r.AuthURL
}

type SpotifyCallbackRequest struct {
	Code     string `json:"code"`
	State    string `json:"state"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

type SpotifyCallbackResponse struct {
	Success     bool               `json:"success"`
	Integration SpotifyIntegration `json:"integration"`
}

type GetSpotifyIntegrationRequest struct {
	UserID string `json:"user_id"`
}

type GetSpotifyIntegrationResponse SpotifyIntegration

type DisconnectSpotifyRequest struct {
	UserID string `json:"user_id"`
}

type DisconnectSpotifyResponse struct {
	Message string `json:"message"`
}

type GetSpotifyTopTracksRequest struct {
	UserID string `json:"user_id"`
}

type GetSpotifyTopTracksResponse struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

type GetSpotifyPlaylistsRequest struct {
	UserID string `json:"user_id"`
}

type GetSpotifyPlaylistsResponse struct {
	Playlists []SpotifyPlaylist `json:"playlists"`
}

type LinkSpotifyTrackRequest struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	ImageURL  string `json:"image_url"`
	SpotifyID string `json:"spotify_id"`
}

type LinkSpotifyTrackResponse Music

func (r LinkSpotifyTrackResponse) StatusCode() int {
	return http.StatusCreated
}
