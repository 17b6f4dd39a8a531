package model

import "net/http"

type GetListMusicRequest struct {
	Genre  string `json:"genre"`
	Artist string `json:"artist"`
	Search string `json:"search"`
}

type GetListMusicResponse struct {
	Music []Music `json:"music"`
}

type GetTrendingMusicRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetTrendingMusicResponse struct {
	Music []TrendingMusic `json:"music"`
}

type GetMusicRequest struct {
	ID string `json:"id"`
}

type GetMusicResponse Music

type CreateMusicRequest struct {
	UserID    string   `json:"user_id"`
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	Album     string   `json:"album"`
	Duration  int      `json:"duration"`
	ImageURL  string   `json:"image_url"`
	AudioURL  string   `json:"audio_url"`
	SpotifyID string   `json:"spotify_id"`
	Genre     []string `json:"genre"`
}

type CreateMusicResponse Music

func (r CreateMusicResponse) StatusCode() int {
	return http.StatusCreated
}

type LikeMusicRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type LikeMusicResponse struct {
	Music Music `json:"music"`
	Liked bool  `json:"liked"`
}

type DeleteMusicRequest struct {
	ID string `json:"id"`
}

type DeleteMusicResponse struct {
	Message string `json:"message"`
}
