package model

import "net/http"

type GetLyricsByMusicRequest struct {
	MusicID string `json:"music_id"`
}

type GetLyricsByMusicResponse Lyrics

type SearchLyricsRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchLyricsResponse struct {
	Lyrics []Lyrics `json:"lyrics"`
}

type UpsertLyricsRequest struct {
	MusicID      string        `json:"music_id"`
	Title        string        `json:"title"`
	Artist       string        `json:"artist"`
	Lyrics       string        `json:"lyrics"`
	Language     string        `json:"language"`
	Synced       bool          `json:"synced"`
	SyncedLyrics []SyncedLine  `json:"synced_lyrics"`
	Translations []Translation `json:"translations"`
	Source       string        `json:"source"`
}

type UpsertLyricsResponse Lyrics

func (r UpsertLyricsResponse) StatusCode() int {
	return http.StatusCreated
}

type GetSyncedLyricsRequest struct {
	ID string `json:"id"`
}

type GetSyncedLyricsResponse struct {
	Title        string       `json:"title"`
	Artist       string       `json:"artist"`
	SyncedLyrics []SyncedLine `json:"synced_lyrics"`
}
