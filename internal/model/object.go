package model

import "github.com/lyricroom/backend/pkg/api/spotify"

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Profile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Avatar         string `json:"avatar"`
	Bio            string `json:"bio"`
	Role           string `json:"role"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	PostsCount     int64  `json:"posts_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type ShortProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Post struct {
	ID            string       `json:"id"`
	AuthorID      string       `json:"author_id"`
	Author        ShortProfile `json:"author"`
	Content       string       `json:"content"`
	Image         string       `json:"image"`
	Likes         int64        `json:"likes"`
	Shares        int64        `json:"shares"`
	CommentsCount int64        `json:"comments_count"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type Story struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Image     string `json:"image"`
	Views     int64  `json:"views"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

type Music struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Album      string   `json:"album"`
	Duration   int      `json:"duration"`
	ImageURL   string   `json:"image_url"`
	AudioURL   string   `json:"audio_url"`
	SpotifyID  string   `json:"spotify_id"`
	Genre      []string `json:"genre"`
	Plays      int64    `json:"plays"`
	LikesCount int64    `json:"likes_count"`
	UploadedBy string   `json:"uploaded_by"`
	CreatedAt  string   `json:"created_at"`
}

type TrendingMusic struct {
	Music
	Score int64 `json:"score"`
}

type Translation struct {
	Language string `json:"language"`
	Lyrics   string `json:"lyrics"`
}

type SyncedLine struct {
	Timestamp int64  `json:"timestamp"`
	Text      string `json:"text"`
}

type Lyrics struct {
	ID           string        `json:"id"`
	MusicID      string        `json:"music_id"`
	Title        string        `json:"title"`
	Artist       string        `json:"artist"`
	Lyrics       string        `json:"lyrics"`
	Language     string        `json:"language"`
	Translations []Translation `json:"translations"`
	Synced       bool          `json:"synced"`
	SyncedLyrics []SyncedLine  `json:"synced_lyrics"`
	Source       string        `json:"source"`
	Views        int64         `json:"views"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type SpotifyIntegration struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	UserType     string   `json:"user_type"`
	SpotifyID    string   `json:"spotify_id"`
	DisplayName  string   `json:"display_name"`
	Email        string   `json:"email"`
	ProfileImage string   `json:"profile_image"`
	Followers    int      `json:"followers"`
	LinkedTracks []string `json:"linked_tracks"`
	ExpiresAt    string   `json:"expires_at"`
	CreatedAt    string   `json:"created_at"`
}

type SpotifyTrack = spotify.Track

type SpotifyPlaylist = spotify.Playlist
