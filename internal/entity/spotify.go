package entity

import "time"

type SpotifyUserType string

const (
	SpotifyArtist   SpotifyUserType = "artist"
	SpotifyListener SpotifyUserType = "listener"
)

type SpotifyIntegration struct {
	Base
	UserID       string          `json:"user_id" gorm:"unique"`
	UserType     SpotifyUserType `json:"user_type"`
	SpotifyID    string          `json:"spotify_id"`
	DisplayName  string          `json:"display_name"`
	Email        string          `json:"email"`
	ProfileImage string          `json:"profile_image"`
	AccessToken  string          `json:"-" gorm:"type:text"`
	RefreshToken string          `json:"-" gorm:"type:text"`
	TokenType    string          `json:"-"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Followers    int             `json:"followers"`
	LinkedTracks Array[string]   `json:"linked_tracks" gorm:"type:text"`
}
