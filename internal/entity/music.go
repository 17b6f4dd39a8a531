package entity

import "database/sql"

type Music struct {
	Base
	Title      string         `json:"title"`
	Artist     string         `json:"artist" gorm:"index"`
	Album      string         `json:"album"`
	Duration   int            `json:"duration"`
	ImageURL   string         `json:"image_url"`
	AudioURL   string         `json:"audio_url"`
	SpotifyID  sql.NullString `json:"spotify_id" gorm:"unique"`
	Genre      Array[string]  `json:"genre" gorm:"type:text"`
	Plays      int64          `json:"plays"`
	LikesCount int64          `json:"likes_count"`
	UploadedBy string         `json:"uploaded_by"`
}

type MusicLike Membership
