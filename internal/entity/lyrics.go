package entity

type Translation struct {
	Language string `json:"language"`
	Lyrics   string `json:"lyrics"`
}

// SyncedLine is a lyrics line displayed from Timestamp milliseconds.
type SyncedLine struct {
	Timestamp int64  `json:"timestamp"`
	Text      string `json:"text"`
}

type Lyrics struct {
	Base
	MusicID      string             `json:"music_id" gorm:"unique"`
	Title        string             `json:"title"`
	Artist       string             `json:"artist"`
	Lyrics       string             `json:"lyrics" gorm:"type:text"`
	Language     string             `json:"language"`
	Translations Array[Translation] `json:"translations" gorm:"type:text"`
	Synced       bool               `json:"synced"`
	SyncedLyrics Array[SyncedLine]  `json:"synced_lyrics" gorm:"type:text"`
	Source       string             `json:"source"`
	Views        int64              `json:"views"`
}
