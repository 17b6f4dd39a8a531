package entity

import "time"

type Story struct {
	Base
	AuthorID  string    `json:"author_id" gorm:"index"`
	Image     string    `json:"image"`
	Views     int64     `json:"views"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

type StoryView Membership
