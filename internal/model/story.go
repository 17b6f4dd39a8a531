package model

import (
	"net/http"
	"time"
)

type GetActiveStoriesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetActiveStoriesResponse struct {
	Stories []Story `json:"stories"`
}

type GetStoryRequest struct {
	ID string `json:"id"`
}

type GetStoryResponse Story

type CreateStoryRequest struct {
	UserID    string    `json:"user_id"`
	Image     string    `json:"image"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateStoryResponse Story

func (r CreateStoryResponse) StatusCode() int {
	return http.StatusCreated
}

type ViewStoryRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type ViewStoryResponse Story

type DeleteStoryRequest struct {
	ID string `json:"id"`
}

type DeleteStoryResponse struct {
	Message string `json:"message"`
}
