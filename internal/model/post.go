package model

import "net/http"

type GetListPostRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListPostResponse struct {
	Posts []Post `json:"posts"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse Post

type CreatePostRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type CreatePostResponse Post

func (r CreatePostResponse) StatusCode() int {
	return http.StatusCreated
}

type UpdatePostRequest struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type UpdatePostResponse Post

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct {
	Message string `json:"message"`
}

type LikePostRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type LikePostResponse struct {
	Post  Post `json:"post"`
	Liked bool `json:"liked"`
}

type CommentPostRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type CommentPostResponse struct {
	Comment       Comment `json:"comment"`
	CommentsCount int64   `json:"comments_count"`
}

func (r CommentPostResponse) StatusCode() int {
	return http.StatusCreated
}

type GetCommentsRequest struct {
	ID     string `json:"id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type SharePostRequest struct {
	ID string `json:"id"`
}

type SharePostResponse Post

type SavePostRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type SavePostResponse struct {
	Post  Post `json:"post"`
	Saved bool `json:"saved"`
}
