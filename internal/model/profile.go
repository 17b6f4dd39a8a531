package model

import "net/http"

type CreateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

type CreateProfileResponse struct {
	Profile     Profile `json:"profile"`
	AccessToken string  `json:"access_token"`
}

func (r CreateProfileResponse) StatusCode() int {
	return http.StatusCreated
}

func (r CreateProfileResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type GetMyProfileRequest struct{}

type GetMyProfileResponse Profile

type GetProfileByUsernameRequest struct {
	Username string `json:"username"`
}

type GetProfileByUsernameResponse Profile

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
}

type UpdateProfileResponse Profile

type FollowProfileRequest struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

type FollowProfileResponse struct {
	Message        string `json:"message"`
	Following      bool   `json:"following"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

type UnfollowProfileRequest struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

type UnfollowProfileResponse FollowProfileResponse

type GetFollowersRequest struct {
	Username string `json:"username"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetFollowersResponse struct {
	Profiles []ShortProfile `json:"profiles"`
}

type GetFollowingRequest struct {
	Username string `json:"username"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetFollowingResponse struct {
	Profiles []ShortProfile `json:"profiles"`
}

type GetSavedPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetSavedPostsResponse struct {
	Posts []Post `json:"posts"`
}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	Avatar string   `json:"avatar"`
	Sizes  []string `json:"sizes"`
}
