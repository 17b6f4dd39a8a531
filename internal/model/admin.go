package model

type AdminGetProfilesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type AdminGetProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}

type AdminGetPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type AdminGetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type AdminGetStoriesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type AdminGetStoriesResponse struct {
	Stories []Story `json:"stories"`
}

type AdminDeleteProfileRequest struct {
	ID string `json:"id"`
}

type AdminDeleteProfileResponse struct {
	Success bool `json:"success"`
}

type AdminDeletePostRequest struct {
	ID string `json:"id"`
}

type AdminDeletePostResponse struct {
	Success bool `json:"success"`
}

type AdminDeleteStoryRequest struct {
	ID string `json:"id"`
}

type AdminDeleteStoryResponse struct {
	Success bool `json:"success"`
}
