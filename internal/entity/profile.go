package entity

type ProfileRole string

const (
	ProfileRoleUser  ProfileRole = "user"
	ProfileRoleAdmin ProfileRole = "admin"
)

const DefaultAvatar = "https://via.placeholder.com/100"

type Profile struct {
	Base
	Username       string      `json:"username" gorm:"unique"`
	Email          string      `json:"email" gorm:"unique"`
	Avatar         string      `json:"avatar"`
	Bio            string      `json:"bio"`
	Role           ProfileRole `json:"role"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
}

// ProfileFollow is an edge of the follow graph: ActorID follows AggregateID.
// The same row backs the followee's followers and the follower's following.
type ProfileFollow Membership
