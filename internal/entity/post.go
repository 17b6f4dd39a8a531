package entity

type Post struct {
	Base
	AuthorID string `json:"author_id" gorm:"index"`
	Content  string `json:"content" gorm:"type:text"`
	Image    string `json:"image"`
	Likes    int64  `json:"likes"`
	Shares   int64  `json:"shares"`
}

type PostLike Membership

type PostSave Membership

type PostComment struct {
	SnowFlakeBase
	PostID   string `json:"post_id" gorm:"index"`
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
}
