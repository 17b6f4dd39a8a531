package entity

import (
	"context"

	"github.com/lyricroom/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Profile{},
		&ProfileFollow{},
		&Post{},
		&PostLike{},
		&PostSave{},
		&PostComment{},
		&Story{},
		&StoryView{},
		&Music{},
		&MusicLike{},
		&Lyrics{},
		&SpotifyIntegration{},
	)
}
