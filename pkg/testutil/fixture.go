package testutil

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
)

// SampleProfile creates a profile with randomized unique fields. Non-zero
// fields of init overwrite the sample.
func SampleProfile(ctx context.Context, init *entity.Profile) entity.Profile {
	id := uuid.NewString()
	sample := &entity.Profile{
		Base:     entity.Base{ID: id},
		Username: fmt.Sprintf("user_%s", id[:8]),
		Email:    fmt.Sprintf("%s@example.com", id),
		Avatar:   entity.DefaultAvatar,
		Role:     entity.ProfileRoleUser,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	create(ctx, sample)
	return *sample
}

func SamplePost(ctx context.Context, init *entity.Post) entity.Post {
	sample := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: uuid.NewString(),
		Content:  "Hello world",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	create(ctx, sample)
	return *sample
}

func SampleStory(ctx context.Context, init *entity.Story) entity.Story {
	sample := &entity.Story{
		Base:      entity.Base{ID: uuid.NewString()},
		AuthorID:  uuid.NewString(),
		Image:     "https://example.com/story.png",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	create(ctx, sample)
	return *sample
}

func SampleMusic(ctx context.Context, init *entity.Music) entity.Music {
	sample := &entity.Music{
		Base:   entity.Base{ID: uuid.NewString()},
		Title:  "Yellow Submarine",
		Artist: "The Beatles",
		Genre:  entity.Array[string]{"rock"},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	create(ctx, sample)
	return *sample
}

func SampleLyrics(ctx context.Context, init *entity.Lyrics) entity.Lyrics {
	sample := &entity.Lyrics{
		Base:     entity.Base{ID: uuid.NewString()},
		MusicID:  uuid.NewString(),
		Title:    "Yellow Submarine",
		Artist:   "The Beatles",
		Lyrics:   "In the town where I was born",
		Language: "en",
		Source:   "manual",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	create(ctx, sample)
	return *sample
}

func create(ctx context.Context, obj any) {
	if err := xcontext.DB(ctx).Create(obj).Error; err != nil {
		panic(err)
	}
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
