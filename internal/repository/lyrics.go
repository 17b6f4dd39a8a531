package repository

import (
	"context"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm/clause"
)

type LyricsRepository interface {
	CounterRepository

	// Upsert creates the lyrics of a music or replaces the existing ones. Views
	// are kept.
	Upsert(ctx context.Context, data *entity.Lyrics) error
	GetByID(ctx context.Context, id string) (*entity.Lyrics, error)
	GetByMusicID(ctx context.Context, musicID string) (*entity.Lyrics, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Lyrics, error)
	GetAll(ctx context.Context, offset, limit int) ([]entity.Lyrics, error)
	DeleteByMusicID(ctx context.Context, musicID string) (*entity.Lyrics, error)
}

type lyricsRepository struct {
	counterStore
	cache objectCache
}

func NewLyricsRepository(redisClient xredis.Client) LyricsRepository {
	return &lyricsRepository{
		counterStore: counterStore{model: func() any { return &entity.Lyrics{} }},
		cache:        objectCache{redisClient: redisClient},
	}
}

func (r *lyricsRepository) Upsert(ctx context.Context, data *entity.Lyrics) error {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "music_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"artist",
				"lyrics",
				"language",
				"translations",
				"synced",
				"synced_lyrics",
				"source",
				"updated_at",
			}),
		}).Create(data).Error
	if err != nil {
		return err
	}

	r.cache.invalidate(ctx, common.RedisKeyLyrics(data.MusicID))
	return nil
}

func (r *lyricsRepository) GetByID(ctx context.Context, id string) (*entity.Lyrics, error) {
	var result entity.Lyrics
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByMusicID is cached by music id because lyrics are always addressed
// through their music.
func (r *lyricsRepository) GetByMusicID(ctx context.Context, musicID string) (*entity.Lyrics, error) {
	var result entity.Lyrics
	if r.cache.get(ctx, common.RedisKeyLyrics(musicID), &result) {
		return &result, nil
	}

	if err := xcontext.DB(ctx).Take(&result, "music_id=?", musicID).Error; err != nil {
		return nil, err
	}

	r.cache.set(ctx, common.RedisKeyLyrics(musicID), result)
	return &result, nil
}

func (r *lyricsRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Lyrics, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Lyrics
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lyricsRepository) GetAll(ctx context.Context, offset, limit int) ([]entity.Lyrics, error) {
	var result []entity.Lyrics
	if err := xcontext.DB(ctx).Order("id").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteByMusicID returns the deleted lyrics, or nil if the music had none.
func (r *lyricsRepository) DeleteByMusicID(ctx context.Context, musicID string) (*entity.Lyrics, error) {
	var result []entity.Lyrics
	if err := xcontext.DB(ctx).Find(&result, "music_id=?", musicID).Error; err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, nil
	}

	if err := xcontext.DB(ctx).Delete(&entity.Lyrics{}, "music_id=?", musicID).Error; err != nil {
		return nil, err
	}

	return &result[0], nil
}
