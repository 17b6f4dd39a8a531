package repository

import (
	"context"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm"
)

type GetListMusicFilter struct {
	Genre  string
	Artist string
	Q      string
	Limit  int
}

type MusicRepository interface {
	CounterRepository
	Likes() MembershipRepository

	Create(ctx context.Context, data *entity.Music) error
	GetByID(ctx context.Context, id string) (*entity.Music, error)
	GetBySpotifyID(ctx context.Context, spotifyID string) (*entity.Music, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Music, error)
	GetList(ctx context.Context, filter GetListMusicFilter) ([]entity.Music, error)
	DeleteByID(ctx context.Context, id string) error
}

type musicRepository struct {
	counterStore
	cache objectCache
	likes MembershipRepository
}

func NewMusicRepository(redisClient xredis.Client) MusicRepository {
	return &musicRepository{
		counterStore: counterStore{model: func() any { return &entity.Music{} }},
		cache:        objectCache{redisClient: redisClient},
		likes:        NewMusicLikeRepository(),
	}
}

func (r *musicRepository) Likes() MembershipRepository {
	return r.likes
}

func (r *musicRepository) Create(ctx context.Context, data *entity.Music) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *musicRepository) GetByID(ctx context.Context, id string) (*entity.Music, error) {
	var result entity.Music
	if r.cache.get(ctx, common.RedisKeyMusic(id), &result) {
		return &result, nil
	}

	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache.set(ctx, common.RedisKeyMusic(id), result)
	return &result, nil
}

func (r *musicRepository) GetBySpotifyID(ctx context.Context, spotifyID string) (*entity.Music, error) {
	var result entity.Music
	if err := xcontext.DB(ctx).Take(&result, "spotify_id=?", spotifyID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *musicRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Music, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Music
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetList filters by genre membership, artist substring and a title/artist
// search term, most played first.
func (r *musicRepository) GetList(ctx context.Context, filter GetListMusicFilter) ([]entity.Music, error) {
	tx := xcontext.DB(ctx).Model(&entity.Music{})

	if filter.Genre != "" {
		// Genres are stored as a JSON array of strings.
		tx = tx.Where("genre LIKE ?", "%\""+filter.Genre+"\"%")
	}

	if filter.Artist != "" {
		tx = tx.Where("LOWER(artist) LIKE LOWER(?)", "%"+filter.Artist+"%")
	}

	if filter.Q != "" {
		tx = tx.Where("LOWER(title) LIKE LOWER(?) OR LOWER(artist) LIKE LOWER(?)",
			"%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	var result []entity.Music
	if err := tx.Order("plays DESC").Limit(filter.Limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *musicRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Music{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
