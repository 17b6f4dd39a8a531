package repository

import (
	"context"
	"time"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm"
)

type StoryRepository interface {
	CounterRepository
	Views() MembershipRepository

	Create(ctx context.Context, data *entity.Story) error
	GetByID(ctx context.Context, id string) (*entity.Story, error)
	GetActiveList(ctx context.Context, now time.Time, offset, limit int) ([]entity.Story, error)
	// GetList includes expired stories which are not purged yet.
	GetList(ctx context.Context, offset, limit int) ([]entity.Story, error)
	GetIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	GetExpiredIDs(ctx context.Context, now time.Time, limit int) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

type storyRepository struct {
	counterStore
	cache objectCache
	views MembershipRepository
}

func NewStoryRepository(redisClient xredis.Client) StoryRepository {
	return &storyRepository{
		counterStore: counterStore{model: func() any { return &entity.Story{} }},
		cache:        objectCache{redisClient: redisClient},
		views:        NewStoryViewRepository(),
	}
}

func (r *storyRepository) Views() MembershipRepository {
	return r.views
}

func (r *storyRepository) Create(ctx context.Context, data *entity.Story) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	var result entity.Story
	if r.cache.get(ctx, common.RedisKeyStory(id), &result) {
		return &result, nil
	}

	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache.set(ctx, common.RedisKeyStory(id), result)
	return &result, nil
}

func (r *storyRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Story, error) {
	var result []entity.Story
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *storyRepository) GetActiveList(
	ctx context.Context, now time.Time, offset, limit int,
) ([]entity.Story, error) {
	var result []entity.Story
	err := xcontext.DB(ctx).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *storyRepository) GetIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.Story{}).Where("author_id=?", authorID).Pluck("id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *storyRepository) GetExpiredIDs(ctx context.Context, now time.Time, limit int) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.Story{}).
		Where("expires_at <= ?", now).
		Order("expires_at ASC").
		Limit(limit).
		Pluck("id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *storyRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Story{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
