package repository

import (
	"context"
	"errors"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	CounterRepository

	// Follows is the follow graph. An edge (aggregate, actor) means actor
	// follows aggregate.
	Follows() MembershipRepository

	Create(ctx context.Context, data *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByUsername(ctx context.Context, username string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Profile, error)
	UpdateByID(ctx context.Context, id string, data entity.Profile) error
	ClearBio(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
}

type profileRepository struct {
	counterStore
	cache   objectCache
	follows MembershipRepository
}

func NewProfileRepository(redisClient xredis.Client) ProfileRepository {
	return &profileRepository{
		counterStore: counterStore{model: func() any { return &entity.Profile{} }},
		cache:        objectCache{redisClient: redisClient},
		follows:      NewProfileFollowRepository(),
	}
}

func (r *profileRepository) Follows() MembershipRepository {
	return r.follows
}

func (r *profileRepository) Create(ctx context.Context, data *entity.Profile) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var result entity.Profile
	if r.cache.get(ctx, common.RedisKeyProfile(id), &result) {
		return &result, nil
	}

	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache.set(ctx, common.RedisKeyProfile(id), result)
	return &result, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	var result entity.Profile
	if err := xcontext.DB(ctx).Take(&result, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var result entity.Profile
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Profile
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Profile, error) {
	var result []entity.Profile
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateByID updates the descriptive fields only. Counters are owned by the
// engagement ledger.
func (r *profileRepository) UpdateByID(ctx context.Context, id string, data entity.Profile) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Omit("id", "created_at", "role", "followers_count", "following_count").
		Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	r.cache.invalidate(ctx, common.RedisKeyProfile(id))
	return nil
}

func (r *profileRepository) ClearBio(ctx context.Context, id string) error {
	err := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Update("bio", "").Error
	if err != nil {
		return err
	}

	r.cache.invalidate(ctx, common.RedisKeyProfile(id))
	return nil
}

func (r *profileRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Profile{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
