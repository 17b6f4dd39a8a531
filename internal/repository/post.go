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

type PostRepository interface {
	CounterRepository
	Likes() MembershipRepository
	Saves() MembershipRepository

	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Post, error)
	GetIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	UpdateByID(ctx context.Context, id string, data entity.Post) error
	DeleteByID(ctx context.Context, id string) error

	CreateComment(ctx context.Context, data *entity.PostComment) error
	GetComments(ctx context.Context, postID string, offset, limit int) ([]entity.PostComment, error)
	CountComments(ctx context.Context, postID string) (int64, error)
	DeleteComments(ctx context.Context, postID string) error
	DeleteCommentsByAuthor(ctx context.Context, authorID string) error
}

type postRepository struct {
	counterStore
	cache objectCache
	likes MembershipRepository
	saves MembershipRepository
}

func NewPostRepository(redisClient xredis.Client) PostRepository {
	return &postRepository{
		counterStore: counterStore{model: func() any { return &entity.Post{} }},
		cache:        objectCache{redisClient: redisClient},
		likes:        NewPostLikeRepository(),
		saves:        NewPostSaveRepository(),
	}
}

func (r *postRepository) Likes() MembershipRepository {
	return r.likes
}

func (r *postRepository) Saves() MembershipRepository {
	return r.saves
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if r.cache.get(ctx, common.RedisKeyPost(id), &result) {
		return &result, nil
	}

	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache.set(ctx, common.RedisKeyPost(id), result)
	return &result, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Post
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.Post{}).Where("author_id=?", authorID).Pluck("id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Post{}).Where("author_id=?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id string, data entity.Post) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Omit("id", "created_at", "author_id", "likes", "shares").
		Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	r.cache.invalidate(ctx, common.RedisKeyPost(id))
	return nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) CreateComment(ctx context.Context, data *entity.PostComment) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetComments returns comments in append order.
func (r *postRepository) GetComments(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.PostComment, error) {
	var result []entity.PostComment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) CountComments(ctx context.Context, postID string) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.PostComment{}).Where("post_id=?", postID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) DeleteComments(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.PostComment{}, "post_id=?", postID).Error
}

func (r *postRepository) DeleteCommentsByAuthor(ctx context.Context, authorID string) error {
	return xcontext.DB(ctx).Delete(&entity.PostComment{}, "author_id=?", authorID).Error
}
