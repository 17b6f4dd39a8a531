package repository

import (
	"context"
	"errors"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpotifyRepository interface {
	// Upsert links a spotify account to the user or refreshes the existing
	// link. Linked tracks are kept.
	Upsert(ctx context.Context, data *entity.SpotifyIntegration) error
	GetByUserID(ctx context.Context, userID string) (*entity.SpotifyIntegration, error)
	UpdateToken(ctx context.Context, userID string, data entity.SpotifyIntegration) error
	UpdateLinkedTracks(ctx context.Context, userID string, tracks entity.Array[string]) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type spotifyRepository struct{}

func NewSpotifyRepository() SpotifyRepository {
	return &spotifyRepository{}
}

func (r *spotifyRepository) Upsert(ctx context.Context, data *entity.SpotifyIntegration) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_type",
				"spotify_id",
				"display_name",
				"email",
				"profile_image",
				"access_token",
				"refresh_token",
				"token_type",
				"expires_at",
				"followers",
				"updated_at",
			}),
		}).Create(data).Error
}

func (r *spotifyRepository) GetByUserID(ctx context.Context, userID string) (*entity.SpotifyIntegration, error) {
	var result entity.SpotifyIntegration
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *spotifyRepository) UpdateToken(ctx context.Context, userID string, data entity.SpotifyIntegration) error {
	tx := xcontext.DB(ctx).
		Model(&entity.SpotifyIntegration{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"access_token":  data.AccessToken,
			"refresh_token": data.RefreshToken,
			"token_type":    data.TokenType,
			"expires_at":    data.ExpiresAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *spotifyRepository) UpdateLinkedTracks(
	ctx context.Context, userID string, tracks entity.Array[string],
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.SpotifyIntegration{}).
		Where("user_id=?", userID).
		Update("linked_tracks", tracks)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *spotifyRepository) DeleteByUserID(ctx context.Context, userID string) error {
	tx := xcontext.DB(ctx).Delete(&entity.SpotifyIntegration{}, "user_id=?", userID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
