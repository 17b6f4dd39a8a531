package repository

import (
	"context"
	"errors"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// MembershipRepository manages one membership set table. Rows are keyed by
// (aggregate_id, actor_id).
type MembershipRepository interface {
	// Add inserts the pair if it is absent and reports whether a row was
	// inserted.
	Add(ctx context.Context, aggregateID, actorID string) (bool, error)

	// Remove deletes the pair if it is present and reports whether a row was
	// deleted.
	Remove(ctx context.Context, aggregateID, actorID string) (bool, error)

	Contains(ctx context.Context, aggregateID, actorID string) (bool, error)
	Count(ctx context.Context, aggregateID string) (int64, error)
	Members(ctx context.Context, aggregateID string, offset, limit int) ([]string, error)
	ListByActor(ctx context.Context, actorID string, offset, limit int) ([]string, error)

	// DeleteByAggregate removes every row of the aggregate and returns the
	// actors which were removed.
	DeleteByAggregate(ctx context.Context, aggregateID string) ([]string, error)

	// DeleteByActor removes every row of the actor and returns the aggregates
	// which lost a member.
	DeleteByActor(ctx context.Context, actorID string) ([]string, error)
}

type membershipRepository[T any] struct {
	newRow func(aggregateID, actorID string) *T
}

func newMembershipRepository[T any](newRow func(aggregateID, actorID string) *T) *membershipRepository[T] {
	return &membershipRepository[T]{newRow: newRow}
}

func NewProfileFollowRepository() MembershipRepository {
	return newMembershipRepository(func(aggregateID, actorID string) *entity.ProfileFollow {
		return &entity.ProfileFollow{AggregateID: aggregateID, ActorID: actorID}
	})
}

func NewPostLikeRepository() MembershipRepository {
	return newMembershipRepository(func(aggregateID, actorID string) *entity.PostLike {
		return &entity.PostLike{AggregateID: aggregateID, ActorID: actorID}
	})
}

func NewPostSaveRepository() MembershipRepository {
	return newMembershipRepository(func(aggregateID, actorID string) *entity.PostSave {
		return &entity.PostSave{AggregateID: aggregateID, ActorID: actorID}
	})
}

func NewMusicLikeRepository() MembershipRepository {
	return newMembershipRepository(func(aggregateID, actorID string) *entity.MusicLike {
		return &entity.MusicLike{AggregateID: aggregateID, ActorID: actorID}
	})
}

func NewStoryViewRepository() MembershipRepository {
	return newMembershipRepository(func(aggregateID, actorID string) *entity.StoryView {
		return &entity.StoryView{AggregateID: aggregateID, ActorID: actorID}
	})
}

func (r *membershipRepository[T]) Add(ctx context.Context, aggregateID, actorID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.newRow(aggregateID, actorID))
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *membershipRepository[T]) Remove(ctx context.Context, aggregateID, actorID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("aggregate_id=? AND actor_id=?", aggregateID, actorID).
		Delete(new(T))
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *membershipRepository[T]) Contains(ctx context.Context, aggregateID, actorID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(new(T)).
		Where("aggregate_id=? AND actor_id=?", aggregateID, actorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *membershipRepository[T]) Count(ctx context.Context, aggregateID string) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(new(T)).Where("aggregate_id=?", aggregateID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *membershipRepository[T]) Members(
	ctx context.Context, aggregateID string, offset, limit int,
) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(new(T)).
		Where("aggregate_id=?", aggregateID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Pluck("actor_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *membershipRepository[T]) ListByActor(
	ctx context.Context, actorID string, offset, limit int,
) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(new(T)).
		Where("actor_id=?", actorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Pluck("aggregate_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *membershipRepository[T]) DeleteByAggregate(ctx context.Context, aggregateID string) ([]string, error) {
	var actors []string
	err := xcontext.DB(ctx).Model(new(T)).Where("aggregate_id=?", aggregateID).Pluck("actor_id", &actors).Error
	if err != nil {
		return nil, err
	}

	if len(actors) == 0 {
		return nil, nil
	}

	if err := xcontext.DB(ctx).Where("aggregate_id=?", aggregateID).Delete(new(T)).Error; err != nil {
		return nil, err
	}

	return actors, nil
}

func (r *membershipRepository[T]) DeleteByActor(ctx context.Context, actorID string) ([]string, error) {
	var aggregates []string
	err := xcontext.DB(ctx).Model(new(T)).Where("actor_id=?", actorID).Pluck("aggregate_id", &aggregates).Error
	if err != nil {
		return nil, err
	}

	if len(aggregates) == 0 {
		return nil, nil
	}

	if err := xcontext.DB(ctx).Where("actor_id=?", actorID).Delete(new(T)).Error; err != nil {
		return nil, err
	}

	return aggregates, nil
}
