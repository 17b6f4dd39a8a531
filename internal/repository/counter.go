package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// CounterRepository mutates denormalized counter columns of an aggregate with
// server-side arithmetic.
type CounterRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Increase(ctx context.Context, id, column string) error
	Decrease(ctx context.Context, id, column string) error
	Counter(ctx context.Context, id, column string) (int64, error)
}

type counterStore struct {
	model func() any
}

func (s counterStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(s.model()).Where("id=?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s counterStore) Increase(ctx context.Context, id, column string) error {
	tx := xcontext.DB(ctx).
		Model(s.model()).
		Where("id=?", id).
		UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s+1", column)))

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

// Decrease never brings the counter below zero. A counter which is already
// zero is reported as not found.
func (s counterStore) Decrease(ctx context.Context, id, column string) error {
	tx := xcontext.DB(ctx).
		Model(s.model()).
		Where(fmt.Sprintf("id=? AND %s >= 1", column), id).
		UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s-1", column)))

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

func (s counterStore) Counter(ctx context.Context, id, column string) (int64, error) {
	var values []int64
	if err := xcontext.DB(ctx).Model(s.model()).Where("id=?", id).Pluck(column, &values).Error; err != nil {
		return 0, err
	}

	if len(values) == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	return values[0], nil
}
