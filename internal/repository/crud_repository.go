package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRUDRepository covers the flat admin-managed collections.
type CRUDRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
}

type crudRepository[T any] struct {
	db      *gorm.DB
	orderBy string
}

func NewCRUDRepository[T any](db *gorm.DB, orderBy string) CRUDRepository[T] {
	return &crudRepository[T]{db: db, orderBy: orderBy}
}

func (r *crudRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *crudRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *crudRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	var records []T
	query := r.db.WithContext(ctx)
	if r.orderBy != "" {
		query = query.Order(r.orderBy)
	}
	err := query.Find(&records).Error
	return records, err
}

// Update writes every column except created_at and fails with ErrNotFound
// when the record is gone.
func (r *crudRepository[T]) Update(ctx context.Context, record *T) error {
	res := r.db.WithContext(ctx).Model(record).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent: removing a missing record succeeds.
func (r *crudRepository[T]) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}
