package services

import (
	"context"
	"errors"
	"fmt"
	"voidwebsite/internal/format"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation failed")

// RecordPtr is satisfied by pointers to the admin-managed record types.
type RecordPtr[T any] interface {
	*T
	models.Record
}

// ResourceService serves one flat collection for the admin screens: load
// all, filter in process, and plain writes.
type ResourceService[T any, PT RecordPtr[T]] struct {
	repo     repository.CRUDRepository[T]
	validate func(PT) error
}

func NewResourceService[T any, PT RecordPtr[T]](repo repository.CRUDRepository[T], validate func(PT) error) *ResourceService[T, PT] {
	return &ResourceService[T, PT]{repo: repo, validate: validate}
}

// List returns every record whose search fields contain query.
func (s *ResourceService[T, PT]) List(ctx context.Context, query string) ([]T, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for i := range records {
		if format.Match(query, PT(&records[i]).SearchFields()...) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

func (s *ResourceService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ResourceService[T, PT]) Create(ctx context.Context, record PT) error {
	if record.GetID() == "" {
		record.SetID(uuid.NewString())
	}
	if err := s.check(record); err != nil {
		return err
	}
	return s.repo.Create(ctx, (*T)(record))
}

// Update replaces the stored record with id.
func (s *ResourceService[T, PT]) Update(ctx context.Context, id string, record PT) error {
	record.SetID(id)
	if err := s.check(record); err != nil {
		return err
	}
	return s.repo.Update(ctx, (*T)(record))
}

func (s *ResourceService[T, PT]) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ResourceService[T, PT]) BulkDelete(ctx context.Context, ids []string) BulkDeleteResult {
	return BulkDelete(ctx, ids, s.repo.Delete)
}

func (s *ResourceService[T, PT]) check(record PT) error {
	if s.validate == nil {
		return nil
	}
	if err := s.validate(record); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
