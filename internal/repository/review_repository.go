package repository

import (
	"context"
	"voidwebsite/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CRUDRepository[models.Review]
	GetByProduct(ctx context.Context, productID string) ([]models.Review, error)
	IncrementHelpful(ctx context.Context, id string) (*models.Review, error)
}

type reviewRepository struct {
	CRUDRepository[models.Review]
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{
		CRUDRepository: NewCRUDRepository[models.Review](db, "created_at desc"),
		db:             db,
	}
}

func (r *reviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// IncrementHelpful bumps the vote count in place so concurrent votes are
// not lost.
func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) (*models.Review, error) {
	res := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful", gorm.Expr("helpful + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
