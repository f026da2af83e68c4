package services

import (
	"context"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"github.com/shopspring/decimal"
)

// RatingSummary.Breakdown[i] counts reviews with rating i+1.
type RatingSummary struct {
	Count     int                   `json:"count"`
	Average   decimal.Decimal       `json:"average"`
	Breakdown [models.MaxRating]int `json:"breakdown"`
}

type ProductReviews struct {
	Reviews []models.Review `json:"reviews"`
	Summary RatingSummary   `json:"summary"`
}

// ReviewService adds the storefront side of reviews to the admin resource
// operations.
type ReviewService struct {
	*ResourceService[models.Review, *models.Review]
	reviews repository.ReviewRepository
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		ResourceService: NewResourceService[models.Review](reviews, ValidateReview),
		reviews:         reviews,
	}
}

// Submit stores a customer review. Customer reviews start unverified with
// no helpful votes.
func (s *ReviewService) Submit(ctx context.Context, review *models.Review) error {
	review.ID = ""
	review.Verified = false
	review.Helpful = 0
	review.CreatedAt = models.Now()
	return s.Create(ctx, review)
}

func (s *ReviewService) ForProduct(ctx context.Context, productID string) (*ProductReviews, error) {
	reviews, err := s.reviews.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &ProductReviews{Reviews: reviews, Summary: Summarize(reviews)}, nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, id string) (*models.Review, error) {
	return s.reviews.IncrementHelpful(ctx, id)
}

// Summarize averages ratings to one decimal place. Out-of-range ratings are
// ignored.
func Summarize(reviews []models.Review) RatingSummary {
	var summary RatingSummary
	sum := 0
	for _, r := range reviews {
		if r.Rating < models.MinRating || r.Rating > models.MaxRating {
			continue
		}
		summary.Count++
		summary.Breakdown[r.Rating-1]++
		sum += r.Rating
	}
	if summary.Count > 0 {
		summary.Average = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(summary.Count))).
			Round(1)
	}
	return summary
}
