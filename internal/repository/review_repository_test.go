package repository

import (
	"context"
	"testing"
	"voidwebsite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_ByProductAndHelpful(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))
	ctx := context.Background()

	for _, r := range []models.Review{
		{ID: "r1", ProductID: "1", UserName: "Alice", Rating: 5},
		{ID: "r2", ProductID: "1", UserName: "Bob", Rating: 3},
		{ID: "r3", ProductID: "2", UserName: "Cara", Rating: 4},
	} {
		review := r
		require.NoError(t, repo.Create(ctx, &review))
	}

	reviews, err := repo.GetByProduct(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	updated, err := repo.IncrementHelpful(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Helpful)
	updated, err = repo.IncrementHelpful(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Helpful)

	_, err = repo.IncrementHelpful(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
