package rating

import (
	"context"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/rating"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// ForUser returns the caller's rating of a store, or nil when there is none.
type ForUser struct {
	ratings domain.Repository
}

func NewForUser(ratings domain.Repository) *ForUser {
	return &ForUser{ratings: ratings}
}

func (uc *ForUser) Execute(ctx context.Context, userID, storeID uint) (*models.Rating, error) {
	return uc.ratings.FindForUser(ctx, userID, storeID)
}

// ForStore lists a store's ratings with their authors, newest first. An
// unknown store yields an empty list.
type ForStore struct {
	ratings domain.Repository
}

func NewForStore(ratings domain.Repository) *ForStore {
	return &ForStore{ratings: ratings}
}

func (uc *ForStore) Execute(ctx context.Context, storeID uint) ([]dto.RatingWithUser, error) {
	return uc.ratings.ListForStore(ctx, storeID)
}

type Count struct {
	ratings domain.Repository
}

func NewCount(ratings domain.Repository) *Count {
	return &Count{ratings: ratings}
}

func (uc *Count) Execute(ctx context.Context) (*dto.RatingCount, error) {
	n, err := uc.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RatingCount{Count: n}, nil
}
