package rating

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type Repository interface {
	// Upsert inserts the (user, store) rating or overwrites its value and
	// updated_at, then returns the stored row.
	Upsert(ctx context.Context, userID, storeID uint, value int) (*models.Rating, error)
	// FindForUser returns (nil, nil) when the user has not rated the store.
	FindForUser(ctx context.Context, userID, storeID uint) (*models.Rating, error)
	ListForStore(ctx context.Context, storeID uint) ([]dto.RatingWithUser, error)
	Count(ctx context.Context) (int64, error)
}
