package store

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// Repository reads stores together with their rating aggregates. Lookups
// return (nil, nil) when no row matches.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]dto.StoreWithRating, error)
	FindWithRating(ctx context.Context, id uint) (*dto.StoreWithRating, error)
	FindByOwnerWithRating(ctx context.Context, ownerID uint) (*dto.StoreWithRating, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Transaction runs fn atomically; any error rolls everything back.
	Transaction(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository is the part of the store creation sequence that must run
// inside one transaction.
type TxRepository interface {
	// LockOwnerByEmail loads the prospective owner and holds its row until
	// the transaction ends.
	LockOwnerByEmail(ctx context.Context, email string) (*models.User, error)
	OwnerHasStore(ctx context.Context, ownerID uint) (bool, error)
	PromoteToStoreOwner(ctx context.Context, userID uint) error
	// CreateStore fails with a conflict business error when the owner
	// already has a store.
	CreateStore(ctx context.Context, s *models.Store) error
}
