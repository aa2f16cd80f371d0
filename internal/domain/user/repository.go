package user

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// Repository lookups return (nil, nil) when no row matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create fails with a conflict business error on a duplicate email.
	Create(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error

	List(ctx context.Context, filter ListFilter) ([]models.User, error)

	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) ([]dto.RoleCount, error)
}
