package dashboard

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/dto"
)

type Repository interface {
	// StoresForUser lists every store by name with its aggregates and the
	// rating userID gave it, if any.
	StoresForUser(ctx context.Context, userID uint) ([]dto.UserStore, error)
}
