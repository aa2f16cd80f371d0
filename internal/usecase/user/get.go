package user

import (
	"context"

	storedomain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

var errUserNotFound = httperr.NotFoundErr("user_not_found", "User not found")

type Get struct {
	users  domain.Repository
	stores storedomain.Repository
}

func NewGet(users domain.Repository, stores storedomain.Repository) *Get {
	return &Get{users: users, stores: stores}
}

// Execute attaches the owned store with its aggregates when the user is a
// store owner.
func (uc *Get) Execute(
	ctx context.Context,
	id uint,
) (*dto.UserDetail, error) {

	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}

	detail := &dto.UserDetail{User: *user}
	if user.Role == models.RoleStoreOwner {
		store, err := uc.stores.FindByOwnerWithRating(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		detail.Store = store
	}
	return detail, nil
}
