package user

import (
	"context"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type Profile struct {
	users domain.Repository
}

func NewProfile(users domain.Repository) *Profile {
	return &Profile{users: users}
}

// Execute fails with not found when the token outlived its user.
func (uc *Profile) Execute(ctx context.Context, userID uint) (*models.User, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return user, nil
}
