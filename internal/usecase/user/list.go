package user

import (
	"context"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type List struct {
	users domain.Repository
}

func NewList(users domain.Repository) *List {
	return &List{users: users}
}

func (uc *List) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.User, error) {

	if err := filter.Normalize(); err != nil {
		return nil, err
	}
	return uc.users.List(ctx, filter)
}
