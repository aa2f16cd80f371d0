package dashboard

import (
	"context"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/dashboard"
	ratingdomain "github.com/BruksfildServices01/store-rating/internal/domain/rating"
	storedomain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	userdomain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
)

// ======================================================
// ADMIN
// ======================================================

type Admin struct {
	users   userdomain.Repository
	stores  storedomain.Repository
	ratings ratingdomain.Repository
}

func NewAdmin(
	users userdomain.Repository,
	stores storedomain.Repository,
	ratings ratingdomain.Repository,
) *Admin {
	return &Admin{users: users, stores: stores, ratings: ratings}
}

func (uc *Admin) Execute(ctx context.Context) (*dto.AdminDashboard, error) {
	totalUsers, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalStores, err := uc.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := uc.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := uc.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	if byRole == nil {
		byRole = []dto.RoleCount{}
	}

	return &dto.AdminDashboard{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
		UsersByRole:  byRole,
	}, nil
}

// ======================================================
// STORE OWNER
// ======================================================

type StoreOwner struct {
	stores  storedomain.Repository
	ratings ratingdomain.Repository
}

func NewStoreOwner(
	stores storedomain.Repository,
	ratings ratingdomain.Repository,
) *StoreOwner {
	return &StoreOwner{stores: stores, ratings: ratings}
}

func (uc *StoreOwner) Execute(ctx context.Context, ownerID uint) (*dto.StoreOwnerDashboard, error) {
	store, err := uc.stores.FindByOwnerWithRating(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, httperr.NotFoundErr("store_not_found", "No store found for this owner")
	}

	ratings, err := uc.ratings.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []dto.RatingWithUser{}
	}

	return &dto.StoreOwnerDashboard{
		Store:   store.Summary(),
		Ratings: ratings,
	}, nil
}

// ======================================================
// USER
// ======================================================

type User struct {
	repo domain.Repository
}

func NewUser(repo domain.Repository) *User {
	return &User{repo: repo}
}

func (uc *User) Execute(ctx context.Context, userID uint) ([]dto.UserStore, error) {
	return uc.repo.StoresForUser(ctx, userID)
}
