package store

import (
	"context"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
)

var errStoreNotFound = httperr.NotFoundErr("store_not_found", "Store not found")

type List struct {
	stores domain.Repository
}

func NewList(stores domain.Repository) *List {
	return &List{stores: stores}
}

func (uc *List) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.StoreWithRating, error) {

	if err := filter.Normalize(); err != nil {
		return nil, err
	}
	return uc.stores.List(ctx, filter)
}

type Get struct {
	stores domain.Repository
}

func NewGet(stores domain.Repository) *Get {
	return &Get{stores: stores}
}

func (uc *Get) Execute(ctx context.Context, id uint) (*dto.StoreWithRating, error) {
	store, err := uc.stores.FindWithRating(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errStoreNotFound
	}
	return store, nil
}

// Mine returns the caller's own store.
type Mine struct {
	stores domain.Repository
}

func NewMine(stores domain.Repository) *Mine {
	return &Mine{stores: stores}
}

func (uc *Mine) Execute(ctx context.Context, ownerID uint) (*dto.StoreWithRating, error) {
	store, err := uc.stores.FindByOwnerWithRating(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, httperr.NotFoundErr("store_not_found", "You do not have a store")
	}
	return store, nil
}
