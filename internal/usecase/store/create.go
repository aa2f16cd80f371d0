package store

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ActorID uint

	Name       string
	Email      string
	Address    string
	OwnerEmail string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	stores domain.Repository
	audit  *audit.Dispatcher
}

func NewCreate(stores domain.Repository, audit *audit.Dispatcher) *Create {
	return &Create{stores: stores, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates the store and promotes its owner in one transaction. A
// failure at any step leaves both the user and the stores untouched.
func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Store, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	for _, v := range []string{in.Name, in.Email, in.Address, in.OwnerEmail} {
		if strings.TrimSpace(v) == "" {
			return nil, httperr.Validation("missing_fields", "All fields are required")
		}
	}

	email := validators.NormalizeEmail(in.Email)
	if err := validators.NewStore(in.Name, email, in.Address); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Lock owner → check → promote → insert
	// --------------------------------------------------
	var store *models.Store
	err := uc.stores.Transaction(ctx, func(tx domain.TxRepository) error {
		owner, err := tx.LockOwnerByEmail(ctx, validators.NormalizeEmail(in.OwnerEmail))
		if err != nil {
			return err
		}
		if owner == nil {
			return httperr.NotFoundErr("owner_not_found", "Store owner not found with this email")
		}

		has, err := tx.OwnerHasStore(ctx, owner.ID)
		if err != nil {
			return err
		}
		if has {
			return httperr.Conflict("owner_has_store", "This owner already has a store")
		}

		if owner.Role != models.RoleStoreOwner {
			if err := tx.PromoteToStoreOwner(ctx, owner.ID); err != nil {
				return err
			}
		}

		store = &models.Store{
			Name:    in.Name,
			Email:   email,
			Address: in.Address,
			OwnerID: owner.ID,
		}
		return tx.CreateStore(ctx, store)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   audit.ActionStoreCreated,
		Entity:   audit.EntityStore,
		EntityID: audit.Ptr(store.ID),
		Metadata: map[string]any{"owner_id": store.OwnerID},
	})

	return store, nil
}
