package rating

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/rating"
	storedomain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitInput struct {
	UserID  uint
	StoreID uint
	// Rating stays a float until validated so 4.5 is rejected rather than
	// truncated.
	Rating float64
}

// ======================================================
// USE CASE
// ======================================================

type Submit struct {
	ratings domain.Repository
	stores  storedomain.Repository
	audit   *audit.Dispatcher
}

func NewSubmit(
	ratings domain.Repository,
	stores storedomain.Repository,
	audit *audit.Dispatcher,
) *Submit {
	return &Submit{ratings: ratings, stores: stores, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute leaves exactly one rating for (user, store): the first call
// inserts it, later calls overwrite the value.
func (uc *Submit) Execute(
	ctx context.Context,
	in SubmitInput,
) (*models.Rating, error) {

	if in.StoreID == 0 || in.Rating == 0 {
		return nil, httperr.Validation("missing_fields", "Store ID and rating are required")
	}

	value, err := domain.Value(in.Rating)
	if err != nil {
		return nil, err
	}

	ok, err := uc.stores.Exists(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.NotFoundErr("store_not_found", "Store not found")
	}

	rating, err := uc.ratings.Upsert(ctx, in.UserID, in.StoreID, value)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.UserID),
		Action:   audit.ActionRatingSubmitted,
		Entity:   audit.EntityRating,
		EntityID: audit.Ptr(rating.ID),
		Metadata: map[string]any{"store_id": in.StoreID, "rating": value},
	})

	return rating, nil
}
