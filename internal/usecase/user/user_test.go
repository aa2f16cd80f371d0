package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authn "github.com/BruksfildServices01/store-rating/internal/auth"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/infra/repository"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/testutil"
)

func TestCreateWithExplicitRole(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserGormRepository(db)
	uc := NewCreate(users, authn.NewPasswordHasher(bcrypt.MinCost), nil)
	ctx := context.Background()

	in := CreateInput{
		ActorID:  1,
		Name:     "Created By Administrator",
		Email:    "Made@Example.com",
		Password: "Secret@1",
		Address:  "1 Admin Way",
		Role:     "store_owner",
	}
	u, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStoreOwner, u.Role)
	assert.Equal(t, "made@example.com", u.Email)

	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	in.Email = "other@example.com"
	in.Role = "root"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	in.Role = ""
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	in.Role = "user"
	in.Email = "bad-email"
	_, err = uc.Execute(ctx, in)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email format", be.Message)
}

func TestGetAttachesStoreForOwners(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewGet(repository.NewUserGormRepository(db), repository.NewStoreGormRepository(db))
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleStoreOwner)
	store := testutil.CreateStore(t, db, "Owner Detail Test Store", owner)
	rater := testutil.CreateUser(t, db, "rater@example.com", models.RoleUser)
	testutil.CreateRating(t, db, rater, store, 4)

	detail, err := uc.Execute(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Store)
	assert.Equal(t, store.ID, detail.Store.ID)
	assert.InDelta(t, 4.0, detail.Store.AverageRating, 1e-9)

	detail, err = uc.Execute(ctx, rater.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Store)

	_, err = uc.Execute(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestListValidatesFilter(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewList(repository.NewUserGormRepository(db))
	ctx := context.Background()

	testutil.CreateUser(t, db, "zed@example.com", models.RoleUser)
	testutil.CreateUser(t, db, "amy@example.com", models.RoleAdmin)

	users, err := uc.Execute(ctx, domain.ListFilter{SortBy: "email"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "amy@example.com", users[0].Email)

	_, err = uc.Execute(ctx, domain.ListFilter{SortBy: "password"})
	assert.True(t, httperr.IsBusiness(err, "invalid_sort"))

	_, err = uc.Execute(ctx, domain.ListFilter{Role: "root"})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, err = uc.Execute(ctx, domain.ListFilter{Order: "sideways"})
	assert.True(t, httperr.IsBusiness(err, "invalid_order"))
}

func TestProfile(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewProfile(repository.NewUserGormRepository(db))

	u := testutil.CreateUser(t, db, "me@example.com", models.RoleUser)

	got, err := uc.Execute(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = uc.Execute(context.Background(), 999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
