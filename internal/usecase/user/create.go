package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ActorID uint

	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	users  domain.Repository
	hasher PasswordHasher
	audit  *audit.Dispatcher
}

func NewCreate(
	users domain.Repository,
	hasher PasswordHasher,
	audit *audit.Dispatcher,
) *Create {
	return &Create{users: users, hasher: hasher, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.User, error) {

	for _, v := range []string{in.Name, in.Email, in.Address, in.Role} {
		if strings.TrimSpace(v) == "" {
			return nil, httperr.Validation("missing_fields", "All fields are required")
		}
	}
	if in.Password == "" {
		return nil, httperr.Validation("missing_fields", "All fields are required")
	}

	email := validators.NormalizeEmail(in.Email)
	if err := validators.NewUser(in.Name, email, in.Password, in.Address); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(strings.TrimSpace(in.Role))
	if err != nil {
		return nil, httperr.Validation("invalid_role", "Role must be one of user, admin, store_owner")
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Conflict("email_taken", "User with this email already exists")
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Address:      in.Address,
		Role:         role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   audit.ActionUserCreated,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(user.ID),
		Metadata: map[string]any{"role": role},
	})

	return user, nil
}
