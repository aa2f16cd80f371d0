package auth

import (
	"context"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePassword struct {
	users  domain.Repository
	hasher PasswordHasher
	audit  *audit.Dispatcher
}

func NewChangePassword(
	users domain.Repository,
	hasher PasswordHasher,
	audit *audit.Dispatcher,
) *ChangePassword {
	return &ChangePassword{users: users, hasher: hasher, audit: audit}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	in ChangePasswordInput,
) error {

	if in.CurrentPassword == "" || in.NewPassword == "" {
		return httperr.Validation("missing_fields", "Current password and new password are required")
	}
	if err := validators.NewPassword(in.NewPassword); err != nil {
		return err
	}

	user, err := uc.users.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return httperr.NotFoundErr("user_not_found", "User not found")
	}

	ok, err := uc.hasher.Compare(user.PasswordHash, in.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.Unauthenticated("current_password_incorrect", "Current password is incorrect")
	}

	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(user.ID),
		Action:   audit.ActionPasswordChanged,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(user.ID),
	})
	return nil
}
