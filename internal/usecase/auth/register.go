package auth

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users  domain.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	audit  *audit.Dispatcher

	// resolver is nil unless email domain checks are enabled.
	resolver validators.Resolver
}

func NewRegister(
	users domain.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	audit *audit.Dispatcher,
	resolver validators.Resolver,
) *Register {
	return &Register{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		audit:    audit,
		resolver: resolver,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*Session, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	if blank(in.Name, in.Email, in.Address) || in.Password == "" {
		return nil, httperr.Validation("missing_fields", "All fields are required")
	}

	email := validators.NormalizeEmail(in.Email)
	if err := validators.Registration(in.Name, email, in.Password, in.Address); err != nil {
		return nil, err
	}

	if uc.resolver != nil && !validators.IsEmailDomainValid(ctx, uc.resolver, email) {
		return nil, httperr.Validation("invalid_email_domain", "Email domain does not exist")
	}

	// --------------------------------------------------
	// Uniqueness
	// --------------------------------------------------
	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Conflict("email_taken", "User with this email already exists")
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Address:      in.Address,
		Role:         models.RoleUser,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(user.ID),
		Action:   audit.ActionUserRegistered,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(user.ID),
	})

	return &Session{Token: token, User: user}, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
