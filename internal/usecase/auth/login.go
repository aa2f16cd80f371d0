package auth

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

var errInvalidCredentials = httperr.Unauthenticated("invalid_credentials", "Invalid email or password")

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  domain.Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewLogin(
	users domain.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *Login {
	return &Login{users: users, hasher: hasher, tokens: tokens}
}

// Execute never tells an unknown email apart from a wrong password.
func (uc *Login) Execute(
	ctx context.Context,
	in LoginInput,
) (*Session, error) {

	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, httperr.Validation("missing_fields", "Email and password are required")
	}

	user, err := uc.users.FindByEmail(ctx, validators.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	ok, err := uc.hasher.Compare(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

