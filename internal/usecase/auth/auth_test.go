package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authn "github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/infra/repository"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/testutil"
)

const validName = "Twenty Five Character Nm!"

type fixture struct {
	users  *repository.UserGormRepository
	hasher *authn.PasswordHasher
	tokens *authn.TokenIssuer
}

func newFixture(t *testing.T) fixture {
	db := testutil.NewDB(t)
	return fixture{
		users:  repository.NewUserGormRepository(db),
		hasher: authn.NewPasswordHasher(bcrypt.MinCost),
		tokens: authn.NewTokenIssuer("test-secret", time.Hour),
	}
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	f := newFixture(t)
	uc := NewRegister(f.users, f.hasher, f.tokens, nil, nil)

	session, err := uc.Execute(context.Background(), RegisterInput{
		Name:     validName,
		Email:    " New.User@Example.com ",
		Password: "Secret@1",
		Address:  "1 Infinite Loop",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, session.User.Role)
	assert.Equal(t, "new.user@example.com", session.User.Email)
	assert.NotEqual(t, "Secret@1", session.User.PasswordHash)

	claims, err := f.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.ID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterRejections(t *testing.T) {
	f := newFixture(t)
	uc := NewRegister(f.users, f.hasher, f.tokens, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RegisterInput{Name: validName, Email: "a@b.co", Password: "Secret@1"})
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	_, err = uc.Execute(ctx, RegisterInput{Name: validName, Email: "a@b.co", Password: "secret", Address: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_password"))

	_, err = uc.Execute(ctx, RegisterInput{Name: validName, Email: "nope", Password: "Secret@1", Address: "x"})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid email", be.Message)

	in := RegisterInput{Name: validName, Email: "dup@example.com", Password: "Secret@1", Address: "x"}
	_, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestRegisterDomainCheck(t *testing.T) {
	f := newFixture(t)
	uc := NewRegister(f.users, f.hasher, f.tokens, nil, fakeResolver{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Name:     validName,
		Email:    "someone@nowhere.invalid",
		Password: "Secret@1",
		Address:  "x",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := NewRegister(f.users, f.hasher, f.tokens, nil, nil).Execute(ctx, RegisterInput{
		Name: validName, Email: "login@example.com", Password: "Secret@1", Address: "x",
	})
	require.NoError(t, err)

	uc := NewLogin(f.users, f.hasher, f.tokens)

	session, err := uc.Execute(ctx, LoginInput{Email: "LOGIN@example.com", Password: "Secret@1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	for _, in := range []LoginInput{
		{Email: "login@example.com", Password: "Wrong@123"},
		{Email: "ghost@example.com", Password: "Secret@1"},
	} {
		s, err := uc.Execute(ctx, in)
		assert.Nil(t, s)
		be, ok := httperr.AsBusiness(err)
		require.True(t, ok)
		assert.Equal(t, httperr.KindUnauthenticated, be.Kind)
		assert.Equal(t, "Invalid email or password", be.Message)
	}

	_, err = uc.Execute(ctx, LoginInput{Email: "login@example.com"})
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := NewRegister(f.users, f.hasher, f.tokens, nil, nil).Execute(ctx, RegisterInput{
		Name: validName, Email: "rotate@example.com", Password: "Secret@1", Address: "x",
	})
	require.NoError(t, err)
	id := session.User.ID

	uc := NewChangePassword(f.users, f.hasher, nil)

	err = uc.Execute(ctx, ChangePasswordInput{UserID: id, CurrentPassword: "Secret@1", NewPassword: "weak"})
	assert.True(t, httperr.IsBusiness(err, "invalid_password"))

	err = uc.Execute(ctx, ChangePasswordInput{UserID: id, CurrentPassword: "Wrong@123", NewPassword: "Better@22"})
	assert.True(t, httperr.IsBusiness(err, "current_password_incorrect"))

	require.NoError(t, uc.Execute(ctx, ChangePasswordInput{UserID: id, CurrentPassword: "Secret@1", NewPassword: "Better@22"}))

	login := NewLogin(f.users, f.hasher, f.tokens)
	_, err = login.Execute(ctx, LoginInput{Email: "rotate@example.com", Password: "Better@22"})
	assert.NoError(t, err)
	_, err = login.Execute(ctx, LoginInput{Email: "rotate@example.com", Password: "Secret@1"})
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthenticated))

	err = uc.Execute(ctx, ChangePasswordInput{UserID: 999, CurrentPassword: "Secret@1", NewPassword: "Better@22"})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
