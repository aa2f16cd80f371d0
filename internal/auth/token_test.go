package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/store-rating/internal/models"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)

	for _, role := range models.Roles() {
		token, err := issuer.Issue(42, "john@example.com", role)
		require.NoError(t, err)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, Identity{ID: 42, Email: "john@example.com", Role: role}, claims.Identity())
		assert.Equal(t, DefaultTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", 24*time.Hour)
	past := issuer.WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })

	token, err := past.Issue(1, "a@b.co", models.RoleUser)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	start := time.Now()
	issuer := NewTokenIssuer("secret", time.Hour).WithClock(func() time.Time { return start })

	token, err := issuer.Issue(1, "a@b.co", models.RoleAdmin)
	require.NoError(t, err)

	later := issuer.WithClock(func() time.Time { return start.Add(59 * time.Minute) })
	_, err = later.Verify(token)
	assert.NoError(t, err)

	after := issuer.WithClock(func() time.Time { return start.Add(61 * time.Minute) })
	_, err = after.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyInvalid(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	foreign, err := other.Issue(1, "a@b.co", models.RoleUser)
	require.NoError(t, err)

	good, err := issuer.Issue(1, "a@b.co", models.RoleUser)
	require.NoError(t, err)
	tampered := tamperSignature(good)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"empty":         "",
		"bad signature": foreign,
		"tampered":      tampered,
	} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
		assert.NotErrorIs(t, err, ErrExpiredToken, name)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	claims := Claims{
		ID:    1,
		Email: "a@b.co",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    1,
		"email": "a@b.co",
		"role":  "root",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Issue(1, "a@b.co", models.Role("root"))
	assert.Error(t, err)
}

// tamperSignature rewrites the first signature character so the decoded
// signature bytes change.
func tamperSignature(token string) string {
	parts := strings.Split(token, ".")
	sig := parts[2]
	repl := "A"
	if sig[0] == 'A' {
		repl = "B"
	}
	parts[2] = repl + sig[1:]
	return strings.Join(parts, ".")
}
