package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret@1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret@1", hash)

	ok, err := h.Compare(hash, "Secret@1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "Secret@2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Compare("not-a-hash", "Secret@1")
	assert.Error(t, err)
}

func TestPasswordHasherFallsBackToDefaultCost(t *testing.T) {
	h := NewPasswordHasher(99)

	hash, err := h.Hash("Secret@1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}
