package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("alohomora")
	require.NoError(t, err)
	assert.NotEqual(t, "alohomora", hash)

	assert.NoError(t, hasher.Compare(hash, "alohomora"))
	assert.ErrorIs(t, hasher.Compare(hash, "Alohomora"), ErrPasswordMismatch)
	assert.Error(t, hasher.Compare("not-a-hash", "alohomora"))
}

func TestBcryptHasher_Salted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	first, err := hasher.Hash("alohomora")
	require.NoError(t, err)
	second, err := hasher.Hash("alohomora")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
