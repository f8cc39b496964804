package credentials_test

import (
	"testing"

	"carrierlink/internal/adapters/out/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.ErrorIs(t, h.Compare(hash, "wrong horse"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("password123")
	require.NoError(t, err)
	b, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(string(make([]byte, 73)))
	assert.Error(t, err)
}
