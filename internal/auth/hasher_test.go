package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)

	assert.True(t, h.Verify("pw123", digest))
	assert.False(t, h.Verify("pw124", digest))
	assert.False(t, h.Verify("pw12", digest))
	assert.False(t, h.Verify("", digest))
}

func TestBcryptHasherSaltsEachDigest(t *testing.T) {
	h := NewBcryptHasherWithCost(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasherRejectsEmptyPassword(t *testing.T) {
	_, err := NewBcryptHasher().Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	h := NewBcryptHasher()
	for _, digest := range []string{"", "not-a-hash", "$2a$10$short", "$2a$99$" + string(make([]byte, 53))} {
		assert.False(t, h.Verify("pw123", digest), digest)
	}
}

func TestNewBcryptHasherWithCostClampsInvalid(t *testing.T) {
	assert.Equal(t, Cost, NewBcryptHasherWithCost(1000).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasherWithCost(bcrypt.MinCost).cost)
}

func TestBcryptHasherPasswordLength(t *testing.T) {
	h := NewBcryptHasherWithCost(bcrypt.MinCost)

	longest := strings.Repeat("p", MaxPasswordBytes)
	digest, err := h.Hash(longest)
	require.NoError(t, err)
	assert.True(t, h.Verify(longest, digest))

	_, err = h.Hash(longest + "p")
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// multi-byte runes count in bytes, not characters
	_, err = h.Hash(strings.Repeat("é", 37))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
