package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndMatchPassword(t *testing.T) {
	h := NewHasher()

	encoded, err := h.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")
	assert.NotContains(t, encoded, "correct horse battery staple")

	ok, err := h.MatchPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.MatchPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h := NewHasher()

	a, err := h.GenerateFromPassword("same password")
	require.NoError(t, err)

	b, err := h.GenerateFromPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestMatchPasswordBadEncoding(t *testing.T) {
	h := NewHasher()

	ok, err := h.MatchPassword("whatever", "not-a-phc-string")
	assert.ErrorIs(t, err, ErrInvalidHash)
	assert.False(t, ok)
}
