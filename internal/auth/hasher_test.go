package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashProducesUniqueSalts(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher()

	h1, err := h.Hash("pw1")
	require.NoError(t, err)
	h2, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("pw1", h1))
	assert.True(t, h.Verify("pw1", h2))
}

func TestBcryptHasher_VerifyWrongPassword(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher()

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.False(t, h.Verify("battery staple", hash))
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher()

	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("pw", ""))
}
