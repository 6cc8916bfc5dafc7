package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	passwords := []string{"password123", "p", "unicode-пароль", strings.Repeat("a", 72)}
	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, h.Verify(p, hash), "password %q should verify", p)
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("correct-horse")
	require.NoError(t, err)

	assert.False(t, h.Verify("correct-hors", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_FixedCost(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestHasher_TooLong(t *testing.T) {
	h := NewHasher()

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestHasher_VerifyGarbageHash(t *testing.T) {
	h := NewHasher()

	assert.False(t, h.Verify("password", "not-a-bcrypt-hash"))
}
