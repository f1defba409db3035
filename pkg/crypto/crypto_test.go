package crypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!pass", hash)

	require.True(t, VerifyPassword(hash, "Str0ng!pass"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("not-a-hash", "Str0ng!pass"))
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, HashCost, cost)
}

func TestHashPasswordUsesExactBytes(t *testing.T) {
	// Surrounding whitespace is significant.
	hash, err := HashPassword(" padded ")
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, " padded "))
	require.False(t, VerifyPassword(hash, "padded"))
}

func TestRandomToken(t *testing.T) {
	token, err := RandomToken(32)
	require.NoError(t, err)
	require.Len(t, token, 64)
	require.Equal(t, strings.ToLower(token), token)

	_, err = hex.DecodeString(token)
	require.NoError(t, err)

	other, err := RandomToken(32)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestRandomTokenRejectsNonPositiveLength(t *testing.T) {
	_, err := RandomToken(0)
	require.Error(t, err)
	_, err = RandomToken(-1)
	require.Error(t, err)
}
