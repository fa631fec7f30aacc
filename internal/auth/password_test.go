package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	require.NotEqual(t, "pw123456", hash)
	require.NotContains(t, hash, "pw123456")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	require.True(t, CheckPassword("pw123456", hash))
	require.False(t, CheckPassword("wrong", hash))
	require.False(t, CheckPassword("pw123456", "not-a-hash"))
}

func TestResetTokenRoundtrip(t *testing.T) {
	plain, hash, err := NewResetToken()
	require.NoError(t, err)
	require.NotEmpty(t, plain)
	require.NotEqual(t, plain, hash)
	require.Equal(t, hash, HashResetToken(plain))
}
