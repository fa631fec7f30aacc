package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenCodec_Roundtrip(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	userID := primitive.NewObjectID()

	token, err := codec.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("secret", -time.Minute)
	token, err := codec.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, err := issuer.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
