package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42, "ada")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "ada", claims.Username)
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42, "ada")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken("secret", -time.Minute, 42, "ada")
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	require.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := GenerateToken("secret", time.Hour, 0, "nobody")
	require.NoError(t, err)
	_, err = ParseToken("secret", anonymous)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("secret", "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
