package auth

import (
	"testing"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("u1", []byte("a"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("b"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", []byte("a"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}
