package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParseToken(t *testing.T) {
	token, exp, err := GenerateToken(testSecret, "sess-1", "admin@example.com", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSecret, "sess-1", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-secret-another-secret-xx"), token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, _, err := GenerateToken(testSecret, "sess-1", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}
