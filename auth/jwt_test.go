package auth

import (
	"collaborative-docs-backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := VerifyToken(token)
	assert.NoError(t, err)

	userID, err := UserIDFromToken(parsed)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("user-1")
	assert.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}
