package auth_test

import (
	"testing"
	"time"

	"lsu-service/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func testUser() *auth.User {
	return &auth.User{
		ID:       42,
		Username: "mdupont",
		Email:    "m.dupont@ecole-du-cap.fr",
		Role:     auth.RoleTeacher,
	}
}

func TestAccessTokenRoundtrip(t *testing.T) {
	token, err := auth.GenerateAccessToken(testSecret, testUser(), 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateAccessToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "m.dupont@ecole-du-cap.fr", claims.Email)
	assert.Equal(t, auth.RoleTeacher, claims.Role)
	assert.Equal(t, "mdupont", claims.Subject)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateAccessToken(testSecret, testUser(), 15*time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateAccessToken("another-secret", token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := auth.GenerateAccessToken(testSecret, testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateAccessToken(testSecret, token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := auth.ValidateAccessToken(testSecret, "not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	first, err := auth.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := auth.GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
