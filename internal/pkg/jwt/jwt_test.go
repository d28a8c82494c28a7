package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "papa@tacos.ci", "owner", 3, "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "papa@tacos.ci", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, uint(3), claims.TokenVersion)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "papa@tacos.ci", "owner", 1, "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(7, "papa@tacos.ci", "cashier", 1, "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	token, err := GenerateRefreshToken(9, "abc-123", "refresh", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh")
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "abc-123", claims.TokenID)
	assert.Equal(t, "abc-123", claims.ID)

	_, err = ValidateRefreshToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
