package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserve-backend/domain"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret")

	token, err := svc.GenerateTokenUser("user-1", domain.RoleNGO)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleNGO, role)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTServiceWithSecret("a").GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = NewJWTServiceWithSecret("b").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := &jwtService{secretKey: "secret", issuer: "RESERVE", now: func() time.Time {
		return time.Now().Add(-3 * time.Hour)
	}}
	token, err := svc.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	_, _, err := NewJWTServiceWithSecret("secret").GetUserIDByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
