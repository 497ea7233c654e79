package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	staffID := "STAFF001"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "km.silva@kln.ac.lk", user.RoleStaff, ProfileClaims{StaffID: &staffID})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "staff", claims["role"])
	assert.Equal(t, "STAFF001", claims["staff_id"])
	assert.Nil(t, claims["mentor_id"])
	assert.NotEmpty(t, decoded.JwtID())
	assert.False(t, decoded.IssuedAt().IsZero())
}

func TestJWTService_RevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "coordinator@kln.ac.lk", user.RoleCoordinator, ProfileClaims{})
	require.NoError(t, err)
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(decoded.JwtID()))

	svc.RevokeToken(decoded.JwtID(), expiresAt)
	assert.True(t, svc.IsTokenRevoked(decoded.JwtID()))
}

func TestJWTService_SessionsHaveDistinctIDs(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	fixed := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return fixed }

	first, expiresAt, err := svc.GenerateAccessToken("user-1", "coordinator@kln.ac.lk", user.RoleCoordinator, ProfileClaims{})
	require.NoError(t, err)
	second, _, err := svc.GenerateAccessToken("user-1", "coordinator@kln.ac.lk", user.RoleCoordinator, ProfileClaims{})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstDecoded, err := svc.JWTAuth().Decode(first)
	require.NoError(t, err)
	secondDecoded, err := svc.JWTAuth().Decode(second)
	require.NoError(t, err)

	// Signing out one session leaves the other alone
	svc.RevokeToken(firstDecoded.JwtID(), expiresAt)
	assert.True(t, svc.IsTokenRevoked(firstDecoded.JwtID()))
	assert.False(t, svc.IsTokenRevoked(secondDecoded.JwtID()))
}

func TestJWTService_TokenWithoutIDCountsAsRevoked(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	assert.True(t, svc.IsTokenRevoked(""))
}

func TestJWTService_PruneRevoked(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	svc.RevokeToken("stale", time.Now().Add(-time.Minute).Unix())
	svc.RevokeToken("fresh", time.Now().Add(time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("stale"))

	assert.Equal(t, 1, svc.PruneRevoked())
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("fresh"))
	assert.Equal(t, 0, svc.PruneRevoked())
}
