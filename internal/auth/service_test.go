// File: internal/auth/service_test.go
package auth

import (
	"testing"
	"time"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService(ttl time.Duration) *JWTService {
	cfg := &config.Config{
		JWTSecretKey: "test-secret-key-for-unit-tests",
		SessionTTL:   ttl,
	}
	return NewJWTService(cfg, zap.NewNop())
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	u := shared.AuthUser{ID: "user-1", Email: "u@example.com", Name: "U", Role: common.RoleAdmin}

	token, expiresAt, err := svc.GenerateAccessToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, common.RoleAdmin, claims.Role)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateAccessToken(shared.AuthUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, _, err := svc.GenerateAccessToken(shared.AuthUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTService_RejectsTokenFromOtherSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	other := NewJWTService(&config.Config{JWTSecretKey: "different-secret", SessionTTL: time.Hour}, zap.NewNop())

	token, _, err := other.GenerateAccessToken(shared.AuthUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
