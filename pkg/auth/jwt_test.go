package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "unit-test-secret",
		Issuer:     "tally",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.GenerateToken(userID, tenantID, []string{"bookkeeper"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.True(t, claims.HasRole("bookkeeper"))
	assert.False(t, claims.HasRole("admin"))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "secret-a", Issuer: "tally"})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{Secret: "secret-b", Issuer: "tally"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingTenant(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "unit-test-secret", Issuer: "tally"})
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), uuid.Nil, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorContains(t, err, "tenant_id")
}

func TestNewJWTServiceRequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}
