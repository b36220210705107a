// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/spicerack-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "spicerack-test"
	cfg.JWT.Secret = "test-secret-at-least-32-characters-long"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = 4 // keep the test fast
	return cfg
}

func TestPasswordHashAndVerify(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("Sp1cy!Jollof")
	require.NoError(t, err)
	assert.NotEqual(t, "Sp1cy!Jollof", hash)

	assert.NoError(t, pm.VerifyPassword("Sp1cy!Jollof", hash))
	assert.Error(t, pm.VerifyPassword("wrong-password", hash))
}

func TestPasswordValidation(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sp1cy!Jollof", false},
		{"too short", "Ab1!", true},
		{"no uppercase", "sp1cy!jollof", true},
		{"no number", "Spicy!Jollof", true},
		{"no special character", "Sp1cyJollof", true},
		{"common password", "Password123!", true},
		{"repeating characters", "Sp1cy!Jolllof", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateAccessToken("cust-123", "chidi@example.com", "admin")
	require.NoError(t, err)

	claims, err := jm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-123", claims.CustomerID)
	assert.Equal(t, "chidi@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateRefreshToken("cust-123", "chidi@example.com")
	require.NoError(t, err)

	_, err = jm.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := jm.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-123", claims.CustomerID)
	assert.False(t, claims.IsAdmin())
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateAccessToken("cust-123", "chidi@example.com", "customer")
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-completely-different-signing-secret"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}
