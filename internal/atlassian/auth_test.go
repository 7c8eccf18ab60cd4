package atlassian

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBasicAuth(t *testing.T, header string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(header, "Basic "), "expected Basic auth header, got %q", header)
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	require.NoError(t, err)
	return string(decoded)
}

func TestCloudAuthStrategyHeaders(t *testing.T) {
	strategy := NewCloudAuthStrategy("user@example.com", "token123")
	headers := strategy.AuthHeaders()

	assert.Equal(t, "user@example.com:token123", decodeBasicAuth(t, headers["Authorization"]))
	assert.Equal(t, "application/json", headers["Accept"])
	assert.Equal(t, "application/json", headers["Content-Type"])
}

func TestCloudAuthStrategyValidate(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		token   string
		wantErr string
	}{
		{"valid", "user@example.com", "token123", ""},
		{"missing email", "", "token123", "email and API token"},
		{"missing token", "user@example.com", "", "email and API token"},
		{"email without at sign", "userexample.com", "token123", "email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCloudAuthStrategy(tt.email, tt.token).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestServerAuthStrategyPATMode(t *testing.T) {
	strategy := NewServerAuthStrategy("pat123", "")

	assert.Equal(t, "Bearer pat123", strategy.AuthHeaders()["Authorization"])
	assert.Equal(t, "Server PAT (Bearer token)", strategy.AuthType())
	assert.NoError(t, strategy.Validate())
}

func TestServerAuthStrategyBasicMode(t *testing.T) {
	strategy := NewServerAuthStrategy("pw", "admin")

	assert.Equal(t, "admin:pw", decodeBasicAuth(t, strategy.AuthHeaders()["Authorization"]))
	assert.Equal(t, "Server Basic Auth (username:password)", strategy.AuthType())
	assert.NoError(t, strategy.Validate())
}

func TestServerAuthStrategyValidateMissingToken(t *testing.T) {
	err := NewServerAuthStrategy("", "admin").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNewAuthStrategySelection(t *testing.T) {
	cloud := NewAuthStrategy(&Config{
		DeploymentType: DeploymentCloud,
		Email:          "user@example.com",
		APIToken:       "token123",
	})
	assert.IsType(t, &CloudAuthStrategy{}, cloud)

	serverPAT := NewAuthStrategy(&Config{
		DeploymentType: DeploymentServer,
		APIToken:       "pat123",
	})
	require.IsType(t, &ServerAuthStrategy{}, serverPAT)
	assert.Equal(t, "Server PAT (Bearer token)", serverPAT.AuthType())

	serverBasic := NewAuthStrategy(&Config{
		DeploymentType: DeploymentServer,
		Email:          "admin",
		APIToken:       "pw",
	})
	assert.Equal(t, "Server Basic Auth (username:password)", serverBasic.AuthType())
}

func TestNewValidatedAuthStrategy(t *testing.T) {
	t.Run("cloud missing credentials", func(t *testing.T) {
		_, err := NewValidatedAuthStrategy(&Config{
			DeploymentType: DeploymentCloud,
			Email:          "",
			APIToken:       "t",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email and API token")
	})

	t.Run("valid server PAT", func(t *testing.T) {
		strategy, err := NewValidatedAuthStrategy(&Config{
			DeploymentType: DeploymentServer,
			APIToken:       "pat123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer pat123", strategy.AuthHeaders()["Authorization"])
	})
}
