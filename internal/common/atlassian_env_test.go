package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/pons/internal/atlassian"
)

// clearAtlassianEnv blanks every variable the resolvers read so tests are
// insulated from the ambient environment.
func clearAtlassianEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ATLASSIAN_SITE_NAME", "ATLASSIAN_USER_EMAIL", "ATLASSIAN_API_TOKEN",
		"ATLASSIAN_PAT_TOKEN", "ATLASSIAN_DEPLOYMENT_TYPE",
		"JIRA_URL", "JIRA_USER_EMAIL", "JIRA_API_TOKEN",
		"JIRA_PAT_TOKEN", "JIRA_DEPLOYMENT_TYPE",
		"CONFLUENCE_URL", "CONFLUENCE_USER_EMAIL", "CONFLUENCE_API_TOKEN",
		"CONFLUENCE_PAT_TOKEN", "CONFLUENCE_DEPLOYMENT_TYPE",
	} {
		t.Setenv(name, "")
	}
}

func TestGetConfigFromEnv_MissingSiteName(t *testing.T) {
	clearAtlassianEnv(t)

	config, err := GetConfigFromEnv()
	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing ATLASSIAN_SITE_NAME")
}

func TestGetConfigFromEnv_BareSiteName(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "mycompany.atlassian.net")
	t.Setenv("ATLASSIAN_USER_EMAIL", "user@example.com")
	t.Setenv("ATLASSIAN_API_TOKEN", "token123")

	config, err := GetConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://mycompany.atlassian.net", config.BaseURL)
	assert.Equal(t, atlassian.DeploymentCloud, config.DeploymentType)
	assert.Equal(t, "user@example.com", config.Email)
	assert.Equal(t, "token123", config.APIToken)
}

func TestGetConfigFromEnv_CloudMissingCredentials(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://mycompany.atlassian.net")
	t.Setenv("ATLASSIAN_USER_EMAIL", "user@example.com")

	config, err := GetConfigFromEnv()
	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email and API token")
}

func TestGetConfigFromEnv_ServerPATPriority(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://jira.internal.company.com")
	t.Setenv("ATLASSIAN_USER_EMAIL", "admin")
	t.Setenv("ATLASSIAN_API_TOKEN", "basicpw")
	t.Setenv("ATLASSIAN_PAT_TOKEN", "pat-token")

	config, err := GetConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, atlassian.DeploymentServer, config.DeploymentType)
	// PAT wins: email stays empty so the auth strategy picks Bearer.
	assert.Empty(t, config.Email)
	assert.Equal(t, "pat-token", config.APIToken)
}

func TestGetConfigFromEnv_ServerBasicFallback(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://jira.internal.company.com")
	t.Setenv("ATLASSIAN_USER_EMAIL", "admin")
	t.Setenv("ATLASSIAN_API_TOKEN", "basicpw")

	config, err := GetConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "admin", config.Email)
	assert.Equal(t, "basicpw", config.APIToken)
}

func TestGetConfigFromEnv_ServerNoCredentials(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://jira.internal.company.com")

	_, err := GetConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ATLASSIAN_PAT_TOKEN")
}

func TestGetConfigFromEnv_DeploymentOverride(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://jira.proxy.example.com")
	t.Setenv("ATLASSIAN_DEPLOYMENT_TYPE", "cloud")
	t.Setenv("ATLASSIAN_USER_EMAIL", "user@example.com")
	t.Setenv("ATLASSIAN_API_TOKEN", "token123")

	config, err := GetConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, atlassian.DeploymentCloud, config.DeploymentType)
}

func TestGetConfigFromEnv_InvalidDeploymentOverrideIgnored(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://mycompany.atlassian.net")
	t.Setenv("ATLASSIAN_DEPLOYMENT_TYPE", "hybrid")
	t.Setenv("ATLASSIAN_USER_EMAIL", "user@example.com")
	t.Setenv("ATLASSIAN_API_TOKEN", "token123")

	config, err := GetConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, atlassian.DeploymentCloud, config.DeploymentType)
}

func TestGetJiraConfigFromEnv_Unconfigured(t *testing.T) {
	clearAtlassianEnv(t)

	config, err := GetJiraConfigFromEnv()
	assert.Nil(t, config)
	assert.NoError(t, err)
}

func TestGetJiraConfigFromEnv_FallsBackToShared(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://mycompany.atlassian.net")
	t.Setenv("ATLASSIAN_USER_EMAIL", "user@example.com")
	t.Setenv("ATLASSIAN_API_TOKEN", "token123")

	config, err := GetJiraConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://mycompany.atlassian.net", config.BaseURL)
	assert.Equal(t, atlassian.DeploymentCloud, config.DeploymentType)
}

func TestGetJiraConfigFromEnv_NormalizesBaseURL(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("JIRA_URL", "https://jira.internal.company.com/jira/")
	t.Setenv("JIRA_PAT_TOKEN", "jira-pat")

	config, err := GetJiraConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://jira.internal.company.com", config.BaseURL)
}

func TestGetJiraConfigFromEnv_UpgradesHTTPForPublicHost(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("JIRA_URL", "http://jira.example.com")
	t.Setenv("JIRA_PAT_TOKEN", "jira-pat")

	config, err := GetJiraConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", config.BaseURL)
}

func TestGetJiraConfigFromEnv_ServiceVariablesWin(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("ATLASSIAN_SITE_NAME", "https://mycompany.atlassian.net")
	t.Setenv("ATLASSIAN_USER_EMAIL", "shared@example.com")
	t.Setenv("ATLASSIAN_API_TOKEN", "shared-token")
	t.Setenv("JIRA_URL", "https://jira.internal.company.com")
	t.Setenv("JIRA_PAT_TOKEN", "jira-pat")

	config, err := GetJiraConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://jira.internal.company.com", config.BaseURL)
	assert.Equal(t, atlassian.DeploymentServer, config.DeploymentType)
	assert.Equal(t, "jira-pat", config.APIToken)
	assert.Empty(t, config.Email)
}

func TestGetSeparateConfigsFromEnv_MixedDeployments(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("JIRA_URL", "https://mycompany.atlassian.net")
	t.Setenv("JIRA_USER_EMAIL", "user@example.com")
	t.Setenv("JIRA_API_TOKEN", "cloud-token")
	t.Setenv("CONFLUENCE_URL", "https://wiki.internal.company.com")
	t.Setenv("CONFLUENCE_PAT_TOKEN", "dc-pat")

	configs, err := GetSeparateConfigsFromEnv()
	require.NoError(t, err)
	require.NotNil(t, configs.Jira)
	require.NotNil(t, configs.Confluence)
	assert.Equal(t, atlassian.DeploymentCloud, configs.Jira.DeploymentType)
	assert.Equal(t, atlassian.DeploymentServer, configs.Confluence.DeploymentType)
}

func TestGetSeparateConfigsFromEnv_OneSideOnly(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("JIRA_URL", "https://mycompany.atlassian.net")
	t.Setenv("JIRA_USER_EMAIL", "user@example.com")
	t.Setenv("JIRA_API_TOKEN", "cloud-token")

	configs, err := GetSeparateConfigsFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, configs.Jira)
	assert.Nil(t, configs.Confluence)
}

func TestGetSeparateConfigsFromEnv_MisconfiguredServiceFails(t *testing.T) {
	clearAtlassianEnv(t)
	t.Setenv("JIRA_URL", "https://mycompany.atlassian.net")
	// Cloud deployment without credentials must fail loudly rather than
	// silently skipping the service.
	_, err := GetSeparateConfigsFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Jira")
}

func TestValidateConfig(t *testing.T) {
	clearAtlassianEnv(t)

	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, ValidateConfig(nil))
	})

	t.Run("valid cloud config", func(t *testing.T) {
		err := ValidateConfig(&atlassian.Config{
			BaseURL:        "https://mycompany.atlassian.net",
			DeploymentType: atlassian.DeploymentCloud,
			Email:          "user@example.com",
			APIToken:       "token123",
		})
		assert.NoError(t, err)
	})

	t.Run("cloud config without credentials", func(t *testing.T) {
		err := ValidateConfig(&atlassian.Config{
			BaseURL:        "https://mycompany.atlassian.net",
			DeploymentType: atlassian.DeploymentCloud,
		})
		assert.Error(t, err)
	})
}

func TestNormalizeSiteName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"mycompany.atlassian.net", "https://mycompany.atlassian.net"},
		{"https://mycompany.atlassian.net", "https://mycompany.atlassian.net"},
		{"http://jira.local", "http://jira.local"},
		{"jira.internal.company.com", "jira.internal.company.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeSiteName(tt.input), "input %q", tt.input)
	}
}
