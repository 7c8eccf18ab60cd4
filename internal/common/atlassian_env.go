package common

import (
	"os"
	"strings"

	"github.com/ternarybob/pons/internal/atlassian"
)

// SeparateConfigs holds independently resolved Jira and Confluence
// connections. Either side may be nil when its environment variables are
// absent; mixed deployments (cloud Jira with a Data Center Confluence,
// or the reverse) are fully supported.
type SeparateConfigs struct {
	Jira       *atlassian.Config
	Confluence *atlassian.Config
}

// envNames describes the variable set for one service, with the shared
// ATLASSIAN_* variables as fallbacks.
type envNames struct {
	url            string
	email          string
	apiToken       string
	patToken       string
	deploymentType string
}

var jiraEnv = envNames{
	url:            "JIRA_URL",
	email:          "JIRA_USER_EMAIL",
	apiToken:       "JIRA_API_TOKEN",
	patToken:       "JIRA_PAT_TOKEN",
	deploymentType: "JIRA_DEPLOYMENT_TYPE",
}

var confluenceEnv = envNames{
	url:            "CONFLUENCE_URL",
	email:          "CONFLUENCE_USER_EMAIL",
	apiToken:       "CONFLUENCE_API_TOKEN",
	patToken:       "CONFLUENCE_PAT_TOKEN",
	deploymentType: "CONFLUENCE_DEPLOYMENT_TYPE",
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// normalizeSiteName turns a bare Atlassian cloud site name like
// "mycompany.atlassian.net" into a full https URL. Values that already
// carry a scheme pass through untouched.
func normalizeSiteName(value string) string {
	if strings.Contains(value, "://") {
		return value
	}
	if strings.Contains(value, ".atlassian.net") {
		return "https://" + value
	}
	return value
}

// resolveDeploymentType applies an explicit override when present and
// valid, otherwise classifies the URL.
func resolveDeploymentType(baseURL, override string) atlassian.DeploymentType {
	if override != "" {
		dt := atlassian.DeploymentType(strings.ToLower(override))
		if dt.IsValid() {
			return dt
		}
		GetLogger().Warn().
			Str("value", override).
			Msg("Ignoring invalid deployment type override")
	}
	return atlassian.DetectDeploymentType(baseURL)
}

// configFromEnv resolves one service's connection. Returns (nil, nil) when
// the service is not configured at all, and an error when it is configured
// but incomplete or invalid.
func configFromEnv(names envNames, serviceLabel string) (*atlassian.Config, error) {
	rawURL := envOr(names.url, "ATLASSIAN_SITE_NAME")
	if rawURL == "" {
		return nil, nil
	}

	baseURL := normalizeSiteName(rawURL)
	validation := atlassian.ValidateURL(baseURL)
	if !validation.IsValid {
		return nil, atlassian.NewConfigError("invalid %s URL %q: %s", serviceLabel, rawURL, validation.Error)
	}

	deploymentType := resolveDeploymentType(baseURL, envOr(names.deploymentType, "ATLASSIAN_DEPLOYMENT_TYPE"))

	email := envOr(names.email, "ATLASSIAN_USER_EMAIL")
	apiToken := envOr(names.apiToken, "ATLASSIAN_API_TOKEN")
	patToken := envOr(names.patToken, "ATLASSIAN_PAT_TOKEN")

	normalized, err := atlassian.NormalizeURL(baseURL)
	if err != nil {
		return nil, atlassian.NewConfigError("invalid %s URL %q: %s", serviceLabel, rawURL, err)
	}

	config := &atlassian.Config{
		BaseURL:        normalized,
		DeploymentType: deploymentType,
	}

	switch deploymentType {
	case atlassian.DeploymentCloud:
		if email == "" || apiToken == "" {
			return nil, atlassian.NewConfigError(
				"%s cloud deployment requires both email and API token (%s/%s)",
				serviceLabel, names.email, names.apiToken)
		}
		config.Email = email
		config.APIToken = apiToken
	default:
		// Server/DC: a personal access token wins over basic credentials.
		if patToken != "" {
			config.APIToken = patToken
		} else if email != "" && apiToken != "" {
			config.Email = email
			config.APIToken = apiToken
		} else {
			return nil, atlassian.NewConfigError(
				"%s server deployment requires either a personal access token (%s) or username and token (%s/%s)",
				serviceLabel, names.patToken, names.email, names.apiToken)
		}
	}

	return config, nil
}

// GetJiraConfigFromEnv resolves the Jira connection from JIRA_* variables,
// falling back to the shared ATLASSIAN_* set. Returns (nil, nil) when no
// Jira URL is configured.
func GetJiraConfigFromEnv() (*atlassian.Config, error) {
	return configFromEnv(jiraEnv, "Jira")
}

// GetConfluenceConfigFromEnv resolves the Confluence connection from
// CONFLUENCE_* variables, falling back to the shared ATLASSIAN_* set.
// Returns (nil, nil) when no Confluence URL is configured.
func GetConfluenceConfigFromEnv() (*atlassian.Config, error) {
	return configFromEnv(confluenceEnv, "Confluence")
}

// GetSeparateConfigsFromEnv resolves both services. A service that is
// simply absent yields a nil entry; a misconfigured one fails the whole
// resolution so the operator sees the problem at startup.
func GetSeparateConfigsFromEnv() (*SeparateConfigs, error) {
	jira, err := GetJiraConfigFromEnv()
	if err != nil {
		return nil, err
	}
	confluence, err := GetConfluenceConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return &SeparateConfigs{Jira: jira, Confluence: confluence}, nil
}

// GetConfigFromEnv resolves the legacy single-site configuration from the
// ATLASSIAN_* variables alone. ATLASSIAN_SITE_NAME is required here; the
// per-service resolvers above are the preferred path.
func GetConfigFromEnv() (*atlassian.Config, error) {
	rawURL := os.Getenv("ATLASSIAN_SITE_NAME")
	if rawURL == "" {
		return nil, atlassian.NewConfigError("Missing ATLASSIAN_SITE_NAME in environment variables")
	}

	baseURL := normalizeSiteName(rawURL)
	validation := atlassian.ValidateURL(baseURL)
	if !validation.IsValid {
		return nil, atlassian.NewConfigError("invalid ATLASSIAN_SITE_NAME %q: %s", rawURL, validation.Error)
	}

	deploymentType := resolveDeploymentType(baseURL, os.Getenv("ATLASSIAN_DEPLOYMENT_TYPE"))

	normalized, err := atlassian.NormalizeURL(baseURL)
	if err != nil {
		return nil, atlassian.NewConfigError("invalid ATLASSIAN_SITE_NAME %q: %s", rawURL, err)
	}

	config := &atlassian.Config{
		BaseURL:        normalized,
		DeploymentType: deploymentType,
	}

	email := os.Getenv("ATLASSIAN_USER_EMAIL")
	apiToken := os.Getenv("ATLASSIAN_API_TOKEN")
	patToken := os.Getenv("ATLASSIAN_PAT_TOKEN")

	switch deploymentType {
	case atlassian.DeploymentCloud:
		if email == "" || apiToken == "" {
			return nil, atlassian.NewConfigError(
				"cloud deployment requires both email and API token (ATLASSIAN_USER_EMAIL/ATLASSIAN_API_TOKEN)")
		}
		config.Email = email
		config.APIToken = apiToken
	default:
		if patToken != "" {
			config.APIToken = patToken
		} else if email != "" && apiToken != "" {
			config.Email = email
			config.APIToken = apiToken
		} else {
			return nil, atlassian.NewConfigError(
				"server deployment requires either ATLASSIAN_PAT_TOKEN or ATLASSIAN_USER_EMAIL/ATLASSIAN_API_TOKEN")
		}
	}

	return config, nil
}

// ValidateConfig checks a resolved configuration for internal consistency.
// A deployment type that disagrees with what the URL suggests is only a
// warning: operators may front Server/DC behind arbitrary domains.
func ValidateConfig(config *atlassian.Config) error {
	if config == nil {
		return atlassian.NewConfigError("configuration is nil")
	}
	validation := atlassian.ValidateURL(config.BaseURL)
	if !validation.IsValid {
		return atlassian.NewConfigError("invalid base URL: %s", validation.Error)
	}
	if detected := atlassian.DetectDeploymentType(config.BaseURL); detected != config.DeploymentType {
		GetLogger().Warn().
			Str("url", config.BaseURL).
			Str("configured", string(config.DeploymentType)).
			Str("detected", string(detected)).
			Msg("Deployment type override differs from URL classification")
	}
	if _, err := atlassian.NewValidatedAuthStrategy(config); err != nil {
		return err
	}
	return nil
}
