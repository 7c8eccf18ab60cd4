package atlassian

import (
	"encoding/base64"
	"strings"
)

// AuthStrategy produces the request headers for one credential scheme.
// Strategies are constructed fresh from a Config, hold no state beyond their
// constructor arguments, and are never mutated.
type AuthStrategy interface {
	// AuthHeaders returns the headers to attach to every API request.
	AuthHeaders() map[string]string
	// AuthType returns a diagnostic label for logging.
	AuthType() string
	// Validate checks the credential material before the first network call.
	Validate() error
}

// CloudAuthStrategy authenticates against Atlassian Cloud with email and API
// token over Basic Auth.
type CloudAuthStrategy struct {
	Email    string
	APIToken string
}

// NewCloudAuthStrategy creates a Cloud Basic Auth strategy.
func NewCloudAuthStrategy(email, apiToken string) *CloudAuthStrategy {
	return &CloudAuthStrategy{Email: email, APIToken: apiToken}
}

func (s *CloudAuthStrategy) AuthHeaders() map[string]string {
	credentials := base64.StdEncoding.EncodeToString([]byte(s.Email + ":" + s.APIToken))
	return map[string]string{
		"Authorization": "Basic " + credentials,
		"Accept":        "application/json",
		"Content-Type":  "application/json",
	}
}

func (s *CloudAuthStrategy) AuthType() string {
	return "Cloud Basic Auth (email:token)"
}

func (s *CloudAuthStrategy) Validate() error {
	if s.Email == "" || s.APIToken == "" {
		return NewConfigError("cloud auth requires both email and API token")
	}
	if !strings.Contains(s.Email, "@") {
		return NewConfigError("invalid email format for cloud auth")
	}
	return nil
}

// ServerAuthStrategy authenticates against Server/DC. With a username it uses
// Basic Auth (username:password); without one the token is treated as a PAT
// and sent as a Bearer token.
type ServerAuthStrategy struct {
	Token    string
	Username string
}

// NewServerAuthStrategy creates a Server/DC strategy. Pass an empty username
// for PAT mode.
func NewServerAuthStrategy(token, username string) *ServerAuthStrategy {
	return &ServerAuthStrategy{Token: token, Username: username}
}

func (s *ServerAuthStrategy) usesPAT() bool {
	return s.Username == ""
}

func (s *ServerAuthStrategy) AuthHeaders() map[string]string {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}

	if s.usesPAT() {
		headers["Authorization"] = "Bearer " + s.Token
	} else {
		credentials := base64.StdEncoding.EncodeToString([]byte(s.Username + ":" + s.Token))
		headers["Authorization"] = "Basic " + credentials
	}

	return headers
}

func (s *ServerAuthStrategy) AuthType() string {
	if s.usesPAT() {
		return "Server PAT (Bearer token)"
	}
	return "Server Basic Auth (username:password)"
}

func (s *ServerAuthStrategy) Validate() error {
	if s.Token == "" {
		return NewConfigError("server auth requires a token")
	}
	return nil
}

// NewAuthStrategy selects the strategy variant for a config: Cloud always
// gets CloudAuthStrategy; Server/DC gets PAT mode when no username is
// present, Basic mode otherwise.
func NewAuthStrategy(config *Config) AuthStrategy {
	if config.DeploymentType == DeploymentCloud {
		return NewCloudAuthStrategy(config.Email, config.APIToken)
	}
	return NewServerAuthStrategy(config.APIToken, config.Email)
}

// NewValidatedAuthStrategy builds and validates a strategy. On a validation
// failure the caller must abort the operation: credentials will not fix
// themselves, so there is nothing to retry.
func NewValidatedAuthStrategy(config *Config) (AuthStrategy, error) {
	strategy := NewAuthStrategy(config)
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	return strategy, nil
}
