// Package jira exposes deployment-aware Jira operations on top of the
// shared Atlassian client. Methods return the decoded REST payloads; the
// MCP layer is responsible for presentation.
package jira

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/atlassian"
)

type Service struct {
	client *atlassian.Client
	logger arbor.ILogger
}

func NewService(client *atlassian.Client, logger arbor.ILogger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Client returns the underlying Atlassian client.
func (s *Service) Client() *atlassian.Client {
	return s.client
}

// DeploymentType returns the deployment type of the connected instance.
func (s *Service) DeploymentType() atlassian.DeploymentType {
	return s.client.DeploymentType()
}

// VerifyAuth probes the myself endpoint and returns the authenticated user,
// normalized for the deployment type.
func (s *Service) VerifyAuth(ctx context.Context) (*atlassian.NormalizedUser, error) {
	data, err := s.client.Call(ctx, atlassian.ServiceJira, "users.myself", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	user := atlassian.NormalizeUser(raw, s.client.DeploymentType())
	if user == nil {
		return nil, atlassian.NewValidationError("myself response has no usable user identifier")
	}

	s.logger.Debug().
		Str("user", user.DisplayName).
		Str("authType", s.client.AuthType()).
		Msg("Verified Jira authentication")

	return user, nil
}

func decodeObject(data []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

func decodeList(data []byte) ([]map[string]interface{}, error) {
	var result []map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}
