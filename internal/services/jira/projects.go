package jira

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ternarybob/pons/internal/atlassian"
)

// ListProjects returns all projects visible to the authenticated user.
// Cloud returns a paginated envelope, Server/DC a bare array; both shapes
// are reduced to a plain list.
func (s *Service) ListProjects(ctx context.Context) ([]map[string]interface{}, error) {
	data, err := s.client.Call(ctx, atlassian.ServiceJira, "projects.all", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var direct []map[string]interface{}
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct, nil
	}

	var paged struct {
		Values []map[string]interface{} `json:"values"`
	}
	if err := json.Unmarshal(data, &paged); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	return paged.Values, nil
}

// GetProject fetches a single project by id or key.
func (s *Service) GetProject(ctx context.Context, projectKey string) (map[string]interface{}, error) {
	if projectKey == "" {
		return nil, atlassian.NewValidationError("project key must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "projects.get",
		map[string]string{"projectIdOrKey": projectKey}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}
