package jira

import (
	"context"
	"strconv"
	"strings"

	"github.com/ternarybob/pons/internal/atlassian"
)

// SearchUsers searches for users matching the query. The query parameter is
// remapped to username on Server/DC by the compatibility layer, and every
// result is normalized so callers see one user shape regardless of
// deployment type.
func (s *Service) SearchUsers(ctx context.Context, query string, maxResults int) ([]*atlassian.NormalizedUser, error) {
	if strings.TrimSpace(query) == "" {
		return nil, atlassian.NewValidationError("search query must not be empty")
	}

	params := map[string]string{"query": query}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "users.search", nil, params, nil)
	if err != nil {
		return nil, err
	}

	users, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	return atlassian.NormalizeUserList(users, s.client.DeploymentType(), s.logger), nil
}

// Myself returns the authenticated user.
func (s *Service) Myself(ctx context.Context) (*atlassian.NormalizedUser, error) {
	return s.VerifyAuth(ctx)
}

// ListAssignableUsers lists users assignable to issues in a project.
func (s *Service) ListAssignableUsers(ctx context.Context, projectKey string, maxResults int) ([]*atlassian.NormalizedUser, error) {
	if projectKey == "" {
		return nil, atlassian.NewValidationError("project key must not be empty")
	}

	params := map[string]string{"project": projectKey}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "users.assignable", nil, params, nil)
	if err != nil {
		return nil, err
	}

	users, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	return atlassian.NormalizeUserList(users, s.client.DeploymentType(), s.logger), nil
}
