package jira

import (
	"context"
	"strconv"
	"strings"

	"github.com/ternarybob/pons/internal/adf"
	"github.com/ternarybob/pons/internal/atlassian"
)

// SearchOptions controls issue search pagination and field selection.
type SearchOptions struct {
	Fields     []string
	MaxResults int
	StartAt    int
}

// SearchIssues runs a JQL search against the deployment's search endpoint.
func (s *Service) SearchIssues(ctx context.Context, jql string, opts *SearchOptions) (map[string]interface{}, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, atlassian.NewValidationError("jql must not be empty")
	}

	query := map[string]string{"jql": jql}
	if opts != nil {
		if len(opts.Fields) > 0 {
			query["fields"] = strings.Join(opts.Fields, ",")
		}
		if opts.MaxResults > 0 {
			query["maxResults"] = strconv.Itoa(opts.MaxResults)
		}
		if opts.StartAt > 0 {
			query["startAt"] = strconv.Itoa(opts.StartAt)
		}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.search", nil, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetIssue fetches a single issue by key or id.
func (s *Service) GetIssue(ctx context.Context, issueKey string, fields []string) (map[string]interface{}, error) {
	if issueKey == "" {
		return nil, atlassian.NewValidationError("issue key must not be empty")
	}

	var query map[string]string
	if len(fields) > 0 {
		query = map[string]string{"fields": strings.Join(fields, ",")}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.get",
		map[string]string{"issueIdOrKey": issueKey}, query, nil)
	if err != nil {
		return nil, err
	}

	issue, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	flattenDescription(issue)
	return issue, nil
}

// flattenDescription adds a plain-text rendering next to the rich text
// description, so Cloud v3 responses read the same as Server ones.
func flattenDescription(issue map[string]interface{}) {
	fields, ok := issue["fields"].(map[string]interface{})
	if !ok {
		return
	}
	if doc, ok := fields["description"].(map[string]interface{}); ok {
		fields["descriptionText"] = adf.FlattenValue(doc)
	}
}

// CreateIssueInput carries the fields for a new issue. Extra deployment
// specific fields can be passed through Fields and are merged last.
type CreateIssueInput struct {
	ProjectKey  string
	Summary     string
	IssueType   string
	Description string
	Assignee    string
	Labels      []string
	Fields      map[string]interface{}
}

// CreateIssue creates an issue, converting the description to the rich text
// document format on Cloud and leaving it as wiki-markup text on Server/DC.
func (s *Service) CreateIssue(ctx context.Context, input CreateIssueInput) (map[string]interface{}, error) {
	if input.ProjectKey == "" || input.Summary == "" || input.IssueType == "" {
		return nil, atlassian.NewValidationError("project key, summary and issue type are required")
	}

	fields := map[string]interface{}{
		"project":   map[string]interface{}{"key": input.ProjectKey},
		"summary":   input.Summary,
		"issuetype": map[string]interface{}{"name": input.IssueType},
	}

	if input.Description != "" {
		fields["description"] = s.descriptionValue(input.Description)
	}
	if len(input.Labels) > 0 {
		fields["labels"] = input.Labels
	}
	if input.Assignee != "" {
		if err := atlassian.ValidateUserIdentifier(input.Assignee, s.client.DeploymentType()); err != nil {
			return nil, err
		}
		fields["assignee"] = atlassian.FormatUserForAssignment(input.Assignee, s.client.DeploymentType())
	}
	for key, value := range input.Fields {
		fields[key] = value
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.create", nil, nil,
		map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, err
	}

	result, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project", input.ProjectKey).
		Str("key", stringField(result, "key")).
		Msg("Created Jira issue")

	return result, nil
}

// UpdateIssue applies a partial field update. A string description is
// converted for the target deployment; everything else passes through.
func (s *Service) UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	if issueKey == "" {
		return atlassian.NewValidationError("issue key must not be empty")
	}
	if len(fields) == 0 {
		return atlassian.NewValidationError("no fields to update")
	}

	updated := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		updated[key] = value
	}
	if description, ok := updated["description"].(string); ok {
		updated["description"] = s.descriptionValue(description)
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.update",
		map[string]string{"issueIdOrKey": issueKey}, nil,
		map[string]interface{}{"fields": updated})
	return err
}

// ListTransitions returns the transitions currently available on an issue.
func (s *Service) ListTransitions(ctx context.Context, issueKey string) (map[string]interface{}, error) {
	if issueKey == "" {
		return nil, atlassian.NewValidationError("issue key must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.transitions.list",
		map[string]string{"issueIdOrKey": issueKey}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// TransitionIssue moves an issue through a workflow transition, optionally
// attaching a comment to the transition.
func (s *Service) TransitionIssue(ctx context.Context, issueKey, transitionID, comment string) error {
	if issueKey == "" || transitionID == "" {
		return atlassian.NewValidationError("issue key and transition id are required")
	}

	body := map[string]interface{}{
		"transition": map[string]interface{}{"id": transitionID},
	}
	if comment != "" {
		body["update"] = map[string]interface{}{
			"comment": []interface{}{
				map[string]interface{}{
					"add": map[string]interface{}{"body": s.descriptionValue(comment)},
				},
			},
		}
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.transitions",
		map[string]string{"issueIdOrKey": issueKey}, nil, body)
	return err
}

// AssignIssue assigns an issue to a user. The identifier is validated for
// the deployment type before any request goes out: an accountId on Cloud,
// a username on Server/DC.
func (s *Service) AssignIssue(ctx context.Context, issueKey, identifier string) error {
	if issueKey == "" {
		return atlassian.NewValidationError("issue key must not be empty")
	}
	if err := atlassian.ValidateUserIdentifier(identifier, s.client.DeploymentType()); err != nil {
		return err
	}

	body := atlassian.FormatUserForAssignment(identifier, s.client.DeploymentType())
	_, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.assign",
		map[string]string{"issueIdOrKey": issueKey}, nil, body)
	return err
}

// AddComment adds a comment to an issue.
func (s *Service) AddComment(ctx context.Context, issueKey, body string) (map[string]interface{}, error) {
	if issueKey == "" || strings.TrimSpace(body) == "" {
		return nil, atlassian.NewValidationError("issue key and comment body are required")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "issues.comment",
		map[string]string{"issueIdOrKey": issueKey}, nil,
		map[string]interface{}{"body": s.descriptionValue(body)})
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// descriptionValue renders rich text fields for the target API version:
// Cloud v3 takes an ADF document, Server/DC v2 takes a plain string.
func (s *Service) descriptionValue(text string) interface{} {
	if s.client.DeploymentType() == atlassian.DeploymentCloud {
		return adf.FromText(text)
	}
	return text
}

func stringField(m map[string]interface{}, key string) string {
	value, _ := m[key].(string)
	return value
}
