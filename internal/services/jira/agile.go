package jira

import (
	"context"
	"strconv"

	"github.com/ternarybob/pons/internal/atlassian"
)

// ListBoards returns agile boards, optionally filtered by project.
func (s *Service) ListBoards(ctx context.Context, projectKey string, maxResults int) (map[string]interface{}, error) {
	params := map[string]string{}
	if projectKey != "" {
		params["projectKeyOrId"] = projectKey
	}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.boards", nil, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetBoardIssues returns the issues on a board, optionally narrowed by JQL.
func (s *Service) GetBoardIssues(ctx context.Context, boardID, jql string, maxResults int) (map[string]interface{}, error) {
	if boardID == "" {
		return nil, atlassian.NewValidationError("board id must not be empty")
	}

	params := map[string]string{}
	if jql != "" {
		params["jql"] = jql
	}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.board.issues",
		map[string]string{"boardId": boardID}, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetBoardConfiguration returns a board's column and estimation settings.
func (s *Service) GetBoardConfiguration(ctx context.Context, boardID string) (map[string]interface{}, error) {
	if boardID == "" {
		return nil, atlassian.NewValidationError("board id must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.board.configuration",
		map[string]string{"boardId": boardID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// ListSprints returns the sprints of a board, optionally filtered by state
// (active, future, closed).
func (s *Service) ListSprints(ctx context.Context, boardID, state string) (map[string]interface{}, error) {
	if boardID == "" {
		return nil, atlassian.NewValidationError("board id must not be empty")
	}

	params := map[string]string{}
	if state != "" {
		params["state"] = state
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.sprints",
		map[string]string{"boardId": boardID}, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// SprintInput carries the fields for creating or updating a sprint. Dates
// use the ISO-8601 format the Agile API expects.
type SprintInput struct {
	Name      string
	StartDate string
	EndDate   string
	Goal      string
}

// CreateSprint creates a sprint on a board.
func (s *Service) CreateSprint(ctx context.Context, boardID string, input SprintInput) (map[string]interface{}, error) {
	if boardID == "" || input.Name == "" {
		return nil, atlassian.NewValidationError("board id and sprint name are required")
	}

	id, err := strconv.Atoi(boardID)
	if err != nil {
		return nil, atlassian.NewValidationError("board id must be numeric: %q", boardID)
	}

	body := map[string]interface{}{
		"name":          input.Name,
		"originBoardId": id,
	}
	if input.StartDate != "" {
		body["startDate"] = input.StartDate
	}
	if input.EndDate != "" {
		body["endDate"] = input.EndDate
	}
	if input.Goal != "" {
		body["goal"] = input.Goal
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.sprint.create", nil, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// UpdateSprint applies a partial update to a sprint. State changes (for
// example closing a sprint) go through the same endpoint.
func (s *Service) UpdateSprint(ctx context.Context, sprintID string, fields map[string]interface{}) (map[string]interface{}, error) {
	if sprintID == "" {
		return nil, atlassian.NewValidationError("sprint id must not be empty")
	}
	if len(fields) == 0 {
		return nil, atlassian.NewValidationError("no fields to update")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.sprint.update",
		map[string]string{"sprintId": sprintID}, nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// StartSprint activates a sprint. Jira requires both dates when moving a
// sprint from future to active.
func (s *Service) StartSprint(ctx context.Context, sprintID, startDate, endDate, goal string) (map[string]interface{}, error) {
	if startDate == "" || endDate == "" {
		return nil, atlassian.NewValidationError("start and end dates are required to start a sprint")
	}

	fields := map[string]interface{}{
		"state":     "active",
		"startDate": startDate,
		"endDate":   endDate,
	}
	if goal != "" {
		fields["goal"] = goal
	}
	return s.UpdateSprint(ctx, sprintID, fields)
}

// CloseSprint completes a sprint. Incomplete issues fall back to the backlog
// on the Jira side.
func (s *Service) CloseSprint(ctx context.Context, sprintID string) (map[string]interface{}, error) {
	return s.UpdateSprint(ctx, sprintID, map[string]interface{}{"state": "closed"})
}

// MoveIssuesToSprint moves issues into a sprint.
func (s *Service) MoveIssuesToSprint(ctx context.Context, sprintID string, issueKeys []string) error {
	if sprintID == "" {
		return atlassian.NewValidationError("sprint id must not be empty")
	}
	if len(issueKeys) == 0 {
		return atlassian.NewValidationError("no issues to move")
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.sprint.issues",
		map[string]string{"sprintId": sprintID}, nil,
		map[string]interface{}{"issues": issueKeys})
	return err
}

// MoveIssuesToBacklog moves issues out of their sprint into the backlog.
func (s *Service) MoveIssuesToBacklog(ctx context.Context, issueKeys []string) error {
	if len(issueKeys) == 0 {
		return atlassian.NewValidationError("no issues to move")
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.backlog", nil, nil,
		map[string]interface{}{"issues": issueKeys})
	return err
}

// RankIssues reorders issues relative to an anchor issue.
func (s *Service) RankIssues(ctx context.Context, issueKeys []string, rankBefore, rankAfter string) error {
	if len(issueKeys) == 0 {
		return atlassian.NewValidationError("no issues to rank")
	}
	if (rankBefore == "") == (rankAfter == "") {
		return atlassian.NewValidationError("exactly one of rankBefore and rankAfter is required")
	}

	body := map[string]interface{}{"issues": issueKeys}
	if rankBefore != "" {
		body["rankBeforeIssue"] = rankBefore
	} else {
		body["rankAfterIssue"] = rankAfter
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "agile.backlog.rank", nil, nil, body)
	return err
}
