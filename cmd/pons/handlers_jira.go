package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/services/jira"
)

// handleSearchIssues implements the jira_search_issues tool
func handleSearchIssues(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jql, err := request.RequireString("jql")
		if err != nil || jql == "" {
			return errorText("jql parameter is required"), nil
		}

		maxResults := request.GetInt("max_results", 25)
		if maxResults > 100 {
			maxResults = 100
		}

		result, err := service.SearchIssues(ctx, jql, &jira.SearchOptions{
			Fields:     request.GetStringSlice("fields", nil),
			MaxResults: maxResults,
			StartAt:    request.GetInt("start_at", 0),
		})
		if err != nil {
			return errorResult(logger, "jira_search_issues", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetIssue implements the jira_get_issue tool
func handleGetIssue(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}

		result, err := service.GetIssue(ctx, issueKey, request.GetStringSlice("fields", nil))
		if err != nil {
			return errorResult(logger, "jira_get_issue", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleCreateIssue implements the jira_create_issue tool
func handleCreateIssue(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectKey, err := request.RequireString("project_key")
		if err != nil || projectKey == "" {
			return errorText("project_key parameter is required"), nil
		}
		summary, err := request.RequireString("summary")
		if err != nil || summary == "" {
			return errorText("summary parameter is required"), nil
		}
		issueType, err := request.RequireString("issue_type")
		if err != nil || issueType == "" {
			return errorText("issue_type parameter is required"), nil
		}

		result, err := service.CreateIssue(ctx, jira.CreateIssueInput{
			ProjectKey:  projectKey,
			Summary:     summary,
			IssueType:   issueType,
			Description: request.GetString("description", ""),
			Assignee:    request.GetString("assignee", ""),
			Labels:      request.GetStringSlice("labels", nil),
		})
		if err != nil {
			return errorResult(logger, "jira_create_issue", err), nil
		}
		return successResult(result), nil
	}
}

// handleUpdateIssue implements the jira_update_issue tool
func handleUpdateIssue(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}

		fields := map[string]interface{}{}
		if summary := request.GetString("summary", ""); summary != "" {
			fields["summary"] = summary
		}
		if description := request.GetString("description", ""); description != "" {
			fields["description"] = description
		}
		if labels := request.GetStringSlice("labels", nil); labels != nil {
			fields["labels"] = labels
		}
		if len(fields) == 0 {
			return errorText("provide at least one of summary, description or labels"), nil
		}

		if err := service.UpdateIssue(ctx, issueKey, fields); err != nil {
			return errorResult(logger, "jira_update_issue", err), nil
		}
		return successResult(map[string]interface{}{"issue": issueKey, "updated": true}), nil
	}
}

// handleListTransitions implements the jira_list_transitions tool
func handleListTransitions(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}

		result, err := service.ListTransitions(ctx, issueKey)
		if err != nil {
			return errorResult(logger, "jira_list_transitions", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleTransitionIssue implements the jira_transition_issue tool
func handleTransitionIssue(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}
		transitionID, err := request.RequireString("transition_id")
		if err != nil || transitionID == "" {
			return errorText("transition_id parameter is required"), nil
		}

		if err := service.TransitionIssue(ctx, issueKey, transitionID, request.GetString("comment", "")); err != nil {
			return errorResult(logger, "jira_transition_issue", err), nil
		}
		return successResult(map[string]interface{}{"issue": issueKey, "transition": transitionID}), nil
	}
}

// handleAssignIssue implements the jira_assign_issue tool
func handleAssignIssue(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}
		user, err := request.RequireString("user")
		if err != nil || user == "" {
			return errorText("user parameter is required"), nil
		}

		if err := service.AssignIssue(ctx, issueKey, user); err != nil {
			return errorResult(logger, "jira_assign_issue", err), nil
		}
		return successResult(map[string]interface{}{"issue": issueKey, "assignee": user}), nil
	}
}

// handleAddComment implements the jira_add_comment tool
func handleAddComment(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorText("issue_key parameter is required"), nil
		}
		body, err := request.RequireString("body")
		if err != nil || body == "" {
			return errorText("body parameter is required"), nil
		}

		result, err := service.AddComment(ctx, issueKey, body)
		if err != nil {
			return errorResult(logger, "jira_add_comment", err), nil
		}
		return successResult(result), nil
	}
}

// handleListProjects implements the jira_list_projects tool
func handleListProjects(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := service.ListProjects(ctx)
		if err != nil {
			return errorResult(logger, "jira_list_projects", err), nil
		}
		return jsonResult(projects), nil
	}
}

// handleGetProject implements the jira_get_project tool
func handleGetProject(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectKey, err := request.RequireString("project_key")
		if err != nil || projectKey == "" {
			return errorText("project_key parameter is required"), nil
		}

		result, err := service.GetProject(ctx, projectKey)
		if err != nil {
			return errorResult(logger, "jira_get_project", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleSearchUsers implements the jira_search_users tool
func handleSearchUsers(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return errorText("query parameter is required"), nil
		}

		users, err := service.SearchUsers(ctx, query, request.GetInt("max_results", 25))
		if err != nil {
			return errorResult(logger, "jira_search_users", err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatUsers(users)),
			},
		}, nil
	}
}

// handleGetMyself implements the jira_get_myself tool
func handleGetMyself(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := service.Myself(ctx)
		if err != nil {
			return errorResult(logger, "jira_get_myself", err), nil
		}
		return jsonResult(user), nil
	}
}

// handleListAssignableUsers implements the jira_list_assignable_users tool
func handleListAssignableUsers(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectKey, err := request.RequireString("project_key")
		if err != nil || projectKey == "" {
			return errorText("project_key parameter is required"), nil
		}

		users, err := service.ListAssignableUsers(ctx, projectKey, request.GetInt("max_results", 50))
		if err != nil {
			return errorResult(logger, "jira_list_assignable_users", err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatUsers(users)),
			},
		}, nil
	}
}

// handleVerifyAuth implements the jira_verify_auth tool
func handleVerifyAuth(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := service.VerifyAuth(ctx)
		if err != nil {
			return errorResult(logger, "jira_verify_auth", err), nil
		}
		return successResult(map[string]interface{}{
			"deploymentType": string(service.DeploymentType()),
			"authType":       service.Client().AuthType(),
			"user":           user,
		}), nil
	}
}

// handleListBoards implements the jira_list_boards tool
func handleListBoards(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := service.ListBoards(ctx, request.GetString("project_key", ""), request.GetInt("max_results", 50))
		if err != nil {
			return errorResult(logger, "jira_list_boards", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetBoardIssues implements the jira_get_board_issues tool
func handleGetBoardIssues(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		boardID, err := request.RequireString("board_id")
		if err != nil || boardID == "" {
			return errorText("board_id parameter is required"), nil
		}

		result, err := service.GetBoardIssues(ctx, boardID, request.GetString("jql", ""), request.GetInt("max_results", 50))
		if err != nil {
			return errorResult(logger, "jira_get_board_issues", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetBoardConfiguration implements the jira_get_board_configuration tool
func handleGetBoardConfiguration(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		boardID, err := request.RequireString("board_id")
		if err != nil || boardID == "" {
			return errorText("board_id parameter is required"), nil
		}

		result, err := service.GetBoardConfiguration(ctx, boardID)
		if err != nil {
			return errorResult(logger, "jira_get_board_configuration", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleListSprints implements the jira_list_sprints tool
func handleListSprints(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		boardID, err := request.RequireString("board_id")
		if err != nil || boardID == "" {
			return errorText("board_id parameter is required"), nil
		}

		result, err := service.ListSprints(ctx, boardID, request.GetString("state", ""))
		if err != nil {
			return errorResult(logger, "jira_list_sprints", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleCreateSprint implements the jira_create_sprint tool
func handleCreateSprint(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		boardID, err := request.RequireString("board_id")
		if err != nil || boardID == "" {
			return errorText("board_id parameter is required"), nil
		}
		name, err := request.RequireString("name")
		if err != nil || name == "" {
			return errorText("name parameter is required"), nil
		}

		result, err := service.CreateSprint(ctx, boardID, jira.SprintInput{
			Name:      name,
			StartDate: request.GetString("start_date", ""),
			EndDate:   request.GetString("end_date", ""),
			Goal:      request.GetString("goal", ""),
		})
		if err != nil {
			return errorResult(logger, "jira_create_sprint", err), nil
		}
		return successResult(result), nil
	}
}

// handleStartSprint implements the jira_start_sprint tool
func handleStartSprint(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sprintID, err := request.RequireString("sprint_id")
		if err != nil || sprintID == "" {
			return errorText("sprint_id parameter is required"), nil
		}
		startDate, err := request.RequireString("start_date")
		if err != nil || startDate == "" {
			return errorText("start_date parameter is required"), nil
		}
		endDate, err := request.RequireString("end_date")
		if err != nil || endDate == "" {
			return errorText("end_date parameter is required"), nil
		}

		result, err := service.StartSprint(ctx, sprintID, startDate, endDate, request.GetString("goal", ""))
		if err != nil {
			return errorResult(logger, "jira_start_sprint", err), nil
		}
		return successResult(result), nil
	}
}

// handleCloseSprint implements the jira_close_sprint tool
func handleCloseSprint(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sprintID, err := request.RequireString("sprint_id")
		if err != nil || sprintID == "" {
			return errorText("sprint_id parameter is required"), nil
		}

		result, err := service.CloseSprint(ctx, sprintID)
		if err != nil {
			return errorResult(logger, "jira_close_sprint", err), nil
		}
		return successResult(result), nil
	}
}

// handleUpdateSprint implements the jira_update_sprint tool
func handleUpdateSprint(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sprintID, err := request.RequireString("sprint_id")
		if err != nil || sprintID == "" {
			return errorText("sprint_id parameter is required"), nil
		}

		fields := map[string]interface{}{}
		for param, field := range map[string]string{
			"name":       "name",
			"state":      "state",
			"start_date": "startDate",
			"end_date":   "endDate",
			"goal":       "goal",
		} {
			if value := request.GetString(param, ""); value != "" {
				fields[field] = value
			}
		}
		if len(fields) == 0 {
			return errorText("provide at least one field to update"), nil
		}

		result, err := service.UpdateSprint(ctx, sprintID, fields)
		if err != nil {
			return errorResult(logger, "jira_update_sprint", err), nil
		}
		return successResult(result), nil
	}
}

// handleMoveIssuesToSprint implements the jira_move_issues_to_sprint tool
func handleMoveIssuesToSprint(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sprintID, err := request.RequireString("sprint_id")
		if err != nil || sprintID == "" {
			return errorText("sprint_id parameter is required"), nil
		}
		issueKeys := request.GetStringSlice("issue_keys", nil)
		if len(issueKeys) == 0 {
			return errorText("issue_keys parameter is required"), nil
		}

		if err := service.MoveIssuesToSprint(ctx, sprintID, issueKeys); err != nil {
			return errorResult(logger, "jira_move_issues_to_sprint", err), nil
		}
		return successResult(map[string]interface{}{"sprint": sprintID, "moved": len(issueKeys)}), nil
	}
}

// handleMoveIssuesToBacklog implements the jira_move_issues_to_backlog tool
func handleMoveIssuesToBacklog(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKeys := request.GetStringSlice("issue_keys", nil)
		if len(issueKeys) == 0 {
			return errorText("issue_keys parameter is required"), nil
		}

		if err := service.MoveIssuesToBacklog(ctx, issueKeys); err != nil {
			return errorResult(logger, "jira_move_issues_to_backlog", err), nil
		}
		return successResult(map[string]interface{}{"moved": len(issueKeys)}), nil
	}
}

// handleRankIssues implements the jira_rank_issues tool
func handleRankIssues(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKeys := request.GetStringSlice("issue_keys", nil)
		if len(issueKeys) == 0 {
			return errorText("issue_keys parameter is required"), nil
		}

		err := service.RankIssues(ctx, issueKeys,
			request.GetString("rank_before", ""),
			request.GetString("rank_after", ""))
		if err != nil {
			return errorResult(logger, "jira_rank_issues", err), nil
		}
		return successResult(map[string]interface{}{"ranked": len(issueKeys)}), nil
	}
}

// handleListDashboards implements the jira_list_dashboards tool
func handleListDashboards(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := service.ListDashboards(ctx, request.GetInt("max_results", 50))
		if err != nil {
			return errorResult(logger, "jira_list_dashboards", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetDashboard implements the jira_get_dashboard tool
func handleGetDashboard(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := request.RequireString("dashboard_id")
		if err != nil || dashboardID == "" {
			return errorText("dashboard_id parameter is required"), nil
		}

		result, err := service.GetDashboard(ctx, dashboardID)
		if err != nil {
			return errorResult(logger, "jira_get_dashboard", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleCreateDashboard implements the jira_create_dashboard tool
func handleCreateDashboard(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil || name == "" {
			return errorText("name parameter is required"), nil
		}

		result, err := service.CreateDashboard(ctx, name, request.GetString("description", ""), nil)
		if err != nil {
			return errorResult(logger, "jira_create_dashboard", err), nil
		}
		return successResult(result), nil
	}
}

// handleUpdateDashboard implements the jira_update_dashboard tool
func handleUpdateDashboard(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := request.RequireString("dashboard_id")
		if err != nil || dashboardID == "" {
			return errorText("dashboard_id parameter is required"), nil
		}

		fields := map[string]interface{}{}
		if name := request.GetString("name", ""); name != "" {
			fields["name"] = name
		}
		if description := request.GetString("description", ""); description != "" {
			fields["description"] = description
		}
		if len(fields) == 0 {
			return errorText("provide at least one of name or description"), nil
		}

		result, err := service.UpdateDashboard(ctx, dashboardID, fields)
		if err != nil {
			return errorResult(logger, "jira_update_dashboard", err), nil
		}
		return successResult(result), nil
	}
}

// handleListGadgets implements the jira_list_gadgets tool
func handleListGadgets(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := request.RequireString("dashboard_id")
		if err != nil || dashboardID == "" {
			return errorText("dashboard_id parameter is required"), nil
		}

		result, err := service.ListGadgets(ctx, dashboardID)
		if err != nil {
			return errorResult(logger, "jira_list_gadgets", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleAddGadget implements the jira_add_gadget tool
func handleAddGadget(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := request.RequireString("dashboard_id")
		if err != nil || dashboardID == "" {
			return errorText("dashboard_id parameter is required"), nil
		}
		moduleKey, err := request.RequireString("module_key")
		if err != nil || moduleKey == "" {
			return errorText("module_key parameter is required"), nil
		}

		gadget := map[string]interface{}{"moduleKey": moduleKey}
		if title := request.GetString("title", ""); title != "" {
			gadget["title"] = title
		}
		if color := request.GetString("color", ""); color != "" {
			gadget["color"] = color
		}

		result, err := service.AddGadget(ctx, dashboardID, gadget)
		if err != nil {
			return errorResult(logger, "jira_add_gadget", err), nil
		}
		return successResult(result), nil
	}
}

// handleRemoveGadget implements the jira_remove_gadget tool
func handleRemoveGadget(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboardID, err := request.RequireString("dashboard_id")
		if err != nil || dashboardID == "" {
			return errorText("dashboard_id parameter is required"), nil
		}
		gadgetID, err := request.RequireString("gadget_id")
		if err != nil || gadgetID == "" {
			return errorText("gadget_id parameter is required"), nil
		}

		if err := service.RemoveGadget(ctx, dashboardID, gadgetID); err != nil {
			return errorResult(logger, "jira_remove_gadget", err), nil
		}
		return successResult(map[string]interface{}{"dashboardId": dashboardID, "gadgetId": gadgetID, "removed": true}), nil
	}
}

// handleSearchFilters implements the jira_search_filters tool
func handleSearchFilters(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := service.SearchFilters(ctx, request.GetString("name", ""), request.GetInt("max_results", 25))
		if err != nil {
			return errorResult(logger, "jira_search_filters", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleCreateFilter implements the jira_create_filter tool
func handleCreateFilter(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil || name == "" {
			return errorText("name parameter is required"), nil
		}
		jql, err := request.RequireString("jql")
		if err != nil || jql == "" {
			return errorText("jql parameter is required"), nil
		}

		result, err := service.CreateFilter(ctx, name, jql,
			request.GetString("description", ""),
			request.GetBool("favourite", false))
		if err != nil {
			return errorResult(logger, "jira_create_filter", err), nil
		}
		return successResult(result), nil
	}
}

// handleGetFilter implements the jira_get_filter tool
func handleGetFilter(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filterID, err := request.RequireString("filter_id")
		if err != nil || filterID == "" {
			return errorText("filter_id parameter is required"), nil
		}

		result, err := service.GetFilter(ctx, filterID)
		if err != nil {
			return errorResult(logger, "jira_get_filter", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleUpdateFilter implements the jira_update_filter tool
func handleUpdateFilter(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filterID, err := request.RequireString("filter_id")
		if err != nil || filterID == "" {
			return errorText("filter_id parameter is required"), nil
		}

		fields := map[string]interface{}{}
		for _, param := range []string{"name", "jql", "description"} {
			if value := request.GetString(param, ""); value != "" {
				fields[param] = value
			}
		}
		if len(fields) == 0 {
			return errorText("provide at least one of name, jql or description"), nil
		}

		result, err := service.UpdateFilter(ctx, filterID, fields)
		if err != nil {
			return errorResult(logger, "jira_update_filter", err), nil
		}
		return successResult(result), nil
	}
}

// handleDeleteFilter implements the jira_delete_filter tool
func handleDeleteFilter(service *jira.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filterID, err := request.RequireString("filter_id")
		if err != nil || filterID == "" {
			return errorText("filter_id parameter is required"), nil
		}

		if err := service.DeleteFilter(ctx, filterID); err != nil {
			return errorResult(logger, "jira_delete_filter", err), nil
		}
		return successResult(map[string]interface{}{"filter": filterID, "deleted": true}), nil
	}
}
