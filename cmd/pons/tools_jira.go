package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Issue tools

func createSearchIssuesTool() mcp.Tool {
	return mcp.NewTool("jira_search_issues",
		mcp.WithDescription("Search Jira issues with a JQL query"),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("JQL query, e.g. 'project = PROJ AND status = Open'"),
		),
		mcp.WithArray("fields",
			mcp.WithStringItems(),
			mcp.Description("Fields to return per issue (default: all)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum issues to return (default: 25, max: 100)"),
		),
		mcp.WithNumber("start_at",
			mcp.Description("Pagination offset (default: 0)"),
		),
	)
}

func createGetIssueTool() mcp.Tool {
	return mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Get a Jira issue by key or id"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123) or numeric id"),
		),
		mcp.WithArray("fields",
			mcp.WithStringItems(),
			mcp.Description("Fields to return (default: all)"),
		),
	)
}

func createCreateIssueTool() mcp.Tool {
	return mcp.NewTool("jira_create_issue",
		mcp.WithDescription("Create a Jira issue. The description is converted to the format the target deployment expects"),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("Project key, e.g. PROJ"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Issue summary"),
		),
		mcp.WithString("issue_type",
			mcp.Required(),
			mcp.Description("Issue type name, e.g. Bug, Task, Story"),
		),
		mcp.WithString("description",
			mcp.Description("Issue description as plain text"),
		),
		mcp.WithString("assignee",
			mcp.Description("Assignee: accountId on Cloud, username on Server/DC"),
		),
		mcp.WithArray("labels",
			mcp.WithStringItems(),
			mcp.Description("Labels to set on the issue"),
		),
	)
}

func createUpdateIssueTool() mcp.Tool {
	return mcp.NewTool("jira_update_issue",
		mcp.WithDescription("Update fields on a Jira issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123)"),
		),
		mcp.WithString("summary",
			mcp.Description("New summary"),
		),
		mcp.WithString("description",
			mcp.Description("New description as plain text"),
		),
		mcp.WithArray("labels",
			mcp.WithStringItems(),
			mcp.Description("Replacement label list"),
		),
	)
}

func createListTransitionsTool() mcp.Tool {
	return mcp.NewTool("jira_list_transitions",
		mcp.WithDescription("List the workflow transitions currently available on an issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123)"),
		),
	)
}

func createTransitionIssueTool() mcp.Tool {
	return mcp.NewTool("jira_transition_issue",
		mcp.WithDescription("Move an issue through a workflow transition"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123)"),
		),
		mcp.WithString("transition_id",
			mcp.Required(),
			mcp.Description("Transition id from jira_list_transitions"),
		),
		mcp.WithString("comment",
			mcp.Description("Optional comment to add with the transition"),
		),
	)
}

func createAssignIssueTool() mcp.Tool {
	return mcp.NewTool("jira_assign_issue",
		mcp.WithDescription("Assign a Jira issue to a user"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123)"),
		),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("User identifier: accountId on Cloud, username on Server/DC"),
		),
	)
}

func createAddCommentTool() mcp.Tool {
	return mcp.NewTool("jira_add_comment",
		mcp.WithDescription("Add a comment to a Jira issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (PROJ-123)"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Comment text"),
		),
	)
}

// Project tools

func createListProjectsTool() mcp.Tool {
	return mcp.NewTool("jira_list_projects",
		mcp.WithDescription("List Jira projects visible to the authenticated user"),
	)
}

func createGetProjectTool() mcp.Tool {
	return mcp.NewTool("jira_get_project",
		mcp.WithDescription("Get a Jira project by key or id"),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("Project key or id"),
		),
	)
}

// User tools

func createSearchUsersTool() mcp.Tool {
	return mcp.NewTool("jira_search_users",
		mcp.WithDescription("Search Jira users. The query parameter is translated for the target deployment automatically"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Name, username or email fragment"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum users to return (default: 25)"),
		),
	)
}

func createGetMyselfTool() mcp.Tool {
	return mcp.NewTool("jira_get_myself",
		mcp.WithDescription("Get the authenticated Jira user"),
	)
}

func createListAssignableUsersTool() mcp.Tool {
	return mcp.NewTool("jira_list_assignable_users",
		mcp.WithDescription("List users assignable to issues in a project"),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum users to return (default: 50)"),
		),
	)
}

func createVerifyAuthTool() mcp.Tool {
	return mcp.NewTool("jira_verify_auth",
		mcp.WithDescription("Verify Jira credentials and report deployment type, auth method and the authenticated user"),
	)
}

// Agile tools

func createListBoardsTool() mcp.Tool {
	return mcp.NewTool("jira_list_boards",
		mcp.WithDescription("List agile boards"),
		mcp.WithString("project_key",
			mcp.Description("Filter boards by project"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum boards to return (default: 50)"),
		),
	)
}

func createGetBoardIssuesTool() mcp.Tool {
	return mcp.NewTool("jira_get_board_issues",
		mcp.WithDescription("List the issues on an agile board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("Board id"),
		),
		mcp.WithString("jql",
			mcp.Description("Optional JQL filter applied to the board's issues"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum issues to return (default: 50)"),
		),
	)
}

func createGetBoardConfigurationTool() mcp.Tool {
	return mcp.NewTool("jira_get_board_configuration",
		mcp.WithDescription("Get a board's column and estimation configuration"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("Board id"),
		),
	)
}

func createListSprintsTool() mcp.Tool {
	return mcp.NewTool("jira_list_sprints",
		mcp.WithDescription("List the sprints of a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("Board id"),
		),
		mcp.WithString("state",
			mcp.Description("Filter by state: active, future or closed"),
		),
	)
}

func createCreateSprintTool() mcp.Tool {
	return mcp.NewTool("jira_create_sprint",
		mcp.WithDescription("Create a sprint on a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("Board id the sprint belongs to"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Sprint name"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date in ISO-8601 format"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date in ISO-8601 format"),
		),
		mcp.WithString("goal",
			mcp.Description("Sprint goal"),
		),
	)
}

func createStartSprintTool() mcp.Tool {
	return mcp.NewTool("jira_start_sprint",
		mcp.WithDescription("Start a sprint. Both dates are required when activating a future sprint"),
		mcp.WithString("sprint_id",
			mcp.Required(),
			mcp.Description("Sprint id"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date in ISO-8601 format"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End date in ISO-8601 format"),
		),
		mcp.WithString("goal",
			mcp.Description("Sprint goal"),
		),
	)
}

func createCloseSprintTool() mcp.Tool {
	return mcp.NewTool("jira_close_sprint",
		mcp.WithDescription("Complete a sprint. Incomplete issues move back to the backlog"),
		mcp.WithString("sprint_id",
			mcp.Required(),
			mcp.Description("Sprint id"),
		),
	)
}

func createUpdateSprintTool() mcp.Tool {
	return mcp.NewTool("jira_update_sprint",
		mcp.WithDescription("Update a sprint's name, dates, goal or state (use state=closed to complete a sprint)"),
		mcp.WithString("sprint_id",
			mcp.Required(),
			mcp.Description("Sprint id"),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("state",
			mcp.Description("New state: future, active or closed"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date in ISO-8601 format"),
		),
		mcp.WithString("end_date",
			mcp.Description("New end date in ISO-8601 format"),
		),
		mcp.WithString("goal",
			mcp.Description("New goal"),
		),
	)
}

func createMoveIssuesToSprintTool() mcp.Tool {
	return mcp.NewTool("jira_move_issues_to_sprint",
		mcp.WithDescription("Move issues into a sprint"),
		mcp.WithString("sprint_id",
			mcp.Required(),
			mcp.Description("Target sprint id"),
		),
		mcp.WithArray("issue_keys",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Issue keys to move"),
		),
	)
}

func createMoveIssuesToBacklogTool() mcp.Tool {
	return mcp.NewTool("jira_move_issues_to_backlog",
		mcp.WithDescription("Move issues out of their sprint into the backlog"),
		mcp.WithArray("issue_keys",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Issue keys to move"),
		),
	)
}

func createRankIssuesTool() mcp.Tool {
	return mcp.NewTool("jira_rank_issues",
		mcp.WithDescription("Reorder backlog issues relative to an anchor issue. Provide exactly one of rank_before or rank_after"),
		mcp.WithArray("issue_keys",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Issue keys to rank, in the desired order"),
		),
		mcp.WithString("rank_before",
			mcp.Description("Place the issues before this issue key"),
		),
		mcp.WithString("rank_after",
			mcp.Description("Place the issues after this issue key"),
		),
	)
}

// Dashboard tools

func createListDashboardsTool() mcp.Tool {
	return mcp.NewTool("jira_list_dashboards",
		mcp.WithDescription("List Jira dashboards"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum dashboards to return (default: 50)"),
		),
	)
}

func createGetDashboardTool() mcp.Tool {
	return mcp.NewTool("jira_get_dashboard",
		mcp.WithDescription("Get a Jira dashboard by id"),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard id"),
		),
	)
}

func createCreateDashboardTool() mcp.Tool {
	return mcp.NewTool("jira_create_dashboard",
		mcp.WithDescription("Create a Jira dashboard (Cloud only; Server/DC dashboards can only be created in the UI)"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Dashboard name"),
		),
		mcp.WithString("description",
			mcp.Description("Dashboard description"),
		),
	)
}

func createUpdateDashboardTool() mcp.Tool {
	return mcp.NewTool("jira_update_dashboard",
		mcp.WithDescription("Update a Jira dashboard's name or description (Cloud only)"),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard id"),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
	)
}

func createListGadgetsTool() mcp.Tool {
	return mcp.NewTool("jira_list_gadgets",
		mcp.WithDescription("List the gadgets on a dashboard (Cloud only)"),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard id"),
		),
	)
}

func createAddGadgetTool() mcp.Tool {
	return mcp.NewTool("jira_add_gadget",
		mcp.WithDescription("Add a gadget to a dashboard (Cloud only)"),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard id"),
		),
		mcp.WithString("module_key",
			mcp.Required(),
			mcp.Description("Gadget module key, e.g. com.atlassian.plugins.atlassian-connect-plugin:some-gadget"),
		),
		mcp.WithString("title",
			mcp.Description("Gadget title"),
		),
		mcp.WithString("color",
			mcp.Description("Gadget frame color (blue, red, yellow, green, cyan, purple, gray, white)"),
		),
	)
}

func createRemoveGadgetTool() mcp.Tool {
	return mcp.NewTool("jira_remove_gadget",
		mcp.WithDescription("Remove a gadget from a dashboard (Cloud only)"),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard id"),
		),
		mcp.WithString("gadget_id",
			mcp.Required(),
			mcp.Description("Gadget id"),
		),
	)
}

// Filter tools

func createSearchFiltersTool() mcp.Tool {
	return mcp.NewTool("jira_search_filters",
		mcp.WithDescription("Search saved filters by name. On Server/DC only favourite filters can be searched"),
		mcp.WithString("name",
			mcp.Description("Filter name fragment (empty lists all)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum filters to return (default: 25)"),
		),
	)
}

func createCreateFilterTool() mcp.Tool {
	return mcp.NewTool("jira_create_filter",
		mcp.WithDescription("Create a saved filter"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Filter name"),
		),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("Filter JQL"),
		),
		mcp.WithString("description",
			mcp.Description("Filter description"),
		),
		mcp.WithBoolean("favourite",
			mcp.Description("Mark as favourite (default: false)"),
		),
	)
}

func createGetFilterTool() mcp.Tool {
	return mcp.NewTool("jira_get_filter",
		mcp.WithDescription("Get a saved filter by id"),
		mcp.WithString("filter_id",
			mcp.Required(),
			mcp.Description("Filter id"),
		),
	)
}

func createUpdateFilterTool() mcp.Tool {
	return mcp.NewTool("jira_update_filter",
		mcp.WithDescription("Update a saved filter's name, JQL or description"),
		mcp.WithString("filter_id",
			mcp.Required(),
			mcp.Description("Filter id"),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("jql",
			mcp.Description("New JQL"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
	)
}

func createDeleteFilterTool() mcp.Tool {
	return mcp.NewTool("jira_delete_filter",
		mcp.WithDescription("Delete a saved filter"),
		mcp.WithString("filter_id",
			mcp.Required(),
			mcp.Description("Filter id"),
		),
	)
}
