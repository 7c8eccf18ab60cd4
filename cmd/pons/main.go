package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/atlassian"
	"github.com/ternarybob/pons/internal/common"
	"github.com/ternarybob/pons/internal/services/confluence"
	"github.com/ternarybob/pons/internal/services/jira"
	"github.com/ternarybob/pons/internal/services/workers"
)

func main() {
	defer common.RecoverWithCrashFile()

	if len(os.Args) > 1 && (os.Args[1] == "version" || os.Args[1] == "--version") {
		common.PrintBanner(common.GetFullVersion())
		return
	}

	// Optional .env file for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("PONS_CONFIG")
	if configPath == "" {
		configPath = "pons.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Console output stays at the configured level so MCP protocol frames on
	// stdout are not drowned out; full logs land in a file next to the binary.
	logger := common.InitLogger(config)
	if logPath := common.GetLogFilePath(logger); logPath != "" {
		logger.Debug().Str("path", logPath).Msg("File logging enabled")
	}

	configs, err := common.GetSeparateConfigsFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to resolve Atlassian configuration")
	}

	// Legacy single-site fallback: ATLASSIAN_SITE_NAME alone configures both
	// services against the same instance.
	if configs.Jira == nil && configs.Confluence == nil {
		legacy, err := common.GetConfigFromEnv()
		if err != nil {
			logger.Fatal().Err(err).Msg("No Atlassian connection configured")
		}
		configs.Jira = legacy
		configs.Confluence = legacy
	}

	userAgent := fmt.Sprintf("%s/%s", config.Server.Name, config.Server.Version)

	var jiraClient, confluenceClient *atlassian.Client
	var jiraService *jira.Service
	var confluenceService *confluence.Service

	if configs.Jira != nil {
		jiraClient, err = atlassian.NewClient(configs.Jira, userAgent, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Jira client")
		}
		jiraService = jira.NewService(jiraClient, logger)
		logger.Info().
			Str("url", configs.Jira.BaseURL).
			Str("deployment", string(configs.Jira.DeploymentType)).
			Msg("Jira connection configured")
	}

	if configs.Confluence != nil {
		confluenceClient, err = atlassian.NewClient(configs.Confluence, userAgent, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Confluence client")
		}
		confluenceService = confluence.NewService(confluenceClient, logger)
		logger.Info().
			Str("url", configs.Confluence.BaseURL).
			Str("deployment", string(configs.Confluence.DeploymentType)).
			Msg("Confluence connection configured")
	}

	// Optional upfront credential check. Off by default so a slow or
	// unreachable instance does not delay server startup.
	if os.Getenv("PONS_VERIFY_AUTH") == "true" {
		verifyConnections(jiraService, confluenceService, logger)
	}

	mcpServer := server.NewMCPServer(
		config.Server.Name,
		config.Server.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
	)

	if jiraService != nil {
		registerJiraTools(mcpServer, jiraService, logger)
	}
	if confluenceService != nil {
		registerConfluenceTools(mcpServer, confluenceService, logger)
	}
	registerResources(mcpServer, jiraClient, confluenceClient)
	if jiraService != nil {
		registerJiraBrowseResources(mcpServer, jiraService)
	}
	if confluenceService != nil {
		registerConfluenceBrowseResources(mcpServer, confluenceService)
	}

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// verifyConnections probes each configured service in parallel. Failures are
// logged as warnings; tools still register so the operator can inspect the
// deployment-info resource and retry.
func verifyConnections(jiraService *jira.Service, confluenceService *confluence.Service, logger arbor.ILogger) {
	pool := workers.NewPool(2, logger)
	pool.Start()

	if jiraService != nil {
		_ = pool.Submit(func(ctx context.Context) error {
			user, err := jiraService.VerifyAuth(ctx)
			if err != nil {
				return fmt.Errorf("jira auth check: %w", err)
			}
			logger.Info().Str("user", user.DisplayName).Msg("Jira credentials verified")
			return nil
		})
	}

	if confluenceService != nil {
		_ = pool.Submit(func(ctx context.Context) error {
			if _, err := confluenceService.ListSpaces(ctx, 1); err != nil {
				return fmt.Errorf("confluence auth check: %w", err)
			}
			logger.Info().Msg("Confluence credentials verified")
			return nil
		})
	}

	pool.Wait()

	for _, err := range pool.Errors() {
		logger.Warn().Err(err).Msg("Connection verification failed")
	}
}

func registerJiraTools(mcpServer *server.MCPServer, service *jira.Service, logger arbor.ILogger) {
	// Issues
	mcpServer.AddTool(createSearchIssuesTool(), handleSearchIssues(service, logger))
	mcpServer.AddTool(createGetIssueTool(), handleGetIssue(service, logger))
	mcpServer.AddTool(createCreateIssueTool(), handleCreateIssue(service, logger))
	mcpServer.AddTool(createUpdateIssueTool(), handleUpdateIssue(service, logger))
	mcpServer.AddTool(createListTransitionsTool(), handleListTransitions(service, logger))
	mcpServer.AddTool(createTransitionIssueTool(), handleTransitionIssue(service, logger))
	mcpServer.AddTool(createAssignIssueTool(), handleAssignIssue(service, logger))
	mcpServer.AddTool(createAddCommentTool(), handleAddComment(service, logger))

	// Projects and users
	mcpServer.AddTool(createListProjectsTool(), handleListProjects(service, logger))
	mcpServer.AddTool(createGetProjectTool(), handleGetProject(service, logger))
	mcpServer.AddTool(createSearchUsersTool(), handleSearchUsers(service, logger))
	mcpServer.AddTool(createGetMyselfTool(), handleGetMyself(service, logger))
	mcpServer.AddTool(createListAssignableUsersTool(), handleListAssignableUsers(service, logger))
	mcpServer.AddTool(createVerifyAuthTool(), handleVerifyAuth(service, logger))

	// Boards, sprints and backlog
	mcpServer.AddTool(createListBoardsTool(), handleListBoards(service, logger))
	mcpServer.AddTool(createGetBoardIssuesTool(), handleGetBoardIssues(service, logger))
	mcpServer.AddTool(createGetBoardConfigurationTool(), handleGetBoardConfiguration(service, logger))
	mcpServer.AddTool(createListSprintsTool(), handleListSprints(service, logger))
	mcpServer.AddTool(createCreateSprintTool(), handleCreateSprint(service, logger))
	mcpServer.AddTool(createStartSprintTool(), handleStartSprint(service, logger))
	mcpServer.AddTool(createCloseSprintTool(), handleCloseSprint(service, logger))
	mcpServer.AddTool(createUpdateSprintTool(), handleUpdateSprint(service, logger))
	mcpServer.AddTool(createMoveIssuesToSprintTool(), handleMoveIssuesToSprint(service, logger))
	mcpServer.AddTool(createMoveIssuesToBacklogTool(), handleMoveIssuesToBacklog(service, logger))
	mcpServer.AddTool(createRankIssuesTool(), handleRankIssues(service, logger))

	// Dashboards
	mcpServer.AddTool(createListDashboardsTool(), handleListDashboards(service, logger))
	mcpServer.AddTool(createGetDashboardTool(), handleGetDashboard(service, logger))
	mcpServer.AddTool(createCreateDashboardTool(), handleCreateDashboard(service, logger))
	mcpServer.AddTool(createUpdateDashboardTool(), handleUpdateDashboard(service, logger))
	mcpServer.AddTool(createListGadgetsTool(), handleListGadgets(service, logger))
	mcpServer.AddTool(createAddGadgetTool(), handleAddGadget(service, logger))
	mcpServer.AddTool(createRemoveGadgetTool(), handleRemoveGadget(service, logger))

	// Filters
	mcpServer.AddTool(createSearchFiltersTool(), handleSearchFilters(service, logger))
	mcpServer.AddTool(createCreateFilterTool(), handleCreateFilter(service, logger))
	mcpServer.AddTool(createGetFilterTool(), handleGetFilter(service, logger))
	mcpServer.AddTool(createUpdateFilterTool(), handleUpdateFilter(service, logger))
	mcpServer.AddTool(createDeleteFilterTool(), handleDeleteFilter(service, logger))
}

func registerConfluenceTools(mcpServer *server.MCPServer, service *confluence.Service, logger arbor.ILogger) {
	mcpServer.AddTool(createListSpacesTool(), handleListSpaces(service, logger))
	mcpServer.AddTool(createGetSpaceTool(), handleGetSpace(service, logger))
	mcpServer.AddTool(createListSpacePagesTool(), handleListSpacePages(service, logger))
	mcpServer.AddTool(createListPagesTool(), handleListPages(service, logger))
	mcpServer.AddTool(createGetPageTool(), handleGetPage(service, logger))
	mcpServer.AddTool(createCreatePageTool(), handleCreatePage(service, logger))
	mcpServer.AddTool(createUpdatePageTool(), handleUpdatePage(service, logger))
	mcpServer.AddTool(createListChildPagesTool(), handleListChildPages(service, logger))
	mcpServer.AddTool(createAddPageCommentTool(), handleAddPageComment(service, logger))
	mcpServer.AddTool(createAddLabelsTool(), handleAddLabels(service, logger))
	mcpServer.AddTool(createRemoveLabelTool(), handleRemoveLabel(service, logger))
}
