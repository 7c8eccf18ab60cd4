package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/pons/internal/services/confluence"
	"github.com/ternarybob/pons/internal/services/jira"
)

const browseLimit = 25

// resourceMetadata is the paging envelope attached to every list resource.
type resourceMetadata struct {
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"hasMore"`
	Links   resourceLinks `json:"links"`
}

type resourceLinks struct {
	Self string `json:"self"`
}

func newResourceMetadata(uri string, total, limit, offset int) resourceMetadata {
	return resourceMetadata{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
		Links:   resourceLinks{Self: uri},
	}
}

func jsonResourceContents(uri string, payload interface{}) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// listEnvelope pulls the item slice and total out of an Atlassian paged
// response. Responses without a recognizable envelope pass through whole.
func listEnvelope(result map[string]interface{}, itemKeys ...string) (interface{}, int) {
	for _, key := range itemKeys {
		items, ok := result[key].([]interface{})
		if !ok {
			continue
		}
		total := len(items)
		if v, ok := result["total"].(float64); ok {
			total = int(v)
		}
		return items, total
	}
	return result, 0
}

// registerJiraBrowseResources exposes read-only browse resources over the
// Jira connection. These mirror the tool surface for clients that prefer
// resource reads over tool calls.
func registerJiraBrowseResources(mcpServer *server.MCPServer, service *jira.Service) {
	mcpServer.AddResource(
		mcp.NewResource(
			"jira://issues",
			"Jira issues",
			mcp.WithResourceDescription("Recently updated issues visible to the configured credentials"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			result, err := service.SearchIssues(ctx, "order by updated DESC", &jira.SearchOptions{MaxResults: browseLimit})
			if err != nil {
				return nil, err
			}
			issues, total := listEnvelope(result, "issues")
			return jsonResourceContents("jira://issues", map[string]interface{}{
				"metadata": newResourceMetadata("jira://issues", total, browseLimit, 0),
				"issues":   issues,
			})
		},
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"jira://issues/{key}",
			"Jira issue",
			mcp.WithTemplateDescription("A single issue by key, e.g. jira://issues/PROJ-123"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			key := strings.TrimPrefix(request.Params.URI, "jira://issues/")
			issue, err := service.GetIssue(ctx, key, nil)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents(request.Params.URI, issue)
		},
	)

	mcpServer.AddResource(
		mcp.NewResource(
			"jira://projects",
			"Jira projects",
			mcp.WithResourceDescription("Projects visible to the configured credentials"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			projects, err := service.ListProjects(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents("jira://projects", map[string]interface{}{
				"metadata": newResourceMetadata("jira://projects", len(projects), len(projects), 0),
				"projects": projects,
			})
		},
	)

	mcpServer.AddResource(
		mcp.NewResource(
			"jira://boards",
			"Jira boards",
			mcp.WithResourceDescription("Agile boards visible to the configured credentials"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			result, err := service.ListBoards(ctx, "", browseLimit)
			if err != nil {
				return nil, err
			}
			boards, total := listEnvelope(result, "values")
			return jsonResourceContents("jira://boards", map[string]interface{}{
				"metadata": newResourceMetadata("jira://boards", total, browseLimit, 0),
				"boards":   boards,
			})
		},
	)

	mcpServer.AddResource(
		mcp.NewResource(
			"jira://dashboards",
			"Jira dashboards",
			mcp.WithResourceDescription("Dashboards visible to the configured credentials"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			result, err := service.ListDashboards(ctx, browseLimit)
			if err != nil {
				return nil, err
			}
			dashboards, total := listEnvelope(result, "dashboards", "values")
			return jsonResourceContents("jira://dashboards", map[string]interface{}{
				"metadata":   newResourceMetadata("jira://dashboards", total, browseLimit, 0),
				"dashboards": dashboards,
			})
		},
	)

	// The user search API needs parameters, so the root resource points the
	// caller at the search tools instead of returning an empty page.
	mcpServer.AddResource(
		mcp.NewResource(
			"jira://users",
			"Jira users",
			mcp.WithResourceDescription("Entry point for user lookups"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return jsonResourceContents("jira://users", map[string]interface{}{
				"message": "User lookups need parameters. Use the jira_search_users or jira_list_assignable_users tools.",
				"tools":   []string{"jira_search_users", "jira_list_assignable_users", "jira_get_myself"},
			})
		},
	)
}

// registerConfluenceBrowseResources exposes read-only browse resources over
// the Confluence connection.
func registerConfluenceBrowseResources(mcpServer *server.MCPServer, service *confluence.Service) {
	mcpServer.AddResource(
		mcp.NewResource(
			"confluence://spaces",
			"Confluence spaces",
			mcp.WithResourceDescription("Spaces visible to the configured credentials"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			result, err := service.ListSpaces(ctx, browseLimit)
			if err != nil {
				return nil, err
			}
			spaces, total := listEnvelope(result, "results", "values")
			return jsonResourceContents("confluence://spaces", map[string]interface{}{
				"metadata": newResourceMetadata("confluence://spaces", total, browseLimit, 0),
				"spaces":   spaces,
			})
		},
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"confluence://pages/{id}",
			"Confluence page",
			mcp.WithTemplateDescription("A single page by ID with its body converted to markdown"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			id := strings.TrimPrefix(request.Params.URI, "confluence://pages/")
			page, err := service.GetPage(ctx, id)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents(request.Params.URI, page)
		},
	)
}
