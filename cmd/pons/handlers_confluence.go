package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/services/confluence"
)

// handleListSpaces implements the confluence_list_spaces tool
func handleListSpaces(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := service.ListSpaces(ctx, request.GetInt("limit", 25))
		if err != nil {
			return errorResult(logger, "confluence_list_spaces", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetSpace implements the confluence_get_space tool
func handleGetSpace(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		space, err := request.RequireString("space")
		if err != nil || space == "" {
			return errorText("space parameter is required"), nil
		}

		result, err := service.GetSpace(ctx, space)
		if err != nil {
			return errorResult(logger, "confluence_get_space", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleListSpacePages implements the confluence_list_space_pages tool
func handleListSpacePages(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		space, err := request.RequireString("space")
		if err != nil || space == "" {
			return errorText("space parameter is required"), nil
		}

		result, err := service.ListSpacePages(ctx, space, request.GetInt("limit", 25))
		if err != nil {
			return errorResult(logger, "confluence_list_space_pages", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleListPages implements the confluence_list_pages tool
func handleListPages(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := service.ListPages(ctx, request.GetInt("limit", 25))
		if err != nil {
			return errorResult(logger, "confluence_list_pages", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleGetPage implements the confluence_get_page tool
func handleGetPage(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}

		page, err := service.GetPage(ctx, pageID)
		if err != nil {
			return errorResult(logger, "confluence_get_page", err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatPage(page)),
			},
		}, nil
	}
}

// handleCreatePage implements the confluence_create_page tool
func handleCreatePage(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		space, err := request.RequireString("space")
		if err != nil || space == "" {
			return errorText("space parameter is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil || title == "" {
			return errorText("title parameter is required"), nil
		}

		result, err := service.CreatePage(ctx, confluence.PageInput{
			SpaceIDOrKey: space,
			Title:        title,
			Body:         request.GetString("body", ""),
			ParentID:     request.GetString("parent_id", ""),
		})
		if err != nil {
			return errorResult(logger, "confluence_create_page", err), nil
		}
		return successResult(result), nil
	}
}

// handleUpdatePage implements the confluence_update_page tool
func handleUpdatePage(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil || title == "" {
			return errorText("title parameter is required"), nil
		}
		version := request.GetInt("version", 0)
		if version < 1 {
			return errorText("version parameter is required and must be positive"), nil
		}

		result, err := service.UpdatePage(ctx, pageID, title, request.GetString("body", ""), version)
		if err != nil {
			return errorResult(logger, "confluence_update_page", err), nil
		}
		return successResult(result), nil
	}
}

// handleListChildPages implements the confluence_list_child_pages tool
func handleListChildPages(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}

		result, err := service.ListChildPages(ctx, pageID, request.GetInt("limit", 25))
		if err != nil {
			return errorResult(logger, "confluence_list_child_pages", err), nil
		}
		return jsonResult(result), nil
	}
}

// handleAddPageComment implements the confluence_add_comment tool
func handleAddPageComment(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}
		comment, err := request.RequireString("comment")
		if err != nil || comment == "" {
			return errorText("comment parameter is required"), nil
		}

		result, err := service.AddComment(ctx, pageID, comment)
		if err != nil {
			return errorResult(logger, "confluence_add_comment", err), nil
		}
		return successResult(result), nil
	}
}

// handleAddLabels implements the confluence_add_labels tool
func handleAddLabels(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}
		labels := request.GetStringSlice("labels", nil)
		if len(labels) == 0 {
			return errorText("labels parameter is required"), nil
		}

		if err := service.AddLabels(ctx, pageID, labels); err != nil {
			return errorResult(logger, "confluence_add_labels", err), nil
		}
		return successResult(map[string]interface{}{"page": pageID, "added": len(labels)}), nil
	}
}

// handleRemoveLabel implements the confluence_remove_label tool
func handleRemoveLabel(service *confluence.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, err := request.RequireString("page_id")
		if err != nil || pageID == "" {
			return errorText("page_id parameter is required"), nil
		}
		label, err := request.RequireString("label")
		if err != nil || label == "" {
			return errorText("label parameter is required"), nil
		}

		if err := service.RemoveLabel(ctx, pageID, label); err != nil {
			return errorResult(logger, "confluence_remove_label", err), nil
		}
		return successResult(map[string]interface{}{"page": pageID, "removed": label}), nil
	}
}
