package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/atlassian"
	"github.com/ternarybob/pons/internal/services/confluence"
)

// jsonResult marshals a payload into a successful tool result.
func jsonResult(payload interface{}) *mcp.CallToolResult {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorText(fmt.Sprintf("failed to encode result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(encoded)),
		},
	}
}

// successResult wraps a payload in a success envelope.
func successResult(payload interface{}) *mcp.CallToolResult {
	return jsonResult(map[string]interface{}{
		"success": true,
		"result":  payload,
	})
}

// errorText builds a failed tool result from a plain message. Parameter
// errors never bubble up as protocol errors: the model sees them as tool
// output and can correct the call.
func errorText(message string) *mcp.CallToolResult {
	encoded, _ := json.MarshalIndent(map[string]interface{}{
		"success": false,
		"error":   message,
	}, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(encoded)),
		},
		IsError: true,
	}
}

// errorResult logs a failed operation and builds a failed tool result. Typed
// Atlassian errors carry their kind and HTTP status into the payload so the
// model can distinguish a bad parameter from a missing feature.
func errorResult(logger arbor.ILogger, action string, err error) *mcp.CallToolResult {
	logger.Warn().Err(err).Str("action", action).Msg("Tool call failed")

	payload := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}

	var apiErr *atlassian.Error
	if errors.As(err, &apiErr) {
		payload["kind"] = string(apiErr.Kind)
		if apiErr.StatusCode != 0 {
			payload["statusCode"] = apiErr.StatusCode
		}
	}

	encoded, _ := json.MarshalIndent(payload, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(encoded)),
		},
		IsError: true,
	}
}

// formatUsers renders normalized users as a compact markdown list.
func formatUsers(users []*atlassian.NormalizedUser) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Users (%d)\n\n", len(users)))

	if len(users) == 0 {
		sb.WriteString("No users found.\n")
		return sb.String()
	}

	for i, user := range users {
		sb.WriteString(fmt.Sprintf("%d. **%s** (`%s`)\n", i+1, user.DisplayName, user.ID))
		if user.EmailAddress != "" {
			sb.WriteString(fmt.Sprintf("   Email: %s\n", user.EmailAddress))
		}
		sb.WriteString(fmt.Sprintf("   Active: %t\n\n", user.Active))
	}

	return sb.String()
}

// formatPage renders a fetched Confluence page as markdown with the
// converted body inline.
func formatPage(page *confluence.Page) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", page.Title))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", page.ID))
	if page.SpaceID != "" {
		sb.WriteString(fmt.Sprintf("**Space:** %s\n", page.SpaceID))
	}
	sb.WriteString(fmt.Sprintf("**Version:** %d\n\n", page.Version))

	sb.WriteString("## Content\n\n")
	if page.Markdown != "" {
		sb.WriteString(page.Markdown)
	} else {
		sb.WriteString("(empty page)")
	}
	sb.WriteString("\n")

	return sb.String()
}
