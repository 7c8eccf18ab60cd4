package main

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/pons/internal/atlassian"
)

const (
	deploymentInfoURI = "pons://deployment-info"
	compatibilityURI  = "pons://api-compatibility"
)

// deploymentInfo describes one configured connection for the resource
// payload. Credentials never appear here.
type deploymentInfo struct {
	Service        string `json:"service"`
	BaseURL        string `json:"baseUrl"`
	DeploymentType string `json:"deploymentType"`
	AuthType       string `json:"authType"`
	APIVersion     string `json:"apiVersion"`
	AgileVersion   string `json:"agileApiVersion,omitempty"`
}

// registerResources exposes the detected deployment configuration and the
// endpoint compatibility tables as MCP resources, so the model can inspect
// what the connected instances support before calling tools.
func registerResources(mcpServer *server.MCPServer, jiraClient, confluenceClient *atlassian.Client) {
	mcpServer.AddResource(
		mcp.NewResource(
			deploymentInfoURI,
			"Deployment information",
			mcp.WithResourceDescription("Detected deployment type, auth method and API versions for each configured Atlassian connection"),
			mcp.WithMIMEType("application/json"),
		),
		handleDeploymentInfo(jiraClient, confluenceClient),
	)

	mcpServer.AddResource(
		mcp.NewResource(
			compatibilityURI,
			"API compatibility map",
			mcp.WithResourceDescription("Endpoint availability and paths per deployment type for Jira and Confluence operations"),
			mcp.WithMIMEType("application/json"),
		),
		handleCompatibilityMap(),
	)
}

func handleDeploymentInfo(jiraClient, confluenceClient *atlassian.Client) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		infos := []deploymentInfo{}

		if jiraClient != nil {
			deployment := jiraClient.DeploymentType()
			infos = append(infos, deploymentInfo{
				Service:        string(atlassian.ServiceJira),
				BaseURL:        jiraClient.Config().BaseURL,
				DeploymentType: string(deployment),
				AuthType:       jiraClient.AuthType(),
				APIVersion:     atlassian.APIVersion(atlassian.ServiceJira, deployment),
				AgileVersion:   atlassian.AgileAPIVersion(deployment),
			})
		}
		if confluenceClient != nil {
			deployment := confluenceClient.DeploymentType()
			infos = append(infos, deploymentInfo{
				Service:        string(atlassian.ServiceConfluence),
				BaseURL:        confluenceClient.Config().BaseURL,
				DeploymentType: string(deployment),
				AuthType:       confluenceClient.AuthType(),
				APIVersion:     atlassian.APIVersion(atlassian.ServiceConfluence, deployment),
			})
		}

		data, err := json.MarshalIndent(map[string]interface{}{"connections": infos}, "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      deploymentInfoURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleCompatibilityMap() server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type endpointEntry struct {
			Path        string `json:"path"`
			Method      string `json:"method"`
			Available   bool   `json:"available"`
			Alternative string `json:"alternative,omitempty"`
			Notes       string `json:"notes,omitempty"`
		}

		table := map[string]map[string]map[string]endpointEntry{}
		for _, service := range []atlassian.Service{atlassian.ServiceJira, atlassian.ServiceConfluence} {
			serviceTable := map[string]map[string]endpointEntry{}
			for _, key := range atlassian.EndpointKeys(service) {
				entry := map[string]endpointEntry{}
				for _, deployment := range []atlassian.DeploymentType{atlassian.DeploymentCloud, atlassian.DeploymentServer} {
					if config := atlassian.GetEndpointConfig(service, key, deployment); config != nil {
						entry[string(deployment)] = endpointEntry{
							Path:        config.Path,
							Method:      config.Method,
							Available:   config.IsAvailable,
							Alternative: config.Alternative,
							Notes:       config.Notes,
						}
					}
				}
				serviceTable[key] = entry
			}
			table[string(service)] = serviceTable
		}

		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      compatibilityURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
