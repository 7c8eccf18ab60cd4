package atlassian

import (
	"net/url"
	"strings"
)

// Service names the Atlassian product an endpoint belongs to.
type Service string

const (
	ServiceJira       Service = "jira"
	ServiceConfluence Service = "confluence"
)

// EndpointConfig describes how one logical operation maps onto a concrete
// REST endpoint for a specific deployment type.
type EndpointConfig struct {
	Path        string
	Method      string
	IsAvailable bool
	Alternative string
	Notes       string
}

// APIVersionInfo lists the REST API versions a deployment type speaks.
type APIVersionInfo struct {
	Jira       string
	Confluence string
	Agile      string
}

// apiVersions holds configurable defaults, not guarantees: individual
// Server/DC installs may support newer versions than listed here.
var apiVersions = map[DeploymentType]APIVersionInfo{
	DeploymentCloud:  {Jira: "3", Confluence: "2", Agile: "1.0"},
	DeploymentServer: {Jira: "2", Confluence: "1", Agile: "1.0"},
}

// jiraEndpoints maps logical Jira operations to per-deployment endpoint
// configuration. Cloud uses the v3 REST API, Server/DC the v2 API; the Agile
// API is version 1.0 on both. Every key has an entry for both deployment
// types so lookups for known operations never come back undefined.
var jiraEndpoints = map[string]map[DeploymentType]EndpointConfig{
	// User endpoints
	"users.search": {
		DeploymentCloud: {
			Path:        "/rest/api/3/user/search",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/user/search",
			Method:      "GET",
			IsAvailable: true,
			Notes:       "Uses v2 API on most Server/DC versions; takes username instead of query",
		},
	},
	"users.myself": {
		DeploymentCloud: {
			Path:        "/rest/api/3/myself",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/myself",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"users.assignable": {
		DeploymentCloud: {
			Path:        "/rest/api/3/user/assignable/search",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/user/assignable/search",
			Method:      "GET",
			IsAvailable: true,
		},
	},

	// Issue endpoints
	"issues.search": {
		DeploymentCloud: {
			Path:        "/rest/api/3/search",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/search",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"issues.create": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"issues.get": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"issues.update": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}",
			Method:      "PUT",
			IsAvailable: true,
		},
	},
	"issues.assign": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}/assignee",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}/assignee",
			Method:      "PUT",
			IsAvailable: true,
		},
	},
	"issues.transitions": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}/transitions",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}/transitions",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"issues.transitions.list": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}/transitions",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}/transitions",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"issues.comment": {
		DeploymentCloud: {
			Path:        "/rest/api/3/issue/{issueIdOrKey}/comment",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/issue/{issueIdOrKey}/comment",
			Method:      "POST",
			IsAvailable: true,
		},
	},

	// Project endpoints
	"projects.all": {
		DeploymentCloud: {
			Path:        "/rest/api/3/project",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/project",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"projects.get": {
		DeploymentCloud: {
			Path:        "/rest/api/3/project/{projectIdOrKey}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/project/{projectIdOrKey}",
			Method:      "GET",
			IsAvailable: true,
		},
	},

	// Filter endpoints
	"filters.search": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter/search",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter/search",
			Method:      "GET",
			IsAvailable: false,
			Alternative: "filters.favourite",
			Notes:       "Server/DC has no filter search endpoint; only favourite filters can be listed",
		},
	},
	"filters.favourite": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter/favourite",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter/favourite",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"filters.create": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"filters.get": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter/{filterId}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter/{filterId}",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"filters.update": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter/{filterId}",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter/{filterId}",
			Method:      "PUT",
			IsAvailable: true,
		},
	},
	"filters.delete": {
		DeploymentCloud: {
			Path:        "/rest/api/3/filter/{filterId}",
			Method:      "DELETE",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/filter/{filterId}",
			Method:      "DELETE",
			IsAvailable: true,
		},
	},

	// Dashboard endpoints
	"dashboards.all": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"dashboards.get": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard/{dashboardId}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard/{dashboardId}",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"dashboards.create": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard",
			Method:      "POST",
			IsAvailable: false,
			Notes:       "Server/DC only supports dashboard creation through the UI",
		},
	},
	"dashboards.update": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard/{dashboardId}",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard/{dashboardId}",
			Method:      "PUT",
			IsAvailable: false,
			Notes:       "Server/DC only supports dashboard edits through the UI",
		},
	},
	"dashboards.gadgets": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard/{dashboardId}/gadget",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard/{dashboardId}/gadget",
			Method:      "GET",
			IsAvailable: false,
			Notes:       "The dashboard gadget API is Cloud-only",
		},
	},
	"dashboards.gadget.add": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard/{dashboardId}/gadget",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard/{dashboardId}/gadget",
			Method:      "POST",
			IsAvailable: false,
			Notes:       "The dashboard gadget API is Cloud-only",
		},
	},
	"dashboards.gadget.remove": {
		DeploymentCloud: {
			Path:        "/rest/api/3/dashboard/{dashboardId}/gadget/{gadgetId}",
			Method:      "DELETE",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/2/dashboard/{dashboardId}/gadget/{gadgetId}",
			Method:      "DELETE",
			IsAvailable: false,
			Notes:       "The dashboard gadget API is Cloud-only",
		},
	},

	// Agile endpoints (version 1.0 on both deployment types)
	"agile.boards": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/board",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/board",
			Method:      "GET",
			IsAvailable: true,
			Notes:       "Requires Jira Software license",
		},
	},
	"agile.board.issues": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/board/{boardId}/issue",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/board/{boardId}/issue",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"agile.board.configuration": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/board/{boardId}/configuration",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/board/{boardId}/configuration",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"agile.sprints": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/board/{boardId}/sprint",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/board/{boardId}/sprint",
			Method:      "GET",
			IsAvailable: true,
			Notes:       "Requires Jira Software license",
		},
	},
	"agile.sprint.create": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/sprint",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/sprint",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"agile.sprint.update": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/sprint/{sprintId}",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/sprint/{sprintId}",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"agile.sprint.issues": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/sprint/{sprintId}/issue",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/sprint/{sprintId}/issue",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"agile.backlog": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/backlog/issue",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/backlog/issue",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"agile.backlog.rank": {
		DeploymentCloud: {
			Path:        "/rest/agile/1.0/issue/rank",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/agile/1.0/issue/rank",
			Method:      "PUT",
			IsAvailable: true,
		},
	},
}

// confluenceEndpoints maps logical Confluence operations. Cloud uses the v2
// API under /api/v2, Server/DC the v1 API under /rest/api. The label API is
// still v1 on both deployment types.
var confluenceEndpoints = map[string]map[DeploymentType]EndpointConfig{
	// Space endpoints
	"spaces.all": {
		DeploymentCloud: {
			Path:        "/api/v2/spaces",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/space",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"spaces.get": {
		DeploymentCloud: {
			Path:        "/api/v2/spaces/{spaceId}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/space/{spaceKey}",
			Method:      "GET",
			IsAvailable: true,
			Notes:       "Uses spaceKey instead of spaceId",
		},
	},
	"spaces.pages": {
		DeploymentCloud: {
			Path:        "/api/v2/spaces/{spaceId}/pages",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/space/{spaceKey}/content/page",
			Method:      "GET",
			IsAvailable: true,
		},
	},

	// Page endpoints
	"pages.all": {
		DeploymentCloud: {
			Path:        "/api/v2/pages",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/content",
			Method:      "GET",
			IsAvailable: true,
			Notes:       "Uses the content endpoint with a type=page filter",
		},
	},
	"pages.get": {
		DeploymentCloud: {
			Path:        "/api/v2/pages/{pageId}",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"pages.create": {
		DeploymentCloud: {
			Path:        "/api/v2/pages",
			Method:      "POST",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/content",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"pages.update": {
		DeploymentCloud: {
			Path:        "/api/v2/pages/{pageId}",
			Method:      "PUT",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}",
			Method:      "PUT",
			IsAvailable: true,
		},
	},
	"pages.children": {
		DeploymentCloud: {
			Path:        "/api/v2/pages/{pageId}/children",
			Method:      "GET",
			IsAvailable: true,
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}/child/page",
			Method:      "GET",
			IsAvailable: true,
		},
	},
	"pages.comment": {
		DeploymentCloud: {
			Path:        "/api/v2/footer-comments",
			Method:      "POST",
			IsAvailable: true,
			Notes:       "The page id goes in the request body, not the path",
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}/child/comment",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"pages.labels": {
		DeploymentCloud: {
			Path:        "/rest/api/content/{pageId}/label",
			Method:      "POST",
			IsAvailable: true,
			Notes:       "The label API is still v1 on Cloud",
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}/label",
			Method:      "POST",
			IsAvailable: true,
		},
	},
	"pages.label.remove": {
		DeploymentCloud: {
			Path:        "/rest/api/content/{pageId}/label/{labelName}",
			Method:      "DELETE",
			IsAvailable: true,
			Notes:       "The label API is still v1 on Cloud",
		},
		DeploymentServer: {
			Path:        "/rest/api/content/{pageId}/label/{labelName}",
			Method:      "DELETE",
			IsAvailable: true,
		},
	},
}

func endpointTable(service Service) map[string]map[DeploymentType]EndpointConfig {
	if service == ServiceConfluence {
		return confluenceEndpoints
	}
	return jiraEndpoints
}

// GetEndpointConfig returns the endpoint configuration for one operation on
// one deployment type, or nil when the operation is unknown.
func GetEndpointConfig(service Service, endpoint string, deployment DeploymentType) *EndpointConfig {
	configs, ok := endpointTable(service)[endpoint]
	if !ok {
		return nil
	}

	config, ok := configs[deployment]
	if !ok {
		return nil
	}

	return &config
}

// EndpointKeys returns all known operation names for a service, for table
// introspection and tests.
func EndpointKeys(service Service) []string {
	table := endpointTable(service)
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	return keys
}

// BuildURL assembles the full request URL for an operation. Path parameters
// are substituted into {name} placeholders with URL escaping; unresolved
// placeholders are left in place and surface downstream as a malformed URL.
// Unavailable endpoints produce an error rather than a dead URL.
func BuildURL(baseURL string, service Service, endpoint string, deployment DeploymentType, pathParams map[string]string) (string, error) {
	config := GetEndpointConfig(service, endpoint, deployment)
	if config == nil {
		return "", NewValidationError("unknown endpoint: %s.%s", service, endpoint)
	}

	if !config.IsAvailable {
		return "", NewUnavailableError(service, endpoint, deployment)
	}

	path := config.Path
	for key, value := range pathParams {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}

	return strings.TrimRight(baseURL, "/") + path, nil
}

// IsFeatureAvailable reports whether an operation is usable on a deployment
// type.
func IsFeatureAvailable(service Service, endpoint string, deployment DeploymentType) bool {
	config := GetEndpointConfig(service, endpoint, deployment)
	return config != nil && config.IsAvailable
}

// AlternativeEndpoint returns the fallback operation name for an endpoint, if
// the table declares one.
func AlternativeEndpoint(service Service, endpoint string, deployment DeploymentType) string {
	config := GetEndpointConfig(service, endpoint, deployment)
	if config == nil {
		return ""
	}
	return config.Alternative
}

// MapQueryParameters renames query parameters that differ between deployment
// types. The merge is idempotent: a caller-supplied value that already uses
// the target name wins over the remapped one.
func MapQueryParameters(service Service, endpoint string, deployment DeploymentType, params map[string]string) map[string]string {
	mapped := make(map[string]string, len(params))
	for key, value := range params {
		mapped[key] = value
	}

	if service == ServiceJira && endpoint == "users.search" && deployment == DeploymentServer {
		// Server/DC user search takes username where Cloud takes query.
		if query, ok := mapped["query"]; ok {
			if _, exists := mapped["username"]; !exists {
				mapped["username"] = query
			}
			delete(mapped, "query")
		}
	}

	return mapped
}

// APIVersion returns the default REST API version for a service on a
// deployment type.
func APIVersion(service Service, deployment DeploymentType) string {
	versions := apiVersions[deployment]
	switch service {
	case ServiceConfluence:
		return versions.Confluence
	default:
		return versions.Jira
	}
}

// AgileAPIVersion returns the Agile API version for a deployment type.
func AgileAPIVersion(deployment DeploymentType) string {
	return apiVersions[deployment].Agile
}

// IsAPIVersionSupported is a heuristic: Server/DC generally supports v2 and
// Cloud Jira generally supports v3, regardless of what the instance actually
// advertises. It is a configurable default, not a capability probe.
func IsAPIVersionSupported(service Service, version string, deployment DeploymentType) bool {
	if version == APIVersion(service, deployment) {
		return true
	}
	if deployment == DeploymentServer && version == "2" {
		return true
	}
	return deployment == DeploymentCloud && service == ServiceJira && version == "3"
}
