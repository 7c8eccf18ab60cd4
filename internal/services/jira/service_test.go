package jira

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/atlassian"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]interface{}
}

// newTestService spins up an httptest server and a Jira service pointed at
// it with the given deployment type. Requests are recorded for assertions.
func newTestService(t *testing.T, deployment atlassian.DeploymentType, status int, response string) (*Service, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.Method = r.Method
		recorded.Path = r.URL.Path
		recorded.Query = map[string]string{}
		for key := range r.URL.Query() {
			recorded.Query[key] = r.URL.Query().Get(key)
		}
		if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
			_ = json.Unmarshal(body, &recorded.Body)
		}
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	config := &atlassian.Config{
		BaseURL:        server.URL,
		DeploymentType: deployment,
	}
	if deployment == atlassian.DeploymentCloud {
		config.Email = "user@example.com"
		config.APIToken = "token123"
	} else {
		config.APIToken = "pat-token"
	}

	logger := arbor.NewLogger().WithLevelFromString("error")
	client, err := atlassian.NewClient(config, "pons-test/1.0", logger)
	require.NoError(t, err)

	return NewService(client, logger), recorded
}

func TestSearchIssues(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200,
		`{"issues":[{"key":"PROJ-1"}],"total":1}`)

	result, err := service.SearchIssues(context.Background(), "project = PROJ",
		&SearchOptions{Fields: []string{"summary", "status"}, MaxResults: 10})
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/3/search", recorded.Path)
	assert.Equal(t, "project = PROJ", recorded.Query["jql"])
	assert.Equal(t, "summary,status", recorded.Query["fields"])
	assert.Equal(t, "10", recorded.Query["maxResults"])
	assert.Equal(t, float64(1), result["total"])
}

func TestSearchIssues_EmptyJQL(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 200, `{}`)

	_, err := service.SearchIssues(context.Background(), "  ", nil)
	require.Error(t, err)
	var apiErr *atlassian.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, atlassian.ErrorKindValidation, apiErr.Kind)
}

func TestGetIssue_ServerUsesV2Path(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 200,
		`{"key":"PROJ-123"}`)

	_, err := service.GetIssue(context.Background(), "PROJ-123", nil)
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/2/issue/PROJ-123", recorded.Path)
}

func TestGetIssue_FlattensRichTextDescription(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 200,
		`{"key":"PROJ-123","fields":{"summary":"Deploy","description":{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"Restart the"},{"type":"hardBreak"},{"type":"text","text":"scheduler"}]}]}}}`)

	issue, err := service.GetIssue(context.Background(), "PROJ-123", nil)
	require.NoError(t, err)

	fields := issue["fields"].(map[string]interface{})
	assert.Equal(t, "Restart the\nscheduler", fields["descriptionText"])
}

func TestGetIssue_PlainDescriptionLeftAlone(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentServer, 200,
		`{"key":"PROJ-123","fields":{"description":"plain wiki text"}}`)

	issue, err := service.GetIssue(context.Background(), "PROJ-123", nil)
	require.NoError(t, err)

	fields := issue["fields"].(map[string]interface{})
	assert.Equal(t, "plain wiki text", fields["description"])
	assert.NotContains(t, fields, "descriptionText")
}

func TestCreateIssue_CloudDescriptionIsDocument(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 201,
		`{"id":"10001","key":"PROJ-42"}`)

	result, err := service.CreateIssue(context.Background(), CreateIssueInput{
		ProjectKey:  "PROJ",
		Summary:     "Broken login",
		IssueType:   "Bug",
		Description: "Steps to reproduce",
	})
	require.NoError(t, err)
	assert.Equal(t, "PROJ-42", result["key"])

	fields := recorded.Body["fields"].(map[string]interface{})
	description := fields["description"].(map[string]interface{})
	assert.Equal(t, "doc", description["type"])
	assert.Equal(t, float64(1), description["version"])
}

func TestCreateIssue_ServerDescriptionIsString(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 201,
		`{"id":"10001","key":"PROJ-42"}`)

	_, err := service.CreateIssue(context.Background(), CreateIssueInput{
		ProjectKey:  "PROJ",
		Summary:     "Broken login",
		IssueType:   "Bug",
		Description: "Steps to reproduce",
	})
	require.NoError(t, err)

	fields := recorded.Body["fields"].(map[string]interface{})
	assert.Equal(t, "Steps to reproduce", fields["description"])
}

func TestCreateIssue_MissingRequiredFields(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 201, `{}`)

	_, err := service.CreateIssue(context.Background(), CreateIssueInput{ProjectKey: "PROJ"})
	assert.Error(t, err)
}

func TestAssignIssue_CloudPayload(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 204, ``)

	err := service.AssignIssue(context.Background(), "PROJ-1", "5b10ac8d82e05b22cc7d4ef5")
	require.NoError(t, err)
	assert.Equal(t, "PUT", recorded.Method)
	assert.Equal(t, "/rest/api/3/issue/PROJ-1/assignee", recorded.Path)
	assert.Equal(t, "5b10ac8d82e05b22cc7d4ef5", recorded.Body["accountId"])
}

func TestAssignIssue_ServerPayload(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 204, ``)

	err := service.AssignIssue(context.Background(), "PROJ-1", "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "jsmith", recorded.Body["name"])
	_, hasAccountID := recorded.Body["accountId"]
	assert.False(t, hasAccountID)
}

func TestAssignIssue_InvalidIdentifierNeverSent(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 204, ``)

	// Too short to be a cloud accountId; must fail before any request.
	err := service.AssignIssue(context.Background(), "PROJ-1", "123")
	require.Error(t, err)
	assert.Empty(t, recorded.Method)
}

func TestTransitionIssue(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 204, ``)

	err := service.TransitionIssue(context.Background(), "PROJ-1", "31", "moving along")
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/2/issue/PROJ-1/transitions", recorded.Path)

	transition := recorded.Body["transition"].(map[string]interface{})
	assert.Equal(t, "31", transition["id"])
	update := recorded.Body["update"].(map[string]interface{})
	assert.NotNil(t, update["comment"])
}

func TestAddComment_CloudBodyIsDocument(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 201,
		`{"id":"10200"}`)

	_, err := service.AddComment(context.Background(), "PROJ-1", "looks good")
	require.NoError(t, err)

	body := recorded.Body["body"].(map[string]interface{})
	assert.Equal(t, "doc", body["type"])
}

func TestSearchUsers_ServerRemapsQuery(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 200,
		`[{"name":"jsmith","key":"jsmith","displayName":"John Smith"}]`)

	users, err := service.SearchUsers(context.Background(), "john", 5)
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/2/user/search", recorded.Path)
	assert.Equal(t, "john", recorded.Query["username"])
	_, hasQuery := recorded.Query["query"]
	assert.False(t, hasQuery)

	require.Len(t, users, 1)
	assert.Equal(t, "jsmith", users[0].ID)
	assert.Equal(t, "John Smith", users[0].DisplayName)
}

func TestSearchUsers_DropsUnidentifiableEntries(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 200,
		`[{"accountId":"5b10ac8d82e05b22cc7d4ef5","displayName":"Jane"},{"displayName":"No ID"}]`)

	users, err := service.SearchUsers(context.Background(), "ja", 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "5b10ac8d82e05b22cc7d4ef5", users[0].ID)
}

func TestListAssignableUsers(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200,
		`[{"accountId":"5b10ac8d82e05b22cc7d4ef5","displayName":"Jane"}]`)

	users, err := service.ListAssignableUsers(context.Background(), "PROJ", 25)
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/user/assignable/search", recorded.Path)
	assert.Equal(t, "PROJ", recorded.Query["project"])
	assert.Len(t, users, 1)
}

func TestVerifyAuth(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200,
		`{"accountId":"5b10ac8d82e05b22cc7d4ef5","displayName":"Jane","emailAddress":"jane@example.com"}`)

	user, err := service.VerifyAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/myself", recorded.Path)
	assert.Equal(t, "Jane", user.DisplayName)
	assert.Equal(t, atlassian.DeploymentCloud, user.DeploymentType)
}

func TestListProjects_PagedAndBareShapes(t *testing.T) {
	t.Run("server bare array", func(t *testing.T) {
		service, _ := newTestService(t, atlassian.DeploymentServer, 200,
			`[{"key":"PROJ"},{"key":"OTHER"}]`)
		projects, err := service.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("cloud paginated envelope", func(t *testing.T) {
		service, _ := newTestService(t, atlassian.DeploymentCloud, 200,
			`{"values":[{"key":"PROJ"}],"total":1}`)
		projects, err := service.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})
}

func TestSearchFilters_ServerFallsBackToFavourites(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 200,
		`[{"id":"10100","name":"My Open Issues"},{"id":"10101","name":"Team Backlog"}]`)

	result, err := service.SearchFilters(context.Background(), "open", 0)
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/2/filter/favourite", recorded.Path)
	assert.Equal(t, true, result["favouritesOnly"])
	values := result["values"].([]map[string]interface{})
	require.Len(t, values, 1)
	assert.Equal(t, "My Open Issues", values[0]["name"])
}

func TestSearchFilters_CloudUsesSearchEndpoint(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200,
		`{"values":[{"id":"10100","name":"My Open Issues"}],"total":1}`)

	_, err := service.SearchFilters(context.Background(), "open", 10)
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/filter/search", recorded.Path)
	assert.Equal(t, "open", recorded.Query["filterName"])
}

func TestCreateDashboard_UnavailableOnServer(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 200, `{}`)

	_, err := service.CreateDashboard(context.Background(), "Team Dashboard", "", nil)
	require.Error(t, err)

	var apiErr *atlassian.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, atlassian.ErrorKindUnavailable, apiErr.Kind)
	assert.Empty(t, recorded.Method, "no request should reach the server")
}

func TestCreateSprint(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 201,
		`{"id":37,"name":"Sprint 9"}`)

	result, err := service.CreateSprint(context.Background(), "5", SprintInput{
		Name:      "Sprint 9",
		StartDate: "2026-09-01T09:00:00.000Z",
		Goal:      "Ship the bridge",
	})
	require.NoError(t, err)
	assert.Equal(t, "/rest/agile/1.0/sprint", recorded.Path)
	assert.Equal(t, float64(5), recorded.Body["originBoardId"])
	assert.Equal(t, "Ship the bridge", recorded.Body["goal"])
	assert.Equal(t, "Sprint 9", result["name"])
}

func TestStartSprint(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200,
		`{"id":37,"state":"active"}`)

	result, err := service.StartSprint(context.Background(), "37",
		"2026-09-01T09:00:00.000Z", "2026-09-15T17:00:00.000Z", "Ship the bridge")
	require.NoError(t, err)
	assert.Equal(t, "/rest/agile/1.0/sprint/37", recorded.Path)
	assert.Equal(t, "active", recorded.Body["state"])
	assert.Equal(t, "2026-09-01T09:00:00.000Z", recorded.Body["startDate"])
	assert.Equal(t, "Ship the bridge", recorded.Body["goal"])
	assert.Equal(t, "active", result["state"])
}

func TestStartSprint_RequiresDates(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentCloud, 200, `{}`)

	_, err := service.StartSprint(context.Background(), "37", "", "", "")
	require.Error(t, err)
	var apiErr *atlassian.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, atlassian.ErrorKindValidation, apiErr.Kind)
	assert.Empty(t, recorded.Method)
}

func TestCloseSprint(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 200,
		`{"id":37,"state":"closed"}`)

	_, err := service.CloseSprint(context.Background(), "37")
	require.NoError(t, err)
	assert.Equal(t, "/rest/agile/1.0/sprint/37", recorded.Path)
	assert.Equal(t, "closed", recorded.Body["state"])
}

func TestRankIssues_RequiresExactlyOneAnchor(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 204, ``)

	err := service.RankIssues(context.Background(), []string{"PROJ-1"}, "", "")
	assert.Error(t, err)

	err = service.RankIssues(context.Background(), []string{"PROJ-1"}, "PROJ-2", "PROJ-3")
	assert.Error(t, err)
}

func TestMoveIssuesToSprint(t *testing.T) {
	service, recorded := newTestService(t, atlassian.DeploymentServer, 204, ``)

	err := service.MoveIssuesToSprint(context.Background(), "37", []string{"PROJ-1", "PROJ-2"})
	require.NoError(t, err)
	assert.Equal(t, "/rest/agile/1.0/sprint/37/issue", recorded.Path)
	issues := recorded.Body["issues"].([]interface{})
	assert.Len(t, issues, 2)
}

func TestRemoteErrorSurfacesStatusAndBody(t *testing.T) {
	service, _ := newTestService(t, atlassian.DeploymentCloud, 404,
		`{"errorMessages":["Issue does not exist"]}`)

	_, err := service.GetIssue(context.Background(), "PROJ-404", nil)
	require.Error(t, err)

	var apiErr *atlassian.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, atlassian.ErrorKindRemote, apiErr.Kind)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Issue does not exist")
}
