package atlassian

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestClient(t *testing.T, baseURL string, deployment DeploymentType) *Client {
	t.Helper()

	config := &Config{
		BaseURL:        baseURL,
		DeploymentType: deployment,
		APIToken:       "pat123",
	}
	if deployment == DeploymentCloud {
		config.Email = "user@example.com"
		config.APIToken = "token123"
	}

	client, err := NewClient(config, "pons/test", arbor.NewLogger().WithLevelFromString("error"))
	require.NoError(t, err)
	return client
}

func TestClientSendsAuthAndAgentHeaders(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, DeploymentServer)
	_, err := client.Do(context.Background(), "GET", srv.URL+"/rest/api/2/myself", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer pat123", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "pons/test", gotHeaders.Get("User-Agent"))
}

func TestClientRemoteErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["Issue does not exist"]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, DeploymentServer)
	_, err := client.Do(context.Background(), "GET", srv.URL+"/rest/api/2/issue/NOPE-1", nil, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorKindRemote, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Issue does not exist")
	assert.Contains(t, err.Error(), "Issue does not exist")
}

func TestClientNetworkError(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", DeploymentServer)
	_, err := client.Do(context.Background(), "GET", "http://127.0.0.1:1/rest/api/2/myself", nil, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorKindNetwork, apiErr.Kind)
}

func TestClientCallResolvesEndpointAndRemapsQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, DeploymentServer)
	_, err := client.Call(context.Background(), ServiceJira, "users.search", nil,
		map[string]string{"query": "john"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/2/user/search", gotPath)
	assert.Equal(t, "username=john", gotQuery)
}

func TestClientCallSubstitutesPathParams(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, DeploymentServer)
	_, err := client.Call(context.Background(), ServiceJira, "issues.get",
		map[string]string{"issueIdOrKey": "PROJ-123"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/2/issue/PROJ-123", gotPath)
}

func TestClientCallUnavailableEndpoint(t *testing.T) {
	client := newTestClient(t, "https://jira.mycompany.com", DeploymentServer)
	_, err := client.Call(context.Background(), ServiceJira, "dashboards.create", nil, nil,
		map[string]string{"name": "board"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorKindUnavailable, apiErr.Kind)
}

func TestClientEncodesJSONBody(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"10000","key":"PROJ-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, DeploymentCloud)
	body := map[string]interface{}{"fields": map[string]interface{}{"summary": "New issue"}}
	_, err := client.Call(context.Background(), ServiceJira, "issues.create", nil, nil, body)
	require.NoError(t, err)

	fields, ok := gotBody["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "New issue", fields["summary"])
}
