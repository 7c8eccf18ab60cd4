package atlassian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// Client issues authenticated REST calls against one Atlassian instance.
// Endpoint paths come from the compatibility map, headers from the auth
// strategy. The client adds no retry or backoff: remote and network failures
// are reported to the caller as-is.
type Client struct {
	httpClient *http.Client
	config     *Config
	strategy   AuthStrategy
	userAgent  string
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// NewClient validates the config's credentials and builds a client.
func NewClient(config *Config, userAgent string, logger arbor.ILogger) (*Client, error) {
	strategy, err := NewValidatedAuthStrategy(config)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("baseUrl", config.BaseURL).
		Str("deployment", string(config.DeploymentType)).
		Str("authType", strategy.AuthType()).
		Msg("Atlassian client initialized")

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     config,
		strategy:   strategy,
		userAgent:  userAgent,
		// Atlassian Cloud throttles aggressively; stay well under its budget.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:  logger,
	}, nil
}

// Config returns the immutable configuration this client was built from.
func (c *Client) Config() *Config {
	return c.config
}

// DeploymentType returns the deployment type of the target instance.
func (c *Client) DeploymentType() DeploymentType {
	return c.config.DeploymentType
}

// AuthType returns the diagnostic label of the active auth strategy.
func (c *Client) AuthType() string {
	return c.strategy.AuthType()
}

// Call resolves an operation through the compatibility map and executes it.
// Query parameters are remapped for the target deployment type before the
// request is built; the body, when non-nil, is JSON-encoded.
func (c *Client) Call(ctx context.Context, service Service, endpoint string, pathParams map[string]string, query map[string]string, body interface{}) ([]byte, error) {
	config := GetEndpointConfig(service, endpoint, c.config.DeploymentType)
	if config == nil {
		return nil, NewValidationError("unknown endpoint: %s.%s", service, endpoint)
	}

	requestURL, err := BuildURL(c.config.BaseURL, service, endpoint, c.config.DeploymentType, pathParams)
	if err != nil {
		return nil, err
	}

	mapped := MapQueryParameters(service, endpoint, c.config.DeploymentType, query)
	return c.Do(ctx, config.Method, requestURL, mapped, body)
}

// Do executes a single HTTP request with auth headers attached. Non-2xx
// responses become remote errors carrying the status code and body verbatim;
// transport failures become network errors.
func (c *Client) Do(ctx context.Context, method, requestURL string, query map[string]string, body interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewNetworkError(err)
	}

	if len(query) > 0 {
		values := url.Values{}
		for key, value := range query {
			values.Set(key, value)
		}
		separator := "?"
		if strings.Contains(requestURL, "?") {
			separator = "&"
		}
		requestURL += separator + values.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, NewValidationError("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, NewValidationError("failed to build request: %v", err)
	}

	for key, value := range c.strategy.AuthHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.userAgent)

	requestID := uuid.NewString()[:8]
	c.logger.Debug().
		Str("requestId", requestID).
		Str("method", method).
		Str("url", requestURL).
		Msg("Calling Atlassian API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().
			Str("requestId", requestID).
			Str("url", requestURL).
			Err(err).
			Msg("Atlassian API request failed")
		return nil, NewNetworkError(err)
	}
	defer resp.Body.Close()

	responseBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("requestId", requestID).
			Str("url", requestURL).
			Int("status", resp.StatusCode).
			Msg("Atlassian API returned an error")
		return nil, NewRemoteError(resp.StatusCode, string(responseBody))
	}

	if readErr != nil {
		return nil, NewNetworkError(fmt.Errorf("failed to read response body: %w", readErr))
	}

	return responseBody, nil
}
