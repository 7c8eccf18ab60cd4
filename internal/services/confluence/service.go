// Package confluence exposes deployment-aware Confluence operations. Cloud
// talks to the v2 API under /api/v2, Server/DC to the v1 API under
// /rest/api; the differences in identifiers and payload shapes are absorbed
// here so the MCP layer sees one surface.
package confluence

import (
	"encoding/json"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pons/internal/atlassian"
)

type Service struct {
	client *atlassian.Client
	logger arbor.ILogger
}

func NewService(client *atlassian.Client, logger arbor.ILogger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Client returns the underlying Atlassian client.
func (s *Service) Client() *atlassian.Client {
	return s.client
}

// DeploymentType returns the deployment type of the connected instance.
func (s *Service) DeploymentType() atlassian.DeploymentType {
	return s.client.DeploymentType()
}

// isCloud reports whether this service targets the v2 Cloud API.
func (s *Service) isCloud() bool {
	return s.client.DeploymentType() == atlassian.DeploymentCloud
}

// htmlToMarkdown converts Confluence storage-format HTML to markdown. A
// failed conversion falls back to the raw HTML rather than losing content.
func (s *Service) htmlToMarkdown(html string) string {
	if html == "" {
		return ""
	}

	converter := md.NewConverter(s.client.Config().BaseURL, true, nil)
	converted, err := converter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, returning raw content")
		return html
	}
	if strings.TrimSpace(converted) == "" {
		return html
	}
	return converted
}

func decodeObject(data []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

func stringField(m map[string]interface{}, key string) string {
	value, _ := m[key].(string)
	return value
}

// nested walks a chain of object keys, returning nil when any hop is
// missing or not an object.
func nested(m map[string]interface{}, keys ...string) interface{} {
	var current interface{} = m
	for _, key := range keys {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = obj[key]
	}
	return current
}
