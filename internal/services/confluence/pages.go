package confluence

import (
	"context"
	"strconv"

	"github.com/ternarybob/pons/internal/atlassian"
)

// ListPages returns pages across the instance. Server/DC uses the generic
// content endpoint, so the type filter is pinned to page there.
func (s *Service) ListPages(ctx context.Context, limit int) (map[string]interface{}, error) {
	params := map[string]string{}
	if !s.isCloud() {
		params["type"] = "page"
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.all", nil, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// Page is the deployment-independent view of a Confluence page. Markdown
// holds the storage body converted for LLM consumption; the conversion is
// lossy and one-directional.
type Page struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	SpaceID  string                 `json:"spaceId,omitempty"`
	Version  int                    `json:"version"`
	Markdown string                 `json:"markdown,omitempty"`
	Raw      map[string]interface{} `json:"-"`
}

// GetPage fetches a page with its storage body and converts the body to
// markdown.
func (s *Service) GetPage(ctx context.Context, pageID string) (*Page, error) {
	if pageID == "" {
		return nil, atlassian.NewValidationError("page id must not be empty")
	}

	params := map[string]string{}
	if s.isCloud() {
		params["body-format"] = "storage"
	} else {
		params["expand"] = "body.storage,version,space"
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.get",
		map[string]string{"pageId": pageID}, params, nil)
	if err != nil {
		return nil, err
	}

	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return s.pageFromResponse(raw), nil
}

// pageFromResponse reduces the two response shapes to one Page. Cloud nests
// the body under body.storage.value with a top-level spaceId and
// version.number; v1 wraps the same fields differently.
func (s *Service) pageFromResponse(raw map[string]interface{}) *Page {
	page := &Page{
		ID:    stringField(raw, "id"),
		Title: stringField(raw, "title"),
		Raw:   raw,
	}

	if id, ok := raw["id"].(float64); ok && page.ID == "" {
		page.ID = strconv.FormatFloat(id, 'f', -1, 64)
	}

	if s.isCloud() {
		page.SpaceID = stringField(raw, "spaceId")
	} else if key, ok := nested(raw, "space", "key").(string); ok {
		page.SpaceID = key
	}

	if number, ok := nested(raw, "version", "number").(float64); ok {
		page.Version = int(number)
	}

	if body, ok := nested(raw, "body", "storage", "value").(string); ok {
		page.Markdown = s.htmlToMarkdown(body)
	}

	return page
}

// PageInput carries the fields for creating a page. Body is Confluence
// storage-format XHTML.
type PageInput struct {
	SpaceIDOrKey string
	Title        string
	Body         string
	ParentID     string
}

// CreatePage creates a page in a space.
func (s *Service) CreatePage(ctx context.Context, input PageInput) (map[string]interface{}, error) {
	if input.SpaceIDOrKey == "" || input.Title == "" {
		return nil, atlassian.NewValidationError("space identifier and title are required")
	}

	var body map[string]interface{}
	if s.isCloud() {
		body = map[string]interface{}{
			"spaceId": input.SpaceIDOrKey,
			"status":  "current",
			"title":   input.Title,
			"body": map[string]interface{}{
				"representation": "storage",
				"value":          input.Body,
			},
		}
		if input.ParentID != "" {
			body["parentId"] = input.ParentID
		}
	} else {
		body = map[string]interface{}{
			"type":  "page",
			"title": input.Title,
			"space": map[string]interface{}{"key": input.SpaceIDOrKey},
			"body": map[string]interface{}{
				"storage": map[string]interface{}{
					"value":          input.Body,
					"representation": "storage",
				},
			},
		}
		if input.ParentID != "" {
			body["ancestors"] = []interface{}{
				map[string]interface{}{"id": input.ParentID},
			}
		}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.create", nil, nil, body)
	if err != nil {
		return nil, err
	}

	result, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("space", input.SpaceIDOrKey).
		Str("title", input.Title).
		Msg("Created Confluence page")

	return result, nil
}

// UpdatePage replaces a page's title and body. The version number must be
// the next version (current + 1); both APIs reject stale versions, which
// keeps concurrent edits from silently overwriting each other.
func (s *Service) UpdatePage(ctx context.Context, pageID, title, body string, version int) (map[string]interface{}, error) {
	if pageID == "" || title == "" {
		return nil, atlassian.NewValidationError("page id and title are required")
	}
	if version < 1 {
		return nil, atlassian.NewValidationError("version must be a positive number")
	}

	var payload map[string]interface{}
	if s.isCloud() {
		payload = map[string]interface{}{
			"id":     pageID,
			"status": "current",
			"title":  title,
			"body": map[string]interface{}{
				"representation": "storage",
				"value":          body,
			},
			"version": map[string]interface{}{"number": version},
		}
	} else {
		payload = map[string]interface{}{
			"type":    "page",
			"title":   title,
			"version": map[string]interface{}{"number": version},
			"body": map[string]interface{}{
				"storage": map[string]interface{}{
					"value":          body,
					"representation": "storage",
				},
			},
		}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.update",
		map[string]string{"pageId": pageID}, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// ListChildPages returns the direct child pages of a page.
func (s *Service) ListChildPages(ctx context.Context, pageID string, limit int) (map[string]interface{}, error) {
	if pageID == "" {
		return nil, atlassian.NewValidationError("page id must not be empty")
	}

	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.children",
		map[string]string{"pageId": pageID}, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// AddComment adds a footer comment to a page. Cloud takes the page id in
// the request body, v1 in the path.
func (s *Service) AddComment(ctx context.Context, pageID, comment string) (map[string]interface{}, error) {
	if pageID == "" || comment == "" {
		return nil, atlassian.NewValidationError("page id and comment are required")
	}

	var pathParams map[string]string
	var body map[string]interface{}
	if s.isCloud() {
		body = map[string]interface{}{
			"pageId": pageID,
			"body": map[string]interface{}{
				"representation": "storage",
				"value":          comment,
			},
		}
	} else {
		pathParams = map[string]string{"pageId": pageID}
		body = map[string]interface{}{
			"type": "comment",
			"container": map[string]interface{}{
				"id":   pageID,
				"type": "page",
			},
			"body": map[string]interface{}{
				"storage": map[string]interface{}{
					"value":          comment,
					"representation": "storage",
				},
			},
		}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.comment",
		pathParams, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// AddLabels attaches labels to a page. The label API is still v1 on both
// deployment types.
func (s *Service) AddLabels(ctx context.Context, pageID string, labels []string) error {
	if pageID == "" {
		return atlassian.NewValidationError("page id must not be empty")
	}
	if len(labels) == 0 {
		return atlassian.NewValidationError("no labels to add")
	}

	payload := make([]interface{}, 0, len(labels))
	for _, label := range labels {
		payload = append(payload, map[string]interface{}{
			"prefix": "global",
			"name":   label,
		})
	}

	_, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.labels",
		map[string]string{"pageId": pageID}, nil, payload)
	return err
}

// RemoveLabel removes one label from a page.
func (s *Service) RemoveLabel(ctx context.Context, pageID, label string) error {
	if pageID == "" || label == "" {
		return atlassian.NewValidationError("page id and label are required")
	}

	_, err := s.client.Call(ctx, atlassian.ServiceConfluence, "pages.label.remove",
		map[string]string{"pageId": pageID, "labelName": label}, nil, nil)
	return err
}
