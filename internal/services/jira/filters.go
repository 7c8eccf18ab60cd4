package jira

import (
	"context"
	"strconv"
	"strings"

	"github.com/ternarybob/pons/internal/atlassian"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SearchFilters searches saved filters by name. Server/DC has no filter
// search endpoint, so the compatibility map's declared alternative is used
// there: the favourite filter list, filtered client-side.
func (s *Service) SearchFilters(ctx context.Context, name string, maxResults int) (map[string]interface{}, error) {
	deployment := s.client.DeploymentType()

	if !atlassian.IsFeatureAvailable(atlassian.ServiceJira, "filters.search", deployment) {
		alternative := atlassian.AlternativeEndpoint(atlassian.ServiceJira, "filters.search", deployment)
		if alternative == "" {
			return nil, atlassian.NewUnavailableError(atlassian.ServiceJira, "filters.search", deployment)
		}

		s.logger.Debug().
			Str("endpoint", "filters.search").
			Str("alternative", alternative).
			Msg("Falling back to alternative endpoint")

		filters, err := s.ListFavouriteFilters(ctx)
		if err != nil {
			return nil, err
		}

		matched := make([]map[string]interface{}, 0, len(filters))
		for _, filter := range filters {
			if name == "" || containsFold(stringField(filter, "name"), name) {
				matched = append(matched, filter)
			}
		}
		// Shape the fallback like the Cloud search envelope so callers see
		// one format, with a marker that only favourites were searched.
		return map[string]interface{}{
			"values":         matched,
			"total":          len(matched),
			"favouritesOnly": true,
		}, nil
	}

	params := map[string]string{}
	if name != "" {
		params["filterName"] = name
	}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.search", nil, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// ListFavouriteFilters returns the authenticated user's favourite filters.
func (s *Service) ListFavouriteFilters(ctx context.Context) ([]map[string]interface{}, error) {
	data, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.favourite", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(data)
}

// CreateFilter creates a saved filter.
func (s *Service) CreateFilter(ctx context.Context, name, jql, description string, favourite bool) (map[string]interface{}, error) {
	if name == "" || jql == "" {
		return nil, atlassian.NewValidationError("filter name and jql are required")
	}

	body := map[string]interface{}{
		"name":      name,
		"jql":       jql,
		"favourite": favourite,
	}
	if description != "" {
		body["description"] = description
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.create", nil, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetFilter fetches a single filter.
func (s *Service) GetFilter(ctx context.Context, filterID string) (map[string]interface{}, error) {
	if filterID == "" {
		return nil, atlassian.NewValidationError("filter id must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.get",
		map[string]string{"filterId": filterID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// UpdateFilter updates a filter's name, jql or description.
func (s *Service) UpdateFilter(ctx context.Context, filterID string, fields map[string]interface{}) (map[string]interface{}, error) {
	if filterID == "" {
		return nil, atlassian.NewValidationError("filter id must not be empty")
	}
	if len(fields) == 0 {
		return nil, atlassian.NewValidationError("no fields to update")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.update",
		map[string]string{"filterId": filterID}, nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// DeleteFilter deletes a filter.
func (s *Service) DeleteFilter(ctx context.Context, filterID string) error {
	if filterID == "" {
		return atlassian.NewValidationError("filter id must not be empty")
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "filters.delete",
		map[string]string{"filterId": filterID}, nil, nil)
	return err
}
