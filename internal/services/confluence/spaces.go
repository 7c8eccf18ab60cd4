package confluence

import (
	"context"
	"strconv"

	"github.com/ternarybob/pons/internal/atlassian"
)

// ListSpaces returns spaces visible to the authenticated user. Both API
// versions wrap the list in a results field.
func (s *Service) ListSpaces(ctx context.Context, limit int) (map[string]interface{}, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "spaces.all", nil, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetSpace fetches a single space. Cloud addresses spaces by numeric id,
// Server/DC by key; the identifier is passed through under the parameter
// name the target deployment expects.
func (s *Service) GetSpace(ctx context.Context, spaceIDOrKey string) (map[string]interface{}, error) {
	if spaceIDOrKey == "" {
		return nil, atlassian.NewValidationError("space identifier must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "spaces.get",
		s.spaceParams(spaceIDOrKey), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// ListSpacePages returns the pages in a space.
func (s *Service) ListSpacePages(ctx context.Context, spaceIDOrKey string, limit int) (map[string]interface{}, error) {
	if spaceIDOrKey == "" {
		return nil, atlassian.NewValidationError("space identifier must not be empty")
	}

	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceConfluence, "spaces.pages",
		s.spaceParams(spaceIDOrKey), params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

func (s *Service) spaceParams(spaceIDOrKey string) map[string]string {
	if s.isCloud() {
		return map[string]string{"spaceId": spaceIDOrKey}
	}
	return map[string]string{"spaceKey": spaceIDOrKey}
}
