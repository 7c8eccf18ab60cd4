package jira

import (
	"context"
	"strconv"

	"github.com/ternarybob/pons/internal/atlassian"
)

// ListDashboards returns dashboards visible to the authenticated user.
func (s *Service) ListDashboards(ctx context.Context, maxResults int) (map[string]interface{}, error) {
	params := map[string]string{}
	if maxResults > 0 {
		params["maxResults"] = strconv.Itoa(maxResults)
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.all", nil, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// GetDashboard fetches a single dashboard.
func (s *Service) GetDashboard(ctx context.Context, dashboardID string) (map[string]interface{}, error) {
	if dashboardID == "" {
		return nil, atlassian.NewValidationError("dashboard id must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.get",
		map[string]string{"dashboardId": dashboardID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// CreateDashboard creates a dashboard. Cloud only: on Server/DC the
// compatibility map reports the operation as unavailable before any request
// is made.
func (s *Service) CreateDashboard(ctx context.Context, name, description string, sharePermissions []interface{}) (map[string]interface{}, error) {
	if name == "" {
		return nil, atlassian.NewValidationError("dashboard name must not be empty")
	}

	body := map[string]interface{}{"name": name}
	if description != "" {
		body["description"] = description
	}
	if sharePermissions != nil {
		body["sharePermissions"] = sharePermissions
	} else {
		body["sharePermissions"] = []interface{}{}
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.create", nil, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// UpdateDashboard updates a dashboard's name, description or share
// permissions. Cloud only.
func (s *Service) UpdateDashboard(ctx context.Context, dashboardID string, fields map[string]interface{}) (map[string]interface{}, error) {
	if dashboardID == "" {
		return nil, atlassian.NewValidationError("dashboard id must not be empty")
	}
	if len(fields) == 0 {
		return nil, atlassian.NewValidationError("no fields to update")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.update",
		map[string]string{"dashboardId": dashboardID}, nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// ListGadgets lists the gadgets on a dashboard. Cloud only.
func (s *Service) ListGadgets(ctx context.Context, dashboardID string) (map[string]interface{}, error) {
	if dashboardID == "" {
		return nil, atlassian.NewValidationError("dashboard id must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.gadgets",
		map[string]string{"dashboardId": dashboardID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// AddGadget adds a gadget to a dashboard. Cloud only.
func (s *Service) AddGadget(ctx context.Context, dashboardID string, gadget map[string]interface{}) (map[string]interface{}, error) {
	if dashboardID == "" {
		return nil, atlassian.NewValidationError("dashboard id must not be empty")
	}
	if len(gadget) == 0 {
		return nil, atlassian.NewValidationError("gadget definition must not be empty")
	}

	data, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.gadget.add",
		map[string]string{"dashboardId": dashboardID}, nil, gadget)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// RemoveGadget removes a gadget from a dashboard. Cloud only.
func (s *Service) RemoveGadget(ctx context.Context, dashboardID, gadgetID string) error {
	if dashboardID == "" || gadgetID == "" {
		return atlassian.NewValidationError("dashboard id and gadget id are required")
	}

	_, err := s.client.Call(ctx, atlassian.ServiceJira, "dashboards.gadget.remove",
		map[string]string{"dashboardId": dashboardID, "gadgetId": gadgetID}, nil, nil)
	return err
}
