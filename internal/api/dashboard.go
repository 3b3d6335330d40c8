package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

const dashboardPath = "/admin/dashboard/summary"

func (c *Client) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	var s models.DashboardSummary
	if err := c.call(ctx, http.MethodGet, dashboardPath, nil, &s); err != nil {
		return s, fmt.Errorf("internal/api/Dashboard: %w", err)
	}

	return s, nil
}
