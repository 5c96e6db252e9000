package api

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/models"
)

// DashboardService wraps the aggregate stats endpoint.
type DashboardService struct {
	client *Client
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := s.client.do(ctx, "GET", "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
