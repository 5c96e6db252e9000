package api

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/models"
)

// HealthService probes the liveness and readiness endpoints. These live at
// the server root, outside the API prefix.
type HealthService struct {
	client *Client
}

func (s *HealthService) Health(ctx context.Context) (*models.HealthReport, error) {
	var out models.HealthReport
	if err := s.client.doURL(ctx, "GET", s.client.healthURL+"/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HealthService) Live(ctx context.Context) (string, error) {
	var out string
	if err := s.client.doURL(ctx, "GET", s.client.healthURL+"/health/live", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (s *HealthService) Ready(ctx context.Context) (*models.HealthReport, error) {
	var out models.HealthReport
	if err := s.client.doURL(ctx, "GET", s.client.healthURL+"/health/ready", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
