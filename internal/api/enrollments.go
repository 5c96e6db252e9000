package api

import (
	"context"
	"fmt"

	"github.com/PhucLe22/lms-client/internal/models"
)

// EnrollmentsService wraps the enrollment endpoints for the current student.
type EnrollmentsService struct {
	client *Client
}

func (s *EnrollmentsService) Enroll(ctx context.Context, courseID string) (*models.Enrollment, error) {
	var out models.Enrollment
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/enrollments/%s", courseID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unenroll drops the course. Progress is discarded server-side.
func (s *EnrollmentsService) Unenroll(ctx context.Context, courseID string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/enrollments/%s", courseID), nil, nil)
}

func (s *EnrollmentsService) MyCourses(ctx context.Context) ([]models.Enrollment, error) {
	var out []models.Enrollment
	if err := s.client.do(ctx, "GET", "/enrollments/my-courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
