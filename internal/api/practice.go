package api

import (
	"context"
	"fmt"

	"github.com/PhucLe22/lms-client/internal/models"
)

// PracticeService wraps the practice task endpoints.
type PracticeService struct {
	client *Client
}

// PracticeTaskRequest is the admin create/update payload.
type PracticeTaskRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	SubmissionType models.SubmissionType `json:"submissionType"`
}

// SubmitPracticeRequest carries the student's submission content.
type SubmitPracticeRequest struct {
	Content string `json:"content"`
}

func (s *PracticeService) ByLesson(ctx context.Context, lessonID string) ([]models.PracticeTask, error) {
	var out []models.PracticeTask
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/lessons/%s/practice", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PracticeService) Create(ctx context.Context, lessonID string, req PracticeTaskRequest) (*models.PracticeTask, error) {
	var out models.PracticeTask
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/lessons/%s/practice", lessonID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PracticeService) Update(ctx context.Context, id string, req PracticeTaskRequest) (*models.PracticeTask, error) {
	var out models.PracticeTask
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/practice/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PracticeService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/practice/%s", id), nil, nil)
}

func (s *PracticeService) Submit(ctx context.Context, id string, req SubmitPracticeRequest) (*models.PracticeSubmission, error) {
	var out models.PracticeSubmission
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/practice/%s/submit", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MySubmissions lists the current student's history, newest first.
func (s *PracticeService) MySubmissions(ctx context.Context, id string) ([]models.PracticeSubmission, error) {
	var out []models.PracticeSubmission
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/practice/%s/my-submissions", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Submissions lists all student submissions for a task (admin).
func (s *PracticeService) Submissions(ctx context.Context, id string) ([]models.PracticeSubmission, error) {
	var out []models.PracticeSubmission
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/practice/%s/submissions", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
