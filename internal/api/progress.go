package api

import (
	"context"
	"fmt"

	"github.com/PhucLe22/lms-client/internal/models"
)

// ProgressService wraps the lesson and course progress endpoints.
type ProgressService struct {
	client *Client
}

func (s *ProgressService) CompleteLesson(ctx context.Context, lessonID string) (*models.LessonProgress, error) {
	var out models.LessonProgress
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/lessons/%s/complete", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgressService) UncompleteLesson(ctx context.Context, lessonID string) (*models.LessonProgress, error) {
	var out models.LessonProgress
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/lessons/%s/uncomplete", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgressService) CourseProgress(ctx context.Context, courseID string) (*models.CourseProgress, error) {
	var out models.CourseProgress
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/courses/%s/progress", courseID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWatchProgress pushes the tracked video watch percentage. Callers
// throttle this to 10% boundary crossings.
func (s *ProgressService) UpdateWatchProgress(ctx context.Context, lessonID string, watchPercent int) (*models.LessonProgress, error) {
	body := map[string]int{"watchPercent": watchPercent}
	var out models.LessonProgress
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/lessons/%s/watch-progress", lessonID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
