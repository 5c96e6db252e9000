package api

import (
	"context"
	"fmt"

	"github.com/PhucLe22/lms-client/internal/models"
)

// QuizService wraps the quiz endpoints.
type QuizService struct {
	client *Client
}

// QuizRequest is the admin create/update payload for one question.
type QuizRequest struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
}

// QuizAnswer is one selected option in a submission.
type QuizAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// QuizSubmitRequest carries all selected answers for a lesson quiz.
type QuizSubmitRequest struct {
	Answers []QuizAnswer `json:"answers"`
}

// ByLesson returns the questions without correct answers.
func (s *QuizService) ByLesson(ctx context.Context, lessonID string) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/lessons/%s/quiz", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByLessonAdmin returns the questions including correct answers.
func (s *QuizService) ByLessonAdmin(ctx context.Context, lessonID string) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/lessons/%s/quiz/admin", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *QuizService) Create(ctx context.Context, lessonID string, req QuizRequest) (*models.QuizQuestion, error) {
	var out models.QuizQuestion
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/lessons/%s/quiz", lessonID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *QuizService) Update(ctx context.Context, quizID string, req QuizRequest) (*models.QuizQuestion, error) {
	var out models.QuizQuestion
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/quiz/%s", quizID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *QuizService) Delete(ctx context.Context, quizID string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/quiz/%s", quizID), nil, nil)
}

func (s *QuizService) Submit(ctx context.Context, lessonID string, req QuizSubmitRequest) (*models.QuizResult, error) {
	var out models.QuizResult
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/quiz/submit/%s", lessonID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Result returns the stored quiz result for the lesson. A not-found error
// means the student has not completed the quiz yet.
func (s *QuizService) Result(ctx context.Context, lessonID string) (*models.QuizResult, error) {
	var out models.QuizResult
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/quiz/result/%s", lessonID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
