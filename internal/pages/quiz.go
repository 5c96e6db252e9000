package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/models"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// QuizPage runs one lesson's quiz: load questions, collect answers, submit,
// show the result. A prior result short-circuits into review mode.
type QuizPage struct {
	client   *api.Client
	toasts   Notifier
	lessonID string

	questions []models.QuizQuestion
	answers   map[string]string
	result    *models.QuizResult
}

// NewQuizPage builds the page for one lesson.
func NewQuizPage(client *api.Client, toasts Notifier, lessonID string) *QuizPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &QuizPage{
		client:   client,
		toasts:   toasts,
		lessonID: lessonID,
		answers:  map[string]string{},
	}
}

// Load fetches questions and any existing result. No result is the normal
// first-attempt case, not an error.
func (p *QuizPage) Load(ctx context.Context) error {
	questions, err := p.client.Quiz.ByLesson(ctx, p.lessonID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load quiz"))
		return err
	}
	p.questions = questions

	result, err := p.client.Quiz.Result(ctx, p.lessonID)
	if err == nil {
		p.result = result
	} else if !apperrors.IsNotFound(err) {
		p.toasts.Error(errMessage(err, "Failed to load quiz result"))
		return err
	}
	return nil
}

// Questions returns the loaded questions.
func (p *QuizPage) Questions() []models.QuizQuestion { return p.questions }

// Result returns the graded result, nil before submission.
func (p *QuizPage) Result() *models.QuizResult { return p.result }

// Taken reports whether a graded result already exists.
func (p *QuizPage) Taken() bool { return p.result != nil }

// Answer records the selected option for a question.
func (p *QuizPage) Answer(questionID, option string) {
	p.answers[questionID] = option
}

// Answered reports how many questions have a selection.
func (p *QuizPage) Answered() int { return len(p.answers) }

// Submit sends all answers for grading. Every question must be answered.
func (p *QuizPage) Submit(ctx context.Context) (*models.QuizResult, error) {
	if len(p.answers) < len(p.questions) {
		err := apperrors.Clone(apperrors.ErrValidation, "answer all questions before submitting")
		p.toasts.Error(err.Message)
		return nil, err
	}
	req := api.QuizSubmitRequest{}
	for _, q := range p.questions {
		req.Answers = append(req.Answers, api.QuizAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: p.answers[q.ID],
		})
	}
	result, err := p.client.Quiz.Submit(ctx, p.lessonID, req)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to submit quiz"))
		return nil, err
	}
	p.result = result
	p.toasts.Success("Quiz submitted")
	return result, nil
}
