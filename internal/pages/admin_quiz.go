package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/models"
)

// AdminQuizPage manages one lesson's quiz questions. The admin view loads
// questions with their correct answers.
type AdminQuizPage struct {
	quiz      *api.QuizService
	toasts    Notifier
	validator *forms.Validator
	lessonID  string

	questions []models.QuizQuestion
}

// NewAdminQuizPage builds the page for one lesson.
func NewAdminQuizPage(quiz *api.QuizService, toasts Notifier, lessonID string) *AdminQuizPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &AdminQuizPage{
		quiz:      quiz,
		toasts:    toasts,
		validator: forms.NewValidator(),
		lessonID:  lessonID,
	}
}

// Load fetches the questions including correct answers.
func (p *AdminQuizPage) Load(ctx context.Context) error {
	questions, err := p.quiz.ByLessonAdmin(ctx, p.lessonID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load quiz questions"))
		return err
	}
	p.questions = questions
	return nil
}

// Questions returns the loaded questions.
func (p *AdminQuizPage) Questions() []models.QuizQuestion { return p.questions }

// Create validates and adds a question to the lesson.
func (p *AdminQuizPage) Create(ctx context.Context, form forms.QuizForm) (*models.QuizQuestion, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	question, err := p.quiz.Create(ctx, p.lessonID, quizRequest(form))
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to create question"))
		return nil, err
	}
	p.questions = append(p.questions, *question)
	p.toasts.Success("Question created")
	return question, nil
}

// Update validates and saves a question, patching the loaded row.
func (p *AdminQuizPage) Update(ctx context.Context, id string, form forms.QuizForm) (*models.QuizQuestion, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	question, err := p.quiz.Update(ctx, id, quizRequest(form))
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to update question"))
		return nil, err
	}
	for i := range p.questions {
		if p.questions[i].ID == id {
			p.questions[i] = *question
		}
	}
	p.toasts.Success("Question updated")
	return question, nil
}

// Delete removes a question and drops the row.
func (p *AdminQuizPage) Delete(ctx context.Context, id string) error {
	if err := p.quiz.Delete(ctx, id); err != nil {
		p.toasts.Error(errMessage(err, "Failed to delete question"))
		return err
	}
	kept := p.questions[:0]
	for _, q := range p.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	p.questions = kept
	p.toasts.Success("Question deleted")
	return nil
}

func quizRequest(form forms.QuizForm) api.QuizRequest {
	return api.QuizRequest{
		Question:      form.Question,
		OptionA:       form.OptionA,
		OptionB:       form.OptionB,
		OptionC:       form.OptionC,
		OptionD:       form.OptionD,
		CorrectAnswer: form.CorrectAnswer,
	}
}
