package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/models"
)

// AdminPracticePage manages one lesson's practice tasks and reviews every
// student's submissions.
type AdminPracticePage struct {
	practice  *api.PracticeService
	toasts    Notifier
	validator *forms.Validator
	lessonID  string

	tasks []models.PracticeTask
}

// NewAdminPracticePage builds the page for one lesson.
func NewAdminPracticePage(practice *api.PracticeService, toasts Notifier, lessonID string) *AdminPracticePage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &AdminPracticePage{
		practice:  practice,
		toasts:    toasts,
		validator: forms.NewValidator(),
		lessonID:  lessonID,
	}
}

// Load fetches the lesson's tasks.
func (p *AdminPracticePage) Load(ctx context.Context) error {
	tasks, err := p.practice.ByLesson(ctx, p.lessonID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load practice tasks"))
		return err
	}
	p.tasks = tasks
	return nil
}

// Tasks returns the loaded tasks.
func (p *AdminPracticePage) Tasks() []models.PracticeTask { return p.tasks }

// Create validates and adds a task to the lesson.
func (p *AdminPracticePage) Create(ctx context.Context, form forms.PracticeForm) (*models.PracticeTask, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	task, err := p.practice.Create(ctx, p.lessonID, practiceRequest(form))
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to create task"))
		return nil, err
	}
	p.tasks = append(p.tasks, *task)
	p.toasts.Success("Task created")
	return task, nil
}

// Update validates and saves a task, patching the loaded row.
func (p *AdminPracticePage) Update(ctx context.Context, id string, form forms.PracticeForm) (*models.PracticeTask, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	task, err := p.practice.Update(ctx, id, practiceRequest(form))
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to update task"))
		return nil, err
	}
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks[i] = *task
		}
	}
	p.toasts.Success("Task updated")
	return task, nil
}

// Delete removes a task and drops the row.
func (p *AdminPracticePage) Delete(ctx context.Context, id string) error {
	if err := p.practice.Delete(ctx, id); err != nil {
		p.toasts.Error(errMessage(err, "Failed to delete task"))
		return err
	}
	kept := p.tasks[:0]
	for _, t := range p.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	p.tasks = kept
	p.toasts.Success("Task deleted")
	return nil
}

// Submissions lists every student's submissions for a task, newest first.
func (p *AdminPracticePage) Submissions(ctx context.Context, taskID string) ([]models.PracticeSubmission, error) {
	subs, err := p.practice.Submissions(ctx, taskID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load submissions"))
		return nil, err
	}
	return newestFirst(subs), nil
}

func practiceRequest(form forms.PracticeForm) api.PracticeTaskRequest {
	return api.PracticeTaskRequest{
		Title:          form.Title,
		Description:    form.Description,
		SubmissionType: form.SubmissionType,
	}
}
