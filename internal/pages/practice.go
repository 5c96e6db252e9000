package pages

import (
	"context"
	"sort"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/models"
)

// PracticePage shows a lesson's practice tasks and the student's submission
// history, newest first.
type PracticePage struct {
	client    *api.Client
	toasts    Notifier
	validator *forms.Validator
	lessonID  string

	tasks       []models.PracticeTask
	submissions map[string][]models.PracticeSubmission
}

// NewPracticePage builds the page for one lesson.
func NewPracticePage(client *api.Client, toasts Notifier, lessonID string) *PracticePage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &PracticePage{
		client:      client,
		toasts:      toasts,
		validator:   forms.NewValidator(),
		lessonID:    lessonID,
		submissions: map[string][]models.PracticeSubmission{},
	}
}

// Load fetches the tasks and each task's submission history.
func (p *PracticePage) Load(ctx context.Context) error {
	tasks, err := p.client.Practice.ByLesson(ctx, p.lessonID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load practice tasks"))
		return err
	}
	p.tasks = tasks

	for _, task := range tasks {
		subs, err := p.client.Practice.MySubmissions(ctx, task.ID)
		if err != nil {
			p.toasts.Error(errMessage(err, "Failed to load submissions"))
			return err
		}
		p.submissions[task.ID] = newestFirst(subs)
	}
	return nil
}

// Tasks returns the loaded tasks.
func (p *PracticePage) Tasks() []models.PracticeTask { return p.tasks }

// Submissions returns a task's history, newest first.
func (p *PracticePage) Submissions(taskID string) []models.PracticeSubmission {
	return p.submissions[taskID]
}

// Submit validates and sends one submission, then prepends it to the
// history.
func (p *PracticePage) Submit(ctx context.Context, taskID, content string) (*models.PracticeSubmission, error) {
	var task *models.PracticeTask
	for i := range p.tasks {
		if p.tasks[i].ID == taskID {
			task = &p.tasks[i]
		}
	}

	form := forms.SubmissionForm{Content: content}
	if task != nil {
		form.Type = task.SubmissionType
	}
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}

	sub, err := p.client.Practice.Submit(ctx, taskID, api.SubmitPracticeRequest{Content: content})
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to submit"))
		return nil, err
	}
	p.submissions[taskID] = append([]models.PracticeSubmission{*sub}, p.submissions[taskID]...)
	p.toasts.Success("Submission received")
	return sub, nil
}

func newestFirst(subs []models.PracticeSubmission) []models.PracticeSubmission {
	sorted := make([]models.PracticeSubmission, len(subs))
	copy(sorted, subs)
	// Timestamps are RFC 3339, so string order is chronological.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt > sorted[j].SubmittedAt
	})
	return sorted
}
