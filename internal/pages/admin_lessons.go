package pages

import (
	"context"
	"errors"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/models"
	"github.com/PhucLe22/lms-client/internal/study"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// AdminLessonsPage manages one course's lessons: CRUD plus adjacent
// reordering. The list is kept in order-index order.
type AdminLessonsPage struct {
	client    *api.Client
	toasts    Notifier
	validator *forms.Validator
	courseID  string

	lessons []models.Lesson
}

// NewAdminLessonsPage builds the page for one course.
func NewAdminLessonsPage(client *api.Client, toasts Notifier, courseID string) *AdminLessonsPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &AdminLessonsPage{
		client:    client,
		toasts:    toasts,
		validator: forms.NewValidator(),
		courseID:  courseID,
	}
}

// Load fetches the lessons from the server.
func (p *AdminLessonsPage) Load(ctx context.Context) error {
	lessons, err := p.client.Lessons.ListByCourse(ctx, p.courseID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load lessons"))
		return err
	}
	p.lessons = study.SortLessons(lessons)
	return nil
}

// Lessons returns the lessons in order-index order.
func (p *AdminLessonsPage) Lessons() []models.Lesson { return p.lessons }

// Create validates and adds a lesson at the end of the course.
func (p *AdminLessonsPage) Create(ctx context.Context, form forms.LessonForm) (*models.Lesson, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	lesson, err := p.client.Lessons.Create(ctx, p.courseID, api.LessonRequest{
		Title:       form.Title,
		Content:     form.Content,
		OrderIndex:  form.OrderIndex,
		VideoURL:    form.VideoURL,
		DocumentURL: form.DocumentURL,
	})
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to create lesson"))
		return nil, err
	}
	p.lessons = study.SortLessons(append(p.lessons, *lesson))
	p.toasts.Success("Lesson created")
	return lesson, nil
}

// Update validates and saves a lesson, patching the loaded row.
func (p *AdminLessonsPage) Update(ctx context.Context, id string, form forms.LessonForm) (*models.Lesson, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	lesson, err := p.client.Lessons.Update(ctx, id, api.LessonRequest{
		Title:       form.Title,
		Content:     form.Content,
		OrderIndex:  form.OrderIndex,
		VideoURL:    form.VideoURL,
		DocumentURL: form.DocumentURL,
	})
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to update lesson"))
		return nil, err
	}
	for i := range p.lessons {
		if p.lessons[i].ID == id {
			p.lessons[i] = *lesson
		}
	}
	p.lessons = study.SortLessons(p.lessons)
	p.toasts.Success("Lesson updated")
	return lesson, nil
}

// Delete removes a lesson and drops the row.
func (p *AdminLessonsPage) Delete(ctx context.Context, id string) error {
	if err := p.client.Lessons.Delete(ctx, id); err != nil {
		p.toasts.Error(errMessage(err, "Failed to delete lesson"))
		return err
	}
	kept := p.lessons[:0]
	for _, l := range p.lessons {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	p.lessons = kept
	p.toasts.Success("Lesson deleted")
	return nil
}

// MoveUp swaps the lesson at position i with the one above it.
func (p *AdminLessonsPage) MoveUp(ctx context.Context, i int) error {
	return p.swap(ctx, i, i-1)
}

// MoveDown swaps the lesson at position i with the one below it.
func (p *AdminLessonsPage) MoveDown(ctx context.Context, i int) error {
	return p.swap(ctx, i, i+1)
}

// swap runs the three-step reorder. On a mid-swap failure the local view is
// thrown away and reloaded from the server, which is the only party that
// knows which steps landed.
func (p *AdminLessonsPage) swap(ctx context.Context, i, j int) error {
	if i < 0 || j < 0 || i >= len(p.lessons) || j >= len(p.lessons) {
		return apperrors.Clone(apperrors.ErrValidation, "nothing to swap with")
	}
	if err := forms.SwapLessons(ctx, p.client.Lessons, p.lessons, i, j); err != nil {
		if errors.Is(err, forms.ErrReorderOutOfSync) {
			p.toasts.Error("Reorder failed, reloading lessons")
			if reloadErr := p.Load(ctx); reloadErr != nil {
				return reloadErr
			}
			return err
		}
		p.toasts.Error(errMessage(err, "Failed to reorder lessons"))
		return err
	}
	p.lessons[i].OrderIndex, p.lessons[j].OrderIndex = p.lessons[j].OrderIndex, p.lessons[i].OrderIndex
	p.lessons = study.SortLessons(p.lessons)
	p.toasts.Success("Lessons reordered")
	return nil
}
