package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/listing"
	"github.com/PhucLe22/lms-client/internal/models"
)

// AdminCoursesPage is the admin course table with create/edit/delete.
type AdminCoursesPage struct {
	*listing.Controller[models.Course]

	courses   *api.CoursesService
	toasts    Notifier
	validator *forms.Validator
}

// NewAdminCoursesPage builds the page.
func NewAdminCoursesPage(courses *api.CoursesService, pageSize int, toasts Notifier, opts ...listing.ControllerOption[models.Course]) *AdminCoursesPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	fetch := func(ctx context.Context, q listing.Query) (*models.Paginated[models.Course], error) {
		return courses.List(ctx, api.CourseListOptions{
			Page:     q.Page,
			PageSize: q.PageSize,
			Search:   q.Search,
			Level:    models.Level(q.Filter),
		})
	}
	all := append([]listing.ControllerOption[models.Course]{
		listing.WithOnError[models.Course](func(err error) {
			toasts.Error(errMessage(err, "Failed to load courses"))
		}),
	}, opts...)
	return &AdminCoursesPage{
		Controller: listing.NewController(fetch, pageSize, all...),
		courses:    courses,
		toasts:     toasts,
		validator:  forms.NewValidator(),
	}
}

// Create validates the form and creates the course, reloading the current
// page so pagination stays correct.
func (p *AdminCoursesPage) Create(ctx context.Context, form forms.CourseForm) (*models.Course, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	course, err := p.courses.Create(ctx, api.CourseRequest{
		Title:       form.Title,
		Description: form.Description,
		Level:       form.Level,
	})
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to create course"))
		return nil, err
	}
	p.toasts.Success("Course created")
	p.Load(ctx)
	return course, nil
}

// Update validates the form and saves, patching the loaded row.
func (p *AdminCoursesPage) Update(ctx context.Context, id string, form forms.CourseForm) (*models.Course, error) {
	if err := p.validator.Check(form); err != nil {
		p.toasts.Error(err.Error())
		return nil, err
	}
	course, err := p.courses.Update(ctx, id, api.CourseRequest{
		Title:       form.Title,
		Description: form.Description,
		Level:       form.Level,
	})
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to update course"))
		return nil, err
	}
	p.Patch(
		func(c models.Course) bool { return c.ID == id },
		func(c *models.Course) {
			c.Title = course.Title
			c.Description = course.Description
			c.Level = course.Level
		},
	)
	p.toasts.Success("Course updated")
	return course, nil
}

// Delete removes a course and drops the row.
func (p *AdminCoursesPage) Delete(ctx context.Context, id string) error {
	if err := p.courses.Delete(ctx, id); err != nil {
		p.toasts.Error(errMessage(err, "Failed to delete course"))
		return err
	}
	p.Remove(func(c models.Course) bool { return c.ID == id })
	p.toasts.Success("Course deleted")
	return nil
}
