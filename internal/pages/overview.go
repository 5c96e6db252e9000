package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/models"
)

// MyCoursesPage lists the student's enrollments with their progress.
type MyCoursesPage struct {
	client *api.Client
	toasts Notifier

	enrollments []models.Enrollment
}

// NewMyCoursesPage builds the page.
func NewMyCoursesPage(client *api.Client, toasts Notifier) *MyCoursesPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &MyCoursesPage{client: client, toasts: toasts}
}

// Load fetches the enrollments.
func (p *MyCoursesPage) Load(ctx context.Context) error {
	enrollments, err := p.client.Enrollments.MyCourses(ctx)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load your courses"))
		return err
	}
	p.enrollments = enrollments
	return nil
}

// Enrollments returns the loaded rows.
func (p *MyCoursesPage) Enrollments() []models.Enrollment { return p.enrollments }

// Enroll joins a course and prepends the new enrollment.
func (p *MyCoursesPage) Enroll(ctx context.Context, courseID string) error {
	enrollment, err := p.client.Enrollments.Enroll(ctx, courseID)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to enroll"))
		return err
	}
	p.enrollments = append([]models.Enrollment{*enrollment}, p.enrollments...)
	p.toasts.Success("Enrolled successfully")
	return nil
}

// Unenroll leaves a course and drops its row.
func (p *MyCoursesPage) Unenroll(ctx context.Context, courseID string) error {
	if err := p.client.Enrollments.Unenroll(ctx, courseID); err != nil {
		p.toasts.Error(errMessage(err, "Failed to unenroll"))
		return err
	}
	kept := p.enrollments[:0]
	for _, e := range p.enrollments {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	p.enrollments = kept
	p.toasts.Info("Unenrolled from course")
	return nil
}

// DashboardPage shows the admin stats card.
type DashboardPage struct {
	client *api.Client
	toasts Notifier

	stats *models.DashboardStats
}

// NewDashboardPage builds the page.
func NewDashboardPage(client *api.Client, toasts Notifier) *DashboardPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	return &DashboardPage{client: client, toasts: toasts}
}

// Load fetches the stats.
func (p *DashboardPage) Load(ctx context.Context) error {
	stats, err := p.client.Dashboard.Stats(ctx)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load dashboard"))
		return err
	}
	p.stats = stats
	return nil
}

// Stats returns the loaded stats.
func (p *DashboardPage) Stats() *models.DashboardStats { return p.stats }
