package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/listing"
	"github.com/PhucLe22/lms-client/internal/models"
)

// AdminStudentsPage is the admin students table. Role changes and deletes
// update the loaded rows in place on success; a failed mutation leaves the
// table untouched.
type AdminStudentsPage struct {
	*listing.Controller[models.StudentListItem]

	admin  *api.AdminService
	toasts Notifier
}

// NewAdminStudentsPage builds the page.
func NewAdminStudentsPage(admin *api.AdminService, pageSize int, toasts Notifier, opts ...listing.ControllerOption[models.StudentListItem]) *AdminStudentsPage {
	if toasts == nil {
		toasts = nopNotifier{}
	}
	fetch := func(ctx context.Context, q listing.Query) (*models.Paginated[models.StudentListItem], error) {
		return admin.Students(ctx, api.StudentListOptions{
			Page:     q.Page,
			PageSize: q.PageSize,
			Search:   q.Search,
			Role:     models.Role(q.Filter),
		})
	}
	all := append([]listing.ControllerOption[models.StudentListItem]{
		listing.WithOnError[models.StudentListItem](func(err error) {
			toasts.Error(errMessage(err, "Failed to load students"))
		}),
	}, opts...)
	return &AdminStudentsPage{
		Controller: listing.NewController(fetch, pageSize, all...),
		admin:      admin,
		toasts:     toasts,
	}
}

// SetRoleFilter filters by role; empty clears the filter.
func (p *AdminStudentsPage) SetRoleFilter(ctx context.Context, role models.Role) {
	p.SetFilter(ctx, string(role))
}

// SetRole changes a student's role and patches the loaded row.
func (p *AdminStudentsPage) SetRole(ctx context.Context, id string, role models.Role) error {
	updated, err := p.admin.UpdateRole(ctx, id, role)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to update role"))
		return err
	}
	p.Patch(
		func(s models.StudentListItem) bool { return s.ID == id },
		func(s *models.StudentListItem) { s.Role = updated.Role },
	)
	p.toasts.Success("Role updated")
	return nil
}

// Delete removes a student and drops the row.
func (p *AdminStudentsPage) Delete(ctx context.Context, id string) error {
	if err := p.admin.DeleteStudent(ctx, id); err != nil {
		p.toasts.Error(errMessage(err, "Failed to delete student"))
		return err
	}
	p.Remove(func(s models.StudentListItem) bool { return s.ID == id })
	p.toasts.Success("Student deleted")
	return nil
}

// Detail fetches one student's profile with enrollments.
func (p *AdminStudentsPage) Detail(ctx context.Context, id string) (*models.StudentDetail, error) {
	detail, err := p.admin.Student(ctx, id)
	if err != nil {
		p.toasts.Error(errMessage(err, "Failed to load student"))
		return nil, err
	}
	return detail, nil
}
