package pages

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/listing"
	"github.com/PhucLe22/lms-client/internal/models"
)

// CatalogPage is the public course catalog: paginated, searchable, with a
// level filter.
type CatalogPage struct {
	*listing.Controller[models.Course]
}

// NewCatalogPage builds the catalog over the courses endpoint.
func NewCatalogPage(courses *api.CoursesService, pageSize int, toasts Notifier, opts ...listing.ControllerOption[models.Course]) *CatalogPage {
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
	return &CatalogPage{Controller: listing.NewController(fetch, pageSize, all...)}
}

// SetLevel filters by course level; empty clears the filter.
func (p *CatalogPage) SetLevel(ctx context.Context, level models.Level) {
	p.SetFilter(ctx, string(level))
}
