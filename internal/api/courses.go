package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PhucLe22/lms-client/internal/models"
)

// CoursesService wraps the course catalog endpoints.
type CoursesService struct {
	client *Client
}

// CourseListOptions filters and paginates the catalog.
type CourseListOptions struct {
	Page     int
	PageSize int
	Search   string
	Level    models.Level
}

// CourseRequest is the create/update payload.
type CourseRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Level       models.Level `json:"level"`
}

func (s *CoursesService) List(ctx context.Context, opts CourseListOptions) (*models.Paginated[models.Course], error) {
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Level != "" {
		params.Set("level", string(opts.Level))
	}
	var out models.Paginated[models.Course]
	if err := s.client.do(ctx, "GET", queryPath("/courses", params), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CoursesService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	var out models.CourseDetail
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/courses/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CoursesService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := s.client.do(ctx, "POST", "/courses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CoursesService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/courses/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CoursesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/courses/%s", id), nil, nil)
}
