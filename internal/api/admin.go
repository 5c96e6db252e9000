package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PhucLe22/lms-client/internal/models"
)

// AdminService wraps the student administration endpoints.
type AdminService struct {
	client *Client
}

// StudentListOptions filters and paginates the students table.
type StudentListOptions struct {
	Page     int
	PageSize int
	Search   string
	Role     models.Role
}

func (s *AdminService) Students(ctx context.Context, opts StudentListOptions) (*models.Paginated[models.StudentListItem], error) {
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
	if opts.Role != "" {
		params.Set("role", string(opts.Role))
	}
	var out models.Paginated[models.StudentListItem]
	if err := s.client.do(ctx, "GET", queryPath("/admin/students", params), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Student(ctx context.Context, id string) (*models.StudentDetail, error) {
	var out models.StudentDetail
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/admin/students/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) DeleteStudent(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/admin/students/%s", id), nil, nil)
}

func (s *AdminService) UpdateRole(ctx context.Context, id string, role models.Role) (*models.StudentListItem, error) {
	body := map[string]models.Role{"role": role}
	var out models.StudentListItem
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/admin/students/%s/role", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
