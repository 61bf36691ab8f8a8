// Package api wraps the five employee endpoints of the backend. Each call
// is a direct, stateless request through the shared pipeline and returns
// the backend envelope as-is. No validation, no batching.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/request"
)

// Client calls the employee resource.
type Client struct {
	rc *request.Client
}

// New returns an employee API client on top of rc.
func New(rc *request.Client) *Client {
	return &Client{rc: rc}
}

// ListEmployees: GET /employee/list
func (c *Client) ListEmployees(ctx context.Context) (*models.Envelope[[]models.Employee], error) {
	return request.Call[[]models.Employee](ctx, c.rc, http.MethodGet, PathEmployeeList, nil, nil)
}

// GetEmployee: GET /employee/detail?id=<id>
func (c *Client) GetEmployee(ctx context.Context, id int64) (*models.Envelope[models.Employee], error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return request.Call[models.Employee](ctx, c.rc, http.MethodGet, PathEmployeeDetail, q, nil)
}

// CreateEmployee: POST /employee/add
func (c *Client) CreateEmployee(ctx context.Context, e models.Employee) (*models.Envelope[any], error) {
	return request.Call[any](ctx, c.rc, http.MethodPost, PathEmployeeAdd, nil, e)
}

// UpdateEmployee: POST /employee/update
func (c *Client) UpdateEmployee(ctx context.Context, e models.Employee) (*models.Envelope[any], error) {
	return request.Call[any](ctx, c.rc, http.MethodPost, PathEmployeeUpdate, nil, e)
}

// DeleteEmployee: POST /employee/delete with body {"id": <id>}
func (c *Client) DeleteEmployee(ctx context.Context, id int64) (*models.Envelope[any], error) {
	return request.Call[any](ctx, c.rc, http.MethodPost, PathEmployeeDelete, nil, models.IDRequest{ID: id})
}
