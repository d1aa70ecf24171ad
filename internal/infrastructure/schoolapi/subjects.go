package schoolapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/schoolhub/portal/internal/core/domain"
)

func (c *Client) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.do(ctx, "subjects.list", http.MethodGet, "/subjects", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSubject creates a subject. The backend takes the name as a query
// parameter rather than a body.
func (c *Client) CreateSubject(ctx context.Context, name string) (domain.Subject, error) {
	q := url.Values{"subjectName": {name}}
	var out domain.Subject
	if err := c.do(ctx, "subjects.create", http.MethodPost, "/subjects", q, nil, &out); err != nil {
		return domain.Subject{}, err
	}
	return out, nil
}

func (c *Client) DeleteSubject(ctx context.Context, id int64) error {
	return c.do(ctx, "subjects.delete", http.MethodDelete, fmt.Sprintf("/subjects/%d", id), nil, nil, nil)
}
