package schoolapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/schoolhub/portal/internal/core/domain"
)

func (c *Client) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	var out []domain.Teacher
	if err := c.do(ctx, "teachers.list", http.MethodGet, "/teachers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TeachersBySubject(ctx context.Context, subjectName string) ([]domain.Teacher, error) {
	q := url.Values{"subjectName": {subjectName}}
	var out []domain.Teacher
	if err := c.do(ctx, "teachers.bySubject", http.MethodGet, "/teachers/by-subject", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TeacherSubjects(ctx context.Context, teacherID int64) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.do(ctx, "teachers.subjects", http.MethodGet, fmt.Sprintf("/teachers/subjects/%d", teacherID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssignSubject(ctx context.Context, teacherID, subjectID int64) error {
	return c.do(ctx, "teachers.assignSubject", http.MethodPost, fmt.Sprintf("/teachers/%d/subjects/%d", teacherID, subjectID), nil, nil, nil)
}

func (c *Client) RemoveSubject(ctx context.Context, teacherID, subjectID int64) error {
	return c.do(ctx, "teachers.removeSubject", http.MethodDelete, fmt.Sprintf("/teachers/%d/subjects/%d", teacherID, subjectID), nil, nil, nil)
}
