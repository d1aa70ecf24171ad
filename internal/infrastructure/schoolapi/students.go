package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

func (c *Client) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var out []domain.Student
	if err := c.do(ctx, "students.list", http.MethodGet, "/students", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStudent(ctx context.Context, id int64) (domain.Student, error) {
	var out domain.Student
	if err := c.do(ctx, "students.get", http.MethodGet, fmt.Sprintf("/students/%d", id), nil, nil, &out); err != nil {
		return domain.Student{}, err
	}
	return out, nil
}

func (c *Client) StudentImage(ctx context.Context, id int64) (ports.Image, error) {
	data, contentType, err := c.doRaw(ctx, "students.image", http.MethodGet, fmt.Sprintf("/students/%d/profile-image", id), nil, "")
	if err != nil {
		return ports.Image{}, err
	}
	return ports.Image{Data: data, ContentType: contentType}, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int64, s domain.Student) (domain.Student, error) {
	var out domain.Student
	if err := c.do(ctx, "students.update", http.MethodPut, fmt.Sprintf("/students/%d", id), nil, s, &out); err != nil {
		return domain.Student{}, err
	}
	return out, nil
}

func (c *Client) UpdateStudentImage(ctx context.Context, id int64, img ports.Image) error {
	_, _, err := c.doRaw(ctx, "students.updateImage", http.MethodPut, fmt.Sprintf("/students/%d/update-image", id), img.Data, img.ContentType)
	return err
}

func (c *Client) AddParents(ctx context.Context, studentID int64, parentIDs []int64) error {
	return c.do(ctx, "students.addParents", http.MethodPut, fmt.Sprintf("/students/addParents/%d", studentID), nil, parentIDs, nil)
}
