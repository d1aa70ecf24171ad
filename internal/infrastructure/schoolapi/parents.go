package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

func (c *Client) ListParents(ctx context.Context) ([]domain.Parent, error) {
	var out []domain.Parent
	if err := c.do(ctx, "parents.list", http.MethodGet, "/parents", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetParent(ctx context.Context, id int64) (domain.Parent, error) {
	var out domain.Parent
	if err := c.do(ctx, "parents.get", http.MethodGet, fmt.Sprintf("/parents/%d", id), nil, nil, &out); err != nil {
		return domain.Parent{}, err
	}
	return out, nil
}

func (c *Client) ParentImage(ctx context.Context, id int64) (ports.Image, error) {
	data, contentType, err := c.doRaw(ctx, "parents.image", http.MethodGet, fmt.Sprintf("/parents/%d/image", id), nil, "")
	if err != nil {
		return ports.Image{}, err
	}
	return ports.Image{Data: data, ContentType: contentType}, nil
}

func (c *Client) UpdateParent(ctx context.Context, id int64, p domain.Parent) (domain.Parent, error) {
	var out domain.Parent
	if err := c.do(ctx, "parents.update", http.MethodPut, fmt.Sprintf("/parents/%d", id), nil, p, &out); err != nil {
		return domain.Parent{}, err
	}
	return out, nil
}

func (c *Client) UploadParentImage(ctx context.Context, id int64, img ports.Image) error {
	_, _, err := c.doRaw(ctx, "parents.uploadImage", http.MethodPut, fmt.Sprintf("/parents/%d/upload-image", id), img.Data, img.ContentType)
	return err
}

func (c *Client) AddStudents(ctx context.Context, parentID int64, studentIDs []int64) error {
	return c.do(ctx, "parents.addStudents", http.MethodPut, fmt.Sprintf("/parents/addStudents/%d", parentID), nil, studentIDs, nil)
}
