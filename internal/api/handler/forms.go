package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// FormHandler serves the write side: registration submissions, record
// edits, relation changes and subject catalog maintenance. Each operation
// forwards to exactly one backend call; there are no compensating
// transactions, so a record update that succeeded stays committed even if
// a follow-up image upload fails (the image error is reported on its own).
type FormHandler struct {
	shell   *Shell
	gateway ports.AuthGateway
	school  ports.SchoolClient
}

func NewFormHandler(shell *Shell, gateway ports.AuthGateway, school ports.SchoolClient) *FormHandler {
	return &FormHandler{shell: shell, gateway: gateway, school: school}
}

// RegisterAccount submits a new account of the given type. The route fixes
// the account type; a tag smuggled in the payload is overwritten. On
// success the response carries the new account id — and nothing else:
// registration never writes session state, so a follow-up navigation to a
// dashboard still depends on an existing login.
func (h *FormHandler) RegisterAccount(view, accountType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p ports.RegisterPayload
		if err := c.Bind(&p); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		p.AccountType = accountType
		if err := c.Validate(&p); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		res, err := h.gateway.Register(c.Request().Context(), p)
		if err != nil {
			return h.shell.Render(c, view, nil, err)
		}
		return h.shell.Render(c, view, map[string]int64{"id": res.ID}, nil)
	}
}

func (h *FormHandler) UpdateStudent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var s domain.Student
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.school.UpdateStudent(c.Request().Context(), id, s)
	if err != nil {
		return h.shell.Render(c, "editStudent", nil, err)
	}
	return h.shell.Render(c, "editStudent", map[string]any{"student": updated}, nil)
}

func (h *FormHandler) UpdateStudentImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	img, err := readImage(c)
	if err != nil {
		return err
	}
	if err := h.school.UpdateStudentImage(c.Request().Context(), id, img); err != nil {
		return h.shell.Render(c, "editStudent", nil, err)
	}
	return h.shell.Render(c, "editStudent", map[string]bool{"imageUpdated": true}, nil)
}

// StudentImage serves the stored profile image for the edit view. The
// response is raw bytes, not an envelope; errors fall through to the
// global error handler.
func (h *FormHandler) StudentImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	img, err := h.school.StudentImage(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

func (h *FormHandler) AddParents(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var parentIDs []int64
	if err := c.Bind(&parentIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.school.AddParents(c.Request().Context(), id, parentIDs); err != nil {
		return h.shell.Render(c, "editStudent", nil, err)
	}
	return h.shell.Render(c, "editStudent", map[string]bool{"parentsLinked": true}, nil)
}

func (h *FormHandler) UpdateParent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var p domain.Parent
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.school.UpdateParent(c.Request().Context(), id, p)
	if err != nil {
		return h.shell.Render(c, "editParent", nil, err)
	}
	return h.shell.Render(c, "editParent", map[string]any{"parent": updated}, nil)
}

func (h *FormHandler) UploadParentImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	img, err := readImage(c)
	if err != nil {
		return err
	}
	if err := h.school.UploadParentImage(c.Request().Context(), id, img); err != nil {
		return h.shell.Render(c, "editParent", nil, err)
	}
	return h.shell.Render(c, "editParent", map[string]bool{"imageUpdated": true}, nil)
}

// ParentImage serves the stored parent image, same contract as StudentImage.
func (h *FormHandler) ParentImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	img, err := h.school.ParentImage(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

func (h *FormHandler) AddStudents(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var studentIDs []int64
	if err := c.Bind(&studentIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.school.AddStudents(c.Request().Context(), id, studentIDs); err != nil {
		return h.shell.Render(c, "editParent", nil, err)
	}
	return h.shell.Render(c, "editParent", map[string]bool{"studentsLinked": true}, nil)
}

func (h *FormHandler) AssignSubject(c echo.Context) error {
	teacherID, subjectID, err := teacherSubjectIDs(c)
	if err != nil {
		return err
	}
	if err := h.school.AssignSubject(c.Request().Context(), teacherID, subjectID); err != nil {
		return h.shell.Render(c, "editTeacher", nil, err)
	}
	return h.shell.Render(c, "editTeacher", map[string]bool{"assigned": true}, nil)
}

func (h *FormHandler) RemoveSubject(c echo.Context) error {
	teacherID, subjectID, err := teacherSubjectIDs(c)
	if err != nil {
		return err
	}
	if err := h.school.RemoveSubject(c.Request().Context(), teacherID, subjectID); err != nil {
		return h.shell.Render(c, "editTeacher", nil, err)
	}
	return h.shell.Render(c, "editTeacher", map[string]bool{"removed": true}, nil)
}

func (h *FormHandler) CreateSubject(c echo.Context) error {
	name := c.QueryParam("subjectName")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subjectName is required")
	}

	subject, err := h.school.CreateSubject(c.Request().Context(), name)
	if err != nil {
		return h.shell.Render(c, "subjects", nil, err)
	}
	return h.shell.Render(c, "subjects", map[string]any{"subject": subject}, nil)
}

func (h *FormHandler) DeleteSubject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.school.DeleteSubject(c.Request().Context(), id); err != nil {
		return h.shell.Render(c, "subjects", nil, err)
	}
	return h.shell.Render(c, "subjects", map[string]bool{"deleted": true}, nil)
}

func teacherSubjectIDs(c echo.Context) (teacherID, subjectID int64, err error) {
	teacherID, err = pathID(c)
	if err != nil {
		return 0, 0, err
	}
	subjectID, err = strconv.ParseInt(c.Param("subjectId"), 10, 64)
	if err != nil || subjectID <= 0 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid subject id")
	}
	return teacherID, subjectID, nil
}

// readImage pulls the raw upload body. Uploads are capped at 5 MiB.
func readImage(c echo.Context) (ports.Image, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, 5<<20))
	if err != nil || len(data) == 0 {
		return ports.Image{}, echo.NewHTTPError(http.StatusBadRequest, "missing image body")
	}
	return ports.Image{
		Data:        data,
		ContentType: c.Request().Header.Get("Content-Type"),
	}, nil
}
