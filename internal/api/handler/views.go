package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// ViewHandler serves the read side of every route-table view. Each view
// independently fetches its own data from the school backend; there is no
// shared cache across views. The fetch inherits the request context, so a
// disconnecting client cancels the backend call instead of leaking it.
type ViewHandler struct {
	shell  *Shell
	school ports.SchoolClient
}

func NewViewHandler(shell *Shell, school ports.SchoolClient) *ViewHandler {
	return &ViewHandler{shell: shell, school: school}
}

// View resolves a route-table view name to its handler. An unknown name is
// a route-table typo and fails at startup, not at request time.
func (h *ViewHandler) View(name string) echo.HandlerFunc {
	views := map[string]echo.HandlerFunc{
		"home":             h.home,
		"studentDashboard": h.roleDashboard("studentDashboard"),
		"parentDashboard":  h.roleDashboard("parentDashboard"),
		"teacherDashboard": h.roleDashboard("teacherDashboard"),
		"adminDashboard":   h.adminDashboard,
		"help":             h.static("help"),
		"settings":         h.static("settings"),
		"classes":          h.classes,
		"subjects":         h.subjects,
		"attendance":       h.attendance,
		"timeTable":        h.static("timeTable"),
		"studentPromotion": h.studentPromotion,
		"schoolFees":       h.static("schoolFees"),
		"registerStudent":  h.registerForm("registerStudent", "student"),
		"registerTeacher":  h.registerForm("registerTeacher", "teacher"),
		"registerParent":   h.registerForm("registerParent", "parent"),
		"editStudent":      h.editStudent,
		"editParent":       h.editParent,
		"editTeacher":      h.editTeacher,
	}

	v, ok := views[name]
	if !ok {
		panic(fmt.Sprintf("handler: no view registered for %q", name))
	}
	return v
}

func (h *ViewHandler) home(c echo.Context) error {
	_, role := identity(c)
	return h.shell.Render(c, "home", map[string]string{
		"dashboard": dashboardFor(role),
	}, nil)
}

// dashboardFor picks the landing dashboard for a role. Sessions whose role
// is still unresolved land on help rather than bouncing.
func dashboardFor(role string) string {
	switch role {
	case domain.RoleStudent:
		return "/studentDashboard"
	case domain.RoleParent:
		return "/parentDashboard"
	case domain.RoleTeacher:
		return "/teacherDashboard"
	case domain.RoleAdmin:
		return "/adminDashboard"
	}
	return "/help"
}

func (h *ViewHandler) roleDashboard(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, role := identity(c)
		return h.shell.Render(c, view, map[string]string{
			"username": username,
			"role":     domain.DisplayRole(role),
		}, nil)
	}
}

// adminDashboard aggregates headline counts across the four directories.
// The first failed fetch becomes the page-level error.
func (h *ViewHandler) adminDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	students, err := h.school.ListStudents(ctx)
	if err != nil {
		return h.shell.Render(c, "adminDashboard", nil, err)
	}
	parents, err := h.school.ListParents(ctx)
	if err != nil {
		return h.shell.Render(c, "adminDashboard", nil, err)
	}
	teachers, err := h.school.ListTeachers(ctx)
	if err != nil {
		return h.shell.Render(c, "adminDashboard", nil, err)
	}
	subjects, err := h.school.ListSubjects(ctx)
	if err != nil {
		return h.shell.Render(c, "adminDashboard", nil, err)
	}

	return h.shell.Render(c, "adminDashboard", map[string]int{
		"students": len(students),
		"parents":  len(parents),
		"teachers": len(teachers),
		"subjects": len(subjects),
	}, nil)
}

// static serves the views whose business data lives entirely behind the
// backend surfaces this portal does not consume (fees, timetables, help).
func (h *ViewHandler) static(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.shell.Render(c, view, nil, nil)
	}
}

func (h *ViewHandler) classes(c echo.Context) error {
	students, err := h.school.ListStudents(c.Request().Context())
	if err != nil {
		return h.shell.Render(c, "classes", nil, err)
	}

	byClass := make(map[string][]domain.Student)
	for _, s := range students {
		byClass[s.ClassName] = append(byClass[s.ClassName], s)
	}
	return h.shell.Render(c, "classes", map[string]any{"classes": byClass}, nil)
}

// subjects lists the catalog; with ?subjectName= it also resolves the
// teachers assigned to that subject.
func (h *ViewHandler) subjects(c echo.Context) error {
	ctx := c.Request().Context()

	subjects, err := h.school.ListSubjects(ctx)
	if err != nil {
		return h.shell.Render(c, "subjects", nil, err)
	}

	data := map[string]any{"subjects": subjects}
	if name := c.QueryParam("subjectName"); name != "" {
		teachers, err := h.school.TeachersBySubject(ctx, name)
		if err != nil {
			return h.shell.Render(c, "subjects", nil, err)
		}
		data["teachers"] = teachers
	}
	return h.shell.Render(c, "subjects", data, nil)
}

func (h *ViewHandler) attendance(c echo.Context) error {
	students, err := h.school.ListStudents(c.Request().Context())
	if err != nil {
		return h.shell.Render(c, "attendance", nil, err)
	}
	return h.shell.Render(c, "attendance", map[string]any{"roster": students}, nil)
}

func (h *ViewHandler) studentPromotion(c echo.Context) error {
	students, err := h.school.ListStudents(c.Request().Context())
	if err != nil {
		return h.shell.Render(c, "studentPromotion", nil, err)
	}
	return h.shell.Render(c, "studentPromotion", map[string]any{"students": students}, nil)
}

func (h *ViewHandler) registerForm(view, accountType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.shell.Render(c, view, map[string]string{"accountType": accountType}, nil)
	}
}

func (h *ViewHandler) editStudent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	student, err := h.school.GetStudent(ctx, id)
	if err != nil {
		return h.shell.Render(c, "editStudent", nil, err)
	}
	parents, err := h.school.ListParents(ctx)
	if err != nil {
		return h.shell.Render(c, "editStudent", nil, err)
	}
	return h.shell.Render(c, "editStudent", map[string]any{
		"student": student,
		"parents": parents,
	}, nil)
}

func (h *ViewHandler) editParent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	parent, err := h.school.GetParent(ctx, id)
	if err != nil {
		return h.shell.Render(c, "editParent", nil, err)
	}
	students, err := h.school.ListStudents(ctx)
	if err != nil {
		return h.shell.Render(c, "editParent", nil, err)
	}
	return h.shell.Render(c, "editParent", map[string]any{
		"parent":   parent,
		"students": students,
	}, nil)
}

// editTeacher loads the teacher from the directory list (the backend has no
// fetch-by-id for teachers), plus their assignments and the full catalog.
func (h *ViewHandler) editTeacher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	teachers, err := h.school.ListTeachers(ctx)
	if err != nil {
		return h.shell.Render(c, "editTeacher", nil, err)
	}
	var teacher *domain.Teacher
	for i := range teachers {
		if teachers[i].ID == id {
			teacher = &teachers[i]
			break
		}
	}
	if teacher == nil {
		return h.shell.Render(c, "editTeacher", nil, domain.ErrNotFound)
	}

	assigned, err := h.school.TeacherSubjects(ctx, id)
	if err != nil {
		return h.shell.Render(c, "editTeacher", nil, err)
	}
	catalog, err := h.school.ListSubjects(ctx)
	if err != nil {
		return h.shell.Render(c, "editTeacher", nil, err)
	}

	return h.shell.Render(c, "editTeacher", map[string]any{
		"teacher":     teacher,
		"subjects":    assigned,
		"allSubjects": catalog,
	}, nil)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
