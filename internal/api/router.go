package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/api/handler"
	"github.com/schoolhub/portal/internal/api/middleware"
	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions   ports.SessionService
	Gateway    ports.AuthGateway
	School     ports.SchoolClient
	Redis      *redis.Client // readiness probe only; may be nil in dev
	SessionTTL time.Duration
	Version    string
	Log        zerolog.Logger
}

// NewRouter builds the Echo instance with the full client-facing surface:
// every route-table view behind Guard -> RequireRoles, the login/logout
// flow, the form submission endpoints, health probes and metrics.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	routes := handler.RouteTable()
	shell := handler.NewShell(d.Gateway, routes, d.Version, d.Log)
	authHandler := handler.NewAuthHandler(d.Sessions, shell, d.SessionTTL)
	views := handler.NewViewHandler(shell, d.School)
	forms := handler.NewFormHandler(shell, d.Gateway, d.School)
	guard := middleware.Guard(d.Sessions)

	// --- View routes from the static route table ---
	for _, r := range routes {
		if r.Public {
			e.GET(r.Path, authHandler.LoginView)
			continue
		}
		e.GET(r.Path, views.View(r.View), guard, middleware.RequireRoles(r.Roles...))
	}

	// --- Auth flow ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, guard)

	// --- Form submissions (same gates as their views) ---
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staff := middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin)

	e.POST("/registerStudent", forms.RegisterAccount("registerStudent", "student"), guard, adminOnly)
	e.POST("/registerTeacher", forms.RegisterAccount("registerTeacher", "teacher"), guard, adminOnly)
	e.POST("/registerParent", forms.RegisterAccount("registerParent", "parent"), guard, adminOnly)

	e.PUT("/edit-student/:id", forms.UpdateStudent, guard, staff)
	e.GET("/edit-student/:id/image", forms.StudentImage, guard, staff)
	e.PUT("/edit-student/:id/image", forms.UpdateStudentImage, guard, staff)
	e.PUT("/edit-student/:id/parents", forms.AddParents, guard, staff)

	e.PUT("/edit-parent/:id", forms.UpdateParent, guard, adminOnly)
	e.GET("/edit-parent/:id/image", forms.ParentImage, guard, adminOnly)
	e.PUT("/edit-parent/:id/image", forms.UploadParentImage, guard, adminOnly)
	e.PUT("/edit-parent/:id/students", forms.AddStudents, guard, adminOnly)

	e.POST("/edit-teacher/:id/subjects/:subjectId", forms.AssignSubject, guard, adminOnly)
	e.DELETE("/edit-teacher/:id/subjects/:subjectId", forms.RemoveSubject, guard, adminOnly)

	e.POST("/subjects", forms.CreateSubject, guard, adminOnly)
	e.DELETE("/subjects/:id", forms.DeleteSubject, guard, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
