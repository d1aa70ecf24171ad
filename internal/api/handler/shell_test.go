package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/core/domain"
)

func TestShell_HeaderDisplaysRoleWithoutPrefix(t *testing.T) {
	shell := newTestShell(domain.RoleAdmin)

	c, rec := viewContext(t, "/settings", "root", domain.RoleAdmin)
	if err := shell.Render(c, "settings", nil, nil); err != nil {
		t.Fatalf("render error: %v", err)
	}

	env := decodeEnvelope(t, rec)
	if env.Header.Username != "root" {
		t.Fatalf("unexpected header username: %q", env.Header.Username)
	}
	if env.Header.AccountType != "ADMIN" {
		t.Fatalf("expected stored ROLE_ADMIN to display as ADMIN, got %q", env.Header.AccountType)
	}
}

func TestShell_HeaderDegradesToUnknownOnLookupFailure(t *testing.T) {
	gateway := &stubGateway{accountTypeFn: func(context.Context, string) (string, error) {
		return "", domain.ErrBackendUnavailable
	}}
	shell := NewShell(gateway, RouteTable(), "test", zerolog.Nop())

	c, rec := viewContext(t, "/help", "jdoe", "")
	if err := shell.Render(c, "help", nil, nil); err != nil {
		t.Fatalf("render error: %v", err)
	}

	env := decodeEnvelope(t, rec)
	if env.Header.AccountType != domain.RoleUnknown {
		t.Fatalf("expected UNKNOWN placeholder, got %q", env.Header.AccountType)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("a failed account-type lookup must not fail the view, got %d", rec.Code)
	}
}

func TestShell_SidebarFiltersByRole(t *testing.T) {
	shell := newTestShell(domain.RoleStudent)

	c, rec := viewContext(t, "/studentDashboard", "jdoe", domain.RoleStudent)
	if err := shell.Render(c, "studentDashboard", nil, nil); err != nil {
		t.Fatalf("render error: %v", err)
	}

	env := decodeEnvelope(t, rec)
	for _, item := range env.Sidebar.Items {
		if item.Path == "/adminDashboard" || item.Path == "/registerStudent" {
			t.Fatalf("student sidebar must not offer %s", item.Path)
		}
	}

	var hasOwnDashboard bool
	for _, item := range env.Sidebar.Items {
		if item.Path == "/studentDashboard" {
			hasOwnDashboard = true
		}
	}
	if !hasOwnDashboard {
		t.Fatalf("student sidebar missing own dashboard: %+v", env.Sidebar.Items)
	}
}

func TestShell_SidebarExpandedFromCookie(t *testing.T) {
	shell := newTestShell(domain.RoleAdmin)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(&http.Cookie{Name: sidebarCookie, Value: "1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "root")
	c.Set("role", domain.RoleAdmin)

	if err := shell.Render(c, "settings", nil, nil); err != nil {
		t.Fatalf("render error: %v", err)
	}

	env := decodeEnvelope(t, rec)
	if !env.Sidebar.Expanded {
		t.Fatalf("expected expanded sidebar")
	}
}
