package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/api/middleware"
	"github.com/schoolhub/portal/internal/core/domain"
)

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	sessions := &stubSessions{loginFn: func(_ context.Context, username, password string) (string, domain.Session, error) {
		if username != "jdoe" || password != "secret" {
			t.Fatalf("unexpected credentials: %s %s", username, password)
		}
		return "signed-cookie", domain.Session{Username: "jdoe", Role: domain.RoleTeacher, Token: "Basic x"}, nil
	}}
	h := NewAuthHandler(sessions, newTestShell(domain.RoleTeacher), 12*time.Hour)

	c, rec := newAuthTestContext(t, `{"username":"jdoe","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie && ck.Value == "signed-cookie" {
			found = true
			if !ck.HttpOnly {
				t.Fatalf("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set; got %v", cookies)
	}

	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if env.View != "login" || env.Error != "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data, _ := env.Data.(map[string]any)
	if data["username"] != "jdoe" || data["role"] != domain.RoleTeacher {
		t.Fatalf("unexpected login data: %v", env.Data)
	}
}

func TestAuthHandler_Login_RejectedShowsBackendMessage(t *testing.T) {
	sessions := &stubSessions{loginFn: func(context.Context, string, string) (string, domain.Session, error) {
		return "", domain.Session{}, &domain.BackendError{Status: 401, Message: "Invalid credentials"}
	}}
	h := NewAuthHandler(sessions, newTestShell(""), 12*time.Hour)

	c, rec := newAuthTestContext(t, `{"username":"jdoe","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if env.Error != "Invalid credentials" {
		t.Fatalf("expected verbatim backend message, got %q", env.Error)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on a failed login")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	sessions := &stubSessions{loginFn: func(context.Context, string, string) (string, domain.Session, error) {
		t.Fatalf("session service must not be called")
		return "", domain.Session{}, nil
	}}
	h := NewAuthHandler(sessions, newTestShell(""), 12*time.Hour)

	c, _ := newAuthTestContext(t, `{"username":"jdoe"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsSessionAndCookie(t *testing.T) {
	var cleared string
	sessions := &stubSessions{
		loginFn:  func(context.Context, string, string) (string, domain.Session, error) { return "", domain.Session{}, nil },
		logoutFn: func(_ context.Context, sid string) error { cleared = sid; return nil },
	}
	h := NewAuthHandler(sessions, newTestShell(""), 12*time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sid-42")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cleared != "sid-42" {
		t.Fatalf("expected store clear for sid-42, got %q", cleared)
	}

	var expired bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatalf("session cookie must be expired on logout")
	}
}
