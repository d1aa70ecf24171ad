package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/api/middleware"
	"github.com/schoolhub/portal/internal/core/ports"
)

// AuthHandler serves the login and logout flows. It is the only handler
// that touches session state, and it does so exclusively through the
// session service.
type AuthHandler struct {
	sessions ports.SessionService
	shell    *Shell
	ttl      time.Duration
}

func NewAuthHandler(sessions ports.SessionService, shell *Shell, ttl time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, shell: shell, ttl: ttl}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginView renders the unguarded login page.
func (h *AuthHandler) LoginView(c echo.Context) error {
	return h.shell.Render(c, "login", nil, nil)
}

// Login performs the credential exchange. On success the session cookie is
// set and the response carries the resolved identity; on failure the login
// view re-renders with the backend's message and no session state exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cookie, sess, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.shell.Render(c, "login", nil, err)
	}

	h.setSessionCookie(c, cookie)
	return h.shell.Render(c, "login", loginData{Username: sess.Username, Role: sess.Role}, nil)
}

// Logout clears the session record and expires the cookie. Navigating away
// without calling this leaves no usable credentials behind either, since the
// store entry expires on its own TTL.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get("sid").(string)
	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return h.shell.Render(c, "login", nil, err)
	}

	h.clearSessionCookie(c)
	return h.shell.Render(c, "login", nil, nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.ttl > 0 {
		cookie.Expires = time.Now().Add(h.ttl)
	}
	c.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
