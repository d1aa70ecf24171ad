package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// sidebarCookie holds the transient expanded/collapsed preference. It is
// pure UI state: the browser toggles it, the shell only reflects it.
const sidebarCookie = "ui_sidebar"

// Shell composes the header, sidebar and footer around every guarded view.
// It owns no business state; the only thing it fetches is the header's
// account-type label, re-derived on each render from the session username.
type Shell struct {
	gateway ports.AuthGateway
	routes  []domain.RouteEntry
	version string
	log     zerolog.Logger
}

func NewShell(gateway ports.AuthGateway, routes []domain.RouteEntry, version string, log zerolog.Logger) *Shell {
	return &Shell{gateway: gateway, routes: routes, version: version, log: log}
}

// Render writes the envelope for one view. A fetch error becomes the
// page-level error string; it never escapes to a global error boundary.
func (s *Shell) Render(c echo.Context, view string, data any, fetchErr error) error {
	username, role := identity(c)

	env := domain.Envelope{
		Header:  s.header(c, username),
		Sidebar: s.sidebar(c, role),
		Footer:  domain.Footer{Year: time.Now().Year(), Version: s.version},
		View:    view,
	}

	if fetchErr != nil {
		env.Error = fetchErr.Error()
		return c.JSON(statusFor(fetchErr), env)
	}
	env.Data = data
	return c.JSON(http.StatusOK, env)
}

// header resolves the display account type for the signed-in user. A failed
// lookup silently degrades to UNKNOWN rather than failing the view.
func (s *Shell) header(c echo.Context, username string) domain.Header {
	h := domain.Header{Username: username, AccountType: domain.RoleUnknown}
	if username == "" {
		return h
	}

	role, err := s.gateway.AccountType(c.Request().Context(), username)
	if err != nil {
		s.log.Debug().Err(err).Str("username", username).Msg("account type lookup failed")
		return h
	}
	h.AccountType = domain.DisplayRole(role)
	return h
}

func (s *Shell) sidebar(c echo.Context, role string) domain.Sidebar {
	sb := domain.Sidebar{Items: []domain.SidebarItem{}}

	if cookie, err := c.Cookie(sidebarCookie); err == nil {
		sb.Expanded = cookie.Value == "1" || cookie.Value == "true"
	}

	for _, r := range s.routes {
		if r.Public || r.Sidebar == "" || !r.AllowsRole(role) {
			continue
		}
		sb.Items = append(sb.Items, domain.SidebarItem{Path: r.Path, Label: r.Sidebar})
	}
	return sb
}

// statusFor maps a view fetch error to its HTTP status. The envelope always
// carries the message; the status just keeps the surface honest.
func statusFor(err error) int {
	var be *domain.BackendError
	if errors.As(err, &be) {
		return be.Status
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
