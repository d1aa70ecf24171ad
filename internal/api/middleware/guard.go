package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/api/metrics"
	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "portal_session"

// Guard is the authentication gate evaluated on every protected route. The
// decision is synchronous against already-resolved session state: either the
// request proceeds with identity in context, or the login view is rendered
// in place of the requested one (a substitution, not a redirect). "Never
// logged in", "cookie tampered", "session expired" and "store unreachable"
// are deliberately indistinguishable here — all render as logged out.
func Guard(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return substituteLogin(c)
			}

			sid, sess, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil || !sess.Authenticated() {
				return substituteLogin(c)
			}

			c.Set("sid", sid)
			c.Set("username", sess.Username)
			c.Set("role", sess.Role)

			// the backend token travels on the request context so every
			// view fetch downstream carries it
			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithToken(req.Context(), sess.Token)))

			// the role gate runs after this and may still deny the request
			metrics.GuardDecisionsTotal.WithLabelValues("authenticated").Inc()
			return next(c)
		}
	}
}

func substituteLogin(c echo.Context) error {
	metrics.GuardDecisionsTotal.WithLabelValues("substituted").Inc()
	return c.JSON(http.StatusOK, domain.Envelope{View: "login"})
}
