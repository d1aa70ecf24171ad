package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal/internal/api/metrics"
	"github.com/schoolhub/portal/internal/core/domain"
)

// RequireRoles gates a route on an explicit permitted-role set. An empty set
// admits any authenticated user; that is a per-route opt-in made visible in
// the route table, not an ambient default. Runs after Guard, so a missing
// role in context means the session simply has none resolved yet.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.GuardDecisionsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, domain.Envelope{
					View:  "forbidden",
					Error: domain.ErrForbidden.Error(),
				})
			}
			return next(c)
		}
	}
}
