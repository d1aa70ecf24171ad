package handler

import "github.com/labstack/echo/v4"

// identity extracts the session identity the guard put into context. The
// role may legitimately be empty while the account-type lookup is pending;
// an empty username means the handler is wired outside the guard, which is
// a routing bug rather than a user error.
func identity(c echo.Context) (username, role string) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	return username, role
}
