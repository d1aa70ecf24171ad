package schoolapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/schoolhub/portal/internal/core/ports"
)

// Login exchanges credentials with POST /auth/login. The credentials live
// only for the duration of this call; nothing here writes session state.
func (c *Client) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var res ports.LoginResult
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return ports.LoginResult{}, err
	}
	return res, nil
}

// Register submits a role-tagged payload to the polymorphic registration
// endpoint and returns the new account's identifier.
func (c *Client) Register(ctx context.Context, p ports.RegisterPayload) (ports.RegisterResult, error) {
	var res ports.RegisterResult
	if err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", nil, p, &res); err != nil {
		return ports.RegisterResult{}, err
	}
	return res, nil
}

// AccountType resolves the role label for a username. The backend answers
// with a bare string; some deployments quote it as a JSON string, so both
// forms are accepted.
func (c *Client) AccountType(ctx context.Context, username string) (string, error) {
	b, _, err := c.doRaw(ctx, "auth.accountType", http.MethodGet, "/auth/accountType/"+username, nil, "")
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(b)), `"`), nil
}
