package domain

import "time"

// Session is the identity record held for one signed-in browser session.
// It is written exactly once, by the session service after a successful
// credential exchange, and read by the guard and the shell.
type Session struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// Authenticated reports whether the session belongs to a signed-in user.
// A non-empty username is the sole predicate: the role may still be
// unresolved and the token is never inspected here.
func (s Session) Authenticated() bool {
	return s.Username != ""
}

// Expired reports whether the session has outlived ttl. A zero ttl means
// sessions never expire.
func (s Session) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 || s.IssuedAt.IsZero() {
		return false
	}
	return now.After(s.IssuedAt.Add(ttl))
}
