package ports

import (
	"context"

	"github.com/schoolhub/portal/internal/core/domain"
)

// SessionService owns the login/logout lifecycle and is the single writer of
// session state. Everything else (guard, shell, views) only reads through
// Resolve.
type SessionService interface {
	// Login performs the credential exchange and, only on success, writes the
	// session record and mints the signed cookie value for it.
	Login(ctx context.Context, username, password string) (cookie string, s domain.Session, err error)

	// Resolve verifies a cookie value and loads its session. Any failure
	// (bad signature, expired, store miss, store down) reads as logged out.
	Resolve(ctx context.Context, cookie string) (sid string, s domain.Session, err error)

	// Logout deletes the session record. Idempotent.
	Logout(ctx context.Context, sid string) error
}
