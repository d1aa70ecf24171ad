package ports

import (
	"context"

	"github.com/schoolhub/portal/internal/core/domain"
)

// SessionStore persists session records keyed by an opaque session id.
// Implementations apply a TTL so expired sessions read back as absent
// (domain.ErrSessionNotFound). A store that cannot be reached must fail
// the read, never fabricate a session: the guard treats any Get failure
// as logged out.
type SessionStore interface {
	Put(ctx context.Context, sid string, s domain.Session) error
	Get(ctx context.Context, sid string) (domain.Session, error)
	Delete(ctx context.Context, sid string) error
}
