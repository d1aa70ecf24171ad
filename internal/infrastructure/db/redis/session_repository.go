package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolhub/portal/internal/core/domain"
)

// SessionRepository persists sessions in Redis as JSON values with a TTL.
// Key format: session:<sid>. Expired keys vanish from Redis, so expiry and
// absence are indistinguishable to callers, which is the behaviour the
// guard wants.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository wraps client. A ttl of zero stores sessions without
// expiry.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Put(ctx context.Context, sid string, s domain.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sid), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (domain.Session, error) {
	b, err := r.client.Get(ctx, r.key(sid)).Bytes()
	if err == redis.Nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sid string) string {
	return "session:" + sid
}
