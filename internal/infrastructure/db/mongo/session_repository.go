package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolhub/portal/internal/core/domain"
)

const sessionCollection = "sessions"

// SessionRepository persists sessions in MongoDB for deployments that
// already run Mongo and do not want a Redis instance just for session
// state. Expiry is enforced by a TTL index on expire_at, so expired
// documents read back as absent, same as the Redis repository.
type SessionRepository struct {
	coll *mongo.Collection
	ttl  time.Duration
}

type sessionDoc struct {
	SID      string    `bson:"_id"`
	Username string    `bson:"username"`
	Role     string    `bson:"role"`
	Token    string    `bson:"token"`
	IssuedAt time.Time `bson:"issued_at"`
	ExpireAt time.Time `bson:"expire_at,omitempty"`
}

// expired reports whether the document is past its expire_at. A zero
// expire_at means the session never expires.
func (d sessionDoc) expired(now time.Time) bool {
	return !d.ExpireAt.IsZero() && now.After(d.ExpireAt)
}

func (d sessionDoc) session() domain.Session {
	return domain.Session{
		Username: d.Username,
		Role:     d.Role,
		Token:    d.Token,
		IssuedAt: d.IssuedAt,
	}
}

// NewSessionRepository wraps db's session collection. A ttl of zero stores
// sessions without expiry.
func NewSessionRepository(db *mongo.Database, ttl time.Duration) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection), ttl: ttl}
}

// EnsureIndexes creates the TTL index Mongo needs to reap expired sessions.
// Safe to call on every startup; index creation is idempotent.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expire_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("session ttl index: %w", err)
	}
	return nil
}

func (r *SessionRepository) Put(ctx context.Context, sid string, s domain.Session) error {
	doc := sessionDoc{
		SID:      sid,
		Username: s.Username,
		Role:     s.Role,
		Token:    s.Token,
		IssuedAt: s.IssuedAt,
	}
	if r.ttl > 0 {
		doc.ExpireAt = time.Now().Add(r.ttl)
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (domain.Session, error) {
	var doc sessionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": sid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	// the TTL reaper runs on a coarse interval; a document past its
	// expire_at may still linger, so absence is enforced on read too
	if doc.expired(time.Now()) {
		_, _ = r.coll.DeleteOne(ctx, bson.M{"_id": sid})
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return doc.session(), nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": sid}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
