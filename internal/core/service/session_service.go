package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/api/metrics"
	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// SessionService orchestrates the login flow and owns every write to the
// session store. The ordering inside Login is strict: the credential
// exchange must succeed before the store is written, and the store must be
// written before a cookie exists that could pass the guard.
type SessionService struct {
	gateway ports.AuthGateway
	store   ports.SessionStore
	secret  []byte
	ttl     time.Duration
	log     zerolog.Logger

	now    func() time.Time
	newSID func() string
}

func NewSessionService(gateway ports.AuthGateway, store ports.SessionStore, jwtSecret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		store:   store,
		secret:  []byte(jwtSecret),
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		newSID:  uuid.NewString,
	}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", domain.Session{}, domain.ErrInvalidCredentials
	}

	res, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return "", domain.Session{}, err
	}

	sess := domain.Session{
		Username: username,
		Role:     res.Role,
		Token:    basicToken(username, password),
		IssuedAt: s.now().UTC(),
	}

	sid := s.newSID()
	if err := s.store.Put(ctx, sid, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", domain.Session{}, fmt.Errorf("write session: %w", err)
	}

	cookie, err := s.mintCookie(sid, username)
	if err != nil {
		_ = s.store.Delete(ctx, sid)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", domain.Session{}, fmt.Errorf("mint session cookie: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	s.log.Info().Str("username", username).Str("role", res.Role).Msg("login succeeded")

	return cookie, sess, nil
}

func (s *SessionService) Resolve(ctx context.Context, cookie string) (string, domain.Session, error) {
	sid, err := s.verifyCookie(cookie)
	if err != nil {
		return "", domain.Session{}, domain.ErrSessionNotFound
	}

	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		// store miss, expiry, and store outage all read as logged out
		return "", domain.Session{}, domain.ErrSessionNotFound
	}

	if sess.Expired(s.ttl, s.now()) {
		_ = s.store.Delete(ctx, sid)
		return "", domain.Session{}, domain.ErrSessionNotFound
	}

	return sid, sess, nil
}

func (s *SessionService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	metrics.SessionsActive.Dec()
	return nil
}

// basicToken derives the backend bearer token from the credentials, exactly
// as the backend expects it: "Basic " + base64(username:password).
func basicToken(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func (s *SessionService) mintCookie(sid, username string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"sub": username,
		"iat": s.now().Unix(),
	}
	if s.ttl > 0 {
		claims["exp"] = s.now().Add(s.ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SessionService) verifyCookie(cookie string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
