package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no session exists for a given id,
	// including sessions that have expired out of the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials covers rejected logins and malformed auth payloads.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when the backend reports a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a route's role set excludes the caller.
	ErrForbidden = errors.New("access forbidden")

	// ErrBackendUnavailable covers transport-level failures reaching the
	// school backend: connection refused, timeouts, malformed responses.
	ErrBackendUnavailable = errors.New("school service unavailable")
)

// BackendError carries a structured rejection from the school backend. The
// message is propagated verbatim so the user sees exactly what the backend
// said (e.g. "Invalid credentials").
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return e.Message
}

// Is lets callers match backend rejections against the sentinel errors
// without losing the verbatim message.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Status == 401 || e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}
