package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired indicates the backend rejected the session token.
	// The cached token has already been cleared; the operator must renew
	// the session. Never retried.
	ErrAuthExpired = errors.New("session expired or unauthorized")

	// ErrServerUnavailable indicates retries were exhausted against a
	// transient failure (5xx or network). The mutation is considered
	// not-yet-applied.
	ErrServerUnavailable = errors.New("could not reach server")
)

// CallError is a non-transient backend rejection (validation, duplicate
// indicator, and other business rules). The message is surfaced verbatim.
type CallError struct {
	Status  int
	Message string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsConflict reports whether err is a backend business rejection, such as
// a duplicate indicator. Callers reconcile optimistic state by re-fetching.
func IsConflict(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}
