package client

import (
	"errors"
	"fmt"
)

// ErrSessionInvalid means the request carried a missing or malformed user
// identity. Fatal to the current flow; the caller must re-authenticate.
var ErrSessionInvalid = errors.New("session invalid: sign in again")

// TransportError wraps a network failure, timeout, or non-2xx reply from
// the upstream wellness service. A single attempt is made; retry policy is
// the caller's problem.
type TransportError struct {
	Op     string // logical operation, e.g. "profile", "mood/log"
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a TransportError anywhere in its chain.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
