package gateway

import (
	"errors"
	"fmt"
)

// Kind is the closed error taxonomy at the gateway boundary. Every non-2xx
// response is mapped into exactly one kind here; call sites branch on kinds
// instead of inspecting raw status codes.
type Kind int

const (
	// KindValidation is a request the server rejected as malformed or
	// failing its business rules (4xx other than auth/not-found).
	KindValidation Kind = iota + 1
	// KindNotFound is a missing resource. Whether that is an error or an
	// expected-empty condition is the calling store's decision.
	KindNotFound
	// KindUnauthenticated is a request refused for lack of a valid session.
	KindUnauthenticated
	// KindOperational is everything else: transport failures, 5xx, CSRF
	// rejections.
	KindOperational
)

// Error is the gateway's failure value. Message carries the server-provided
// detail when the response body had one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return "api request failed"
}

// KindOf returns the error's gateway kind, or KindOperational for errors
// that did not originate here (transport failures, context cancellation).
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindOperational
}

// IsNotFound reports whether err is a gateway not-found.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnauthenticated reports whether err is a gateway auth failure.
func IsUnauthenticated(err error) bool { return KindOf(err) == KindUnauthenticated }

// Message returns the server-provided detail from err when present, or the
// fallback. It is the stores' single path to a human-readable error string.
func Message(err error, fallback string) string {
	var ge *Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return fallback
}
