package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a backend failure. Nothing is ever retried; every kind is
// terminal for the operation that hit it.
type Kind int

const (
	// KindTransport means no response reached us at all (connection
	// refused, DNS, timeout).
	KindTransport Kind = iota
	// KindUnauthorized is a 401 and triggers global session teardown.
	KindUnauthorized
	// KindConflict is a duplicate resource, e.g. an email that is already
	// registered.
	KindConflict
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is a 5xx.
	KindServer
	// KindRejected is any other refusal, including HTTP 200 bodies that
	// carry success:false.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "rejected"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: %s", e.Kind, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("backend %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("backend %s (HTTP %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

func kindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func IsTransport(err error) bool    { k, ok := kindOf(err); return ok && k == KindTransport }
func IsUnauthorized(err error) bool { k, ok := kindOf(err); return ok && k == KindUnauthorized }
func IsConflict(err error) bool     { k, ok := kindOf(err); return ok && k == KindConflict }
func IsNotFound(err error) bool     { k, ok := kindOf(err); return ok && k == KindNotFound }
func IsServer(err error) bool       { k, ok := kindOf(err); return ok && k == KindServer }

// isDuplicateMessage sniffs the backend's error text for the duplicate-email
// condition. The backend does not expose a structured code for this, so the
// substring match is part of the contract, fragile as it is.
func isDuplicateMessage(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "already exists") ||
		strings.Contains(m, "already registered") ||
		strings.Contains(m, "already in use") ||
		strings.Contains(m, "duplicate")
}
