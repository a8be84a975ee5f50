// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a single polling cycle.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkFailure
	KindMalformedResponse
	KindTypeMismatch
	KindServerFailure
	KindUnexpectedStatus
)

func (k Kind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindMalformedResponse:
		return "malformed_response"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindServerFailure:
		return "server_failure"
	case KindUnexpectedStatus:
		return "unexpected_status"
	default:
		return "unknown"
	}
}

// Error is returned by every stage of a cycle: fetch, validation and interpretation.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int    // HTTP status of the API response, 0 when none was received
	Code       string // code reported by the API in an {error, code} payload
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrServerFailure) works on wrapped values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNetworkFailure    = &Error{Kind: KindNetworkFailure, Message: "network failure"}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse, Message: "malformed response"}
	ErrTypeMismatch      = &Error{Kind: KindTypeMismatch, Message: "type mismatch"}
	ErrServerFailure     = &Error{Kind: KindServerFailure, Message: "server failure"}
	ErrUnexpectedStatus  = &Error{Kind: KindUnexpectedStatus, Message: "unexpected status"}
)

// KindOf reports the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
