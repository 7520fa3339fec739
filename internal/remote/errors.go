package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote-call failure so callers can branch without
// matching error text.
type Kind int

const (
	// KindConfiguration indicates required credentials or identifiers
	// are missing; fatal before any network call.
	KindConfiguration Kind = iota
	// KindAuth indicates the authentication probe was rejected.
	KindAuth
	// KindNotFound indicates the remote resource does not exist.
	KindNotFound
	// KindTransient indicates a timeout or connection failure worth retrying.
	KindTransient
	// KindValidation indicates the remote rejected a payload (non-2xx).
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuth:
		return "authentication"
	case KindNotFound:
		return "not found"
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a structured remote-call failure. Status and Body carry the
// remote response when one was received, for user-visible diagnostics.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two remote errors by kind, so sentinel-style checks like
// errors.Is(err, &Error{Kind: KindNotFound}) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Retryable reports whether the failure is worth another attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient
}

// NewConfigurationError reports missing credentials or identifiers.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Err: err}
}

// NewAuthError reports a rejected authentication probe.
func NewAuthError(op string, status int, body string) *Error {
	return &Error{Kind: KindAuth, Op: op, Status: status, Body: body}
}

// NewNotFoundError reports a missing remote resource.
func NewNotFoundError(op string, status int, body string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Status: status, Body: body}
}

// NewTransientError reports a transport-level failure.
func NewTransientError(op string, err error) *Error {
	return &Error{Kind: KindTransient, Op: op, Err: err}
}

// NewValidationError reports a payload rejected by the remote.
func NewValidationError(op string, status int, body string) *Error {
	return &Error{Kind: KindValidation, Op: op, Status: status, Body: body}
}

// KindOf returns the kind of err if it is (or wraps) a remote Error.
func KindOf(err error) (Kind, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a remote not-found failure.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsTransient reports whether err is a retryable transport failure.
func IsTransient(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindTransient
}
