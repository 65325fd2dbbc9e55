package service

import (
	"errors"
	"fmt"

	"github.com/Dan9191/post-service/internal/repository"
)

// Kind classifies a service error for the transport layer
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidCredentials
	KindInvalidToken
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindInvalidToken:
		return "invalid_token"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a client-facing failure. Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or 0 if err is not a service error
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func validationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func notFoundError(msg string, err error) error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

// storeError turns a repository failure into a service error. Misses become
// notFound, retryable failures become KindUnavailable, and anything else is
// returned wrapped as an internal error.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNoRecord) && notFound != "":
		return notFoundError(notFound, err)
	case errors.Is(err, repository.ErrUnavailable):
		return &Error{Kind: KindUnavailable, Message: "Service temporarily unavailable, retry later", Err: err}
	default:
		return err
	}
}
