package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/coachflow/internal/entity"
)

// DomainError is a request the service understood but refuses, such as an
// unknown record id or a disallowed status change.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

// FetchError is a failure to reach or read the backend. Callers render it
// as an error state for the kind; nothing is retried automatically.
type FetchError struct {
	Kind entity.Kind
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
