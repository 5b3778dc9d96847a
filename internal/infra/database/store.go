package database

import (
	"context"
	"errors"
	"fmt"
)

// DefaultOwnerColumn is the owner column on every dashboard table.
const DefaultOwnerColumn = "user_id"

var (
	ErrNotFound = errors.New("record not found")
	// ErrAccessDenied is the backend refusing the caller's credentials or
	// a row level security policy denying the operation.
	ErrAccessDenied = errors.New("access denied by backend")
)

// Store is the record backend. Rows go in and out as JSON so the same
// repositories work against PostgREST and plain Postgres.
type Store interface {
	List(ctx context.Context, table string, q Query) ([]byte, error)
	// Insert returns the stored row as a JSON object.
	Insert(ctx context.Context, table string, row any, q Query) ([]byte, error)
	Update(ctx context.Context, table, id string, patch map[string]any, q Query) ([]byte, error)
	Delete(ctx context.Context, table, id string, q Query) error
	Ping(ctx context.Context) error
}

// Query scopes a store call to one owner.
type Query struct {
	Owner       string
	OwnerColumn string
	// Token is the caller's access token. The REST backend forwards it so
	// row level security applies; the SQL backend ignores it.
	Token string
	// AllOwners drops the owner scope. Only background workers running
	// with the service key use it.
	AllOwners bool
	Filters   map[string]string
	OrderBy   string
	Ascending bool
	Limit     int
}

func (q Query) ownerColumn() string {
	if q.OwnerColumn == "" {
		return DefaultOwnerColumn
	}
	return q.OwnerColumn
}

func (q Query) orderColumn() string {
	if q.OrderBy == "" {
		return "created_at"
	}
	return q.OrderBy
}

// RejectedError is a write the backend refused: constraint violations,
// policy failures and malformed payloads. It is not retryable.
type RejectedError struct {
	Status  int
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rejected by backend (%s): %s", e.Code, e.Message)
	}
	return "rejected by backend: " + e.Message
}

func IsRejected(err error) bool {
	var rej *RejectedError
	return errors.As(err, &rej)
}
