package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var (
	// ErrNoRecord is returned when a lookup matches no row
	ErrNoRecord = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnavailable marks storage failures that are safe to retry
	ErrUnavailable = errors.New("storage unavailable")
)

// Repository provides database operations
type Repository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewRepository initializes a new repository. Every statement is bounded
// by timeout; a zero timeout leaves the caller's context untouched.
func NewRepository(db *sql.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// classify maps driver errors onto the package sentinels and wraps them
// with the failed operation. Any failure after ctx is done counts as
// unavailable, whatever error the driver chose to surface.
func classify(ctx context.Context, op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNoRecord)
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return fmt.Errorf("%s: %w: %s", op, ErrDuplicate, pqErr.Constraint)
		case pqErr.Code.Class() == "08",
			pqErr.Code == "40001", // serialization_failure
			pqErr.Code == "40P01", // deadlock_detected
			pqErr.Code == "53300", // too_many_connections
			pqErr.Code == "57014", // query_canceled
			pqErr.Code == "57P03": // cannot_connect_now
			return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
