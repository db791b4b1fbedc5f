package db

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique or primary key
// constraint, on Postgres or on any dialect gorm translates.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsTransient reports whether err is a connection-level failure that happened
// before the server could have applied anything.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// RetryOnce runs fn and repeats it a single time when the first attempt failed
// with a transient error. fn must be a whole transaction so a retry never
// replays half-applied writes.
func RetryOnce(ctx context.Context, fn func() error) error {
	err := fn()
	if !IsTransient(err) || ctx.Err() != nil {
		return err
	}
	return fn()
}
