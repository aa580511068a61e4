package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks failures of the backend itself, as opposed to
	// a query that could not be built or evaluated.
	ErrUnavailable = errors.New("database unavailable")
)

// classify wraps connectivity failures in ErrUnavailable and returns every
// other error unchanged.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
			sqlite3.SQLITE_IOERR, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_FULL:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	// database/sql reports a closed pool with a plain error value
	if strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(classify(err), ErrUnavailable)
}
