package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/foodshare/internal/model"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidTransitionError reports a claim status change that is not allowed.
type InvalidTransitionError struct {
	ClaimID int64
	From    model.ClaimStatus
	To      model.ClaimStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("claim %d: cannot change status from %s to %s", e.ClaimID, e.From, e.To)
}

// ValidationError reports input rejected before it reaches the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsForeignKeyViolation reports whether err is a SQLite foreign key failure.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
