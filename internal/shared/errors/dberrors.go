package errors

import (
	"strings"
)

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL 1062
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	return false
}

// IsForeignKeyError checks if the error is a foreign key violation.
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL 1451 / 1452
	if strings.Contains(errStr, "a foreign key constraint fails") {
		return true
	}
	return strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "violates foreign key constraint")
}

// MapDBError translates store constraint violations into typed errors so raw
// driver codes never reach the caller. Errors that are already AppErrors and
// errors that match no known constraint are returned unchanged.
func MapDBError(err error, resource string) error {
	if err == nil || IsAppError(err) {
		return err
	}
	switch {
	case IsDuplicateError(err):
		return NewConflictError(resource + " already exists")
	case IsForeignKeyError(err):
		return NewNotFoundError("referenced " + resource + " not found")
	}
	return err
}
