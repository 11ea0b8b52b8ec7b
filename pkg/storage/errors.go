package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNotFound      = errors.New("not found")
	ErrStorageClosed = errors.New("storage is closed")
	ErrInvalidID     = errors.New("invalid ID")
	ErrMarshalFailed = errors.New("marshal failed")
)

// StorageError provides structured error information for storage operations.
type StorageError struct {
	Op     string // Operation that failed (e.g., "delete", "create")
	Entity string // "element", "node" or "dam"
	ID     int64  // Entity ID (if applicable)
	Cause  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a missing entity.
func NotFoundError(op, entity string, id int64) error {
	return &StorageError{Op: op, Entity: entity, ID: id, Cause: ErrNotFound}
}

// MarshalError creates a marshal error for the given entity.
func MarshalError(entity string, id int64, cause error) error {
	return &StorageError{
		Op:     "marshal",
		Entity: entity,
		ID:     id,
		Cause:  fmt.Errorf("%w: %v", ErrMarshalFailed, cause),
	}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClosed returns true if the error indicates the storage is closed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrStorageClosed)
}
