package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("repository: duplicate")
	// ErrUnavailable indicates the store could not be reached or the
	// operation failed for an infrastructure reason.
	ErrUnavailable = errors.New("repository: unavailable")
)

// NotFoundError wraps ErrNotFound with entity context.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// DuplicateError wraps ErrDuplicate with constraint context.
func DuplicateError(entity, detail string) error {
	return fmt.Errorf("%w: %s %s", ErrDuplicate, entity, detail)
}
