package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a domain identifier resolves to no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique domain identifier is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// NotFound wraps ErrNotFound with the entity and identifier that failed to resolve.
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
