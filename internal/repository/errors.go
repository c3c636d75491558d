package repository

import "errors"

// Boundary errors returned by every repository. Services match on these
// instead of driver errors so the storage layer stays swappable.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert hits a uniqueness constraint,
	// e.g. a concurrent submission creation for the same (classroom, student).
	ErrDuplicate = errors.New("record already exists")
)
