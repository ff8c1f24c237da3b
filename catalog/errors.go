package catalog

import (
	"errors"
)

var (
	// ErrBookNotFound is returned when no book exists for an id.
	ErrBookNotFound = errors.New("book does not exist")

	// ErrCategoryNotFound is returned when no category exists for an id.
	ErrCategoryNotFound = errors.New("category does not exist")

	// ErrCategoryInUse is returned when a category that books still refer to should be deleted.
	ErrCategoryInUse = errors.New("category is still in use")

	// ErrInvalidCommand is returned when a command fails validation.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidBookType is returned when a book type can not be parsed.
	ErrInvalidBookType = errors.New("invalid book type")
)
