package transitdb

import "errors"

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a create hits an existing record or a
	// delete would orphan referencing rows.
	ErrConflict = errors.New("conflict")
)
