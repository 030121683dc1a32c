package repository

import "errors"

var (
	// ErrNotFound is returned by lookups when the referenced row is absent.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned by writes when no storage backend is
	// configured or reachable. Reads degrade to empty results instead.
	ErrUnavailable = errors.New("storage unavailable")
)
