// Package database persists canonical encodings of minimized
// falsifying examples between runs, keyed by property name. The
// search loop replays stored examples before drawing fresh ones, so a
// failure found once is found again immediately.
//
// Three backends are provided: in-process memory (the default and the
// test backend), SQLite for a local file, and Redis for a shared
// instance.
package database

import (
	"context"
	"errors"

	"github.com/quickmorph/morph"
)

// Common errors returned by database operations.
var (
	// ErrNotFound is returned when a value to delete is not stored.
	ErrNotFound = errors.New("database: value not found")

	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("database: invalid key")

	// ErrClosed is returned by operations on a closed database.
	ErrClosed = errors.New("database: closed")
)

// Database stores canonical values per key. Implementations keep
// insertion order and deduplicate structurally equal values, so
// saving the same minimized example twice is a no-op.
type Database interface {
	// Save stores value under key. Saving an already-stored value
	// does nothing.
	Save(ctx context.Context, key string, value morph.Basic) error

	// Fetch returns every value stored under key, oldest first. A
	// key with nothing stored yields an empty slice, not an error.
	Fetch(ctx context.Context, key string) ([]morph.Basic, error)

	// Delete removes value from key. Deleting a value that is not
	// stored fails with ErrNotFound.
	Delete(ctx context.Context, key string, value morph.Basic) error

	// Close releases the backend.
	Close() error
}
