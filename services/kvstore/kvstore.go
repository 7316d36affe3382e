package kvstore

import (
	"errors"
)

// ErrConflict is returned by CompareAndSwap when the stored version no longer
// matches the expected one, meaning another writer got there first.
var ErrConflict = errors.New("kvstore: version conflict")

/*
 * 'Store' is the persistence capability the rest of the portal is built on: a
 * flat key-value namespace holding JSON-encoded blobs. Every key carries a
 * version counter so that concurrent full-blob rewrites can be detected
 * instead of silently applying last-write-wins.
 *
 * Implementations: Memory (tests, single instance), Redis, Gorm (PostgreSQL).
 */
type Store interface {
	// Get decodes the blob stored under key into 'into'. The boolean is false
	// when the key is absent; absence is not an error.
	Get(key string, into interface{}) (bool, error)

	// Set unconditionally writes the blob and bumps its version.
	Set(key string, value interface{}) error

	// CompareAndSwap writes the blob only if the stored version equals
	// expected (0 for a key that must not exist yet). Returns the new version
	// or ErrConflict.
	CompareAndSwap(key string, value interface{}, expected uint64) (uint64, error)

	// Version returns the current version of the key, 0 when absent.
	Version(key string) (uint64, error)

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Keys lists every key starting with the given prefix.
	Keys(prefix string) ([]string, error)

	Close() error
}
