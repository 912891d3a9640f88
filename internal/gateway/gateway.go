package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound indicates that a requested site key has no stored document.
// Absence is an expected state, distinct from a storage failure.
var ErrNotFound = errors.New("gateway: key not found")

// ErrKeyRequired indicates that gateway operations require a non-empty key.
var ErrKeyRequired = errors.New("gateway: key is required")

// ErrValueRequired indicates that Set was called with an empty value.
var ErrValueRequired = errors.New("gateway: value is required")

// Backend names reported by Name and the startup selection log.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendLibSQL = "libsql"
	BackendFile   = "file"
)

// Gateway is the storage-backend contract the rest of the system programs
// against: two data operations over a logical string key plus a one-time
// schema hook. Every backend honours the identical semantics so callers are
// backend-agnostic.
type Gateway interface {
	// Get returns the stored document for key, or ErrNotFound when the key
	// has never been written.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set upserts the document under key. A returned error means the write
	// did not happen; Set never reports success for a failed write.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// EnsureSchema prepares backend storage (DDL, file creation). Safe to
	// call more than once.
	EnsureSchema(ctx context.Context) error

	// Name reports which backend is active, for logs and health checks.
	Name() string
}

func cloneValue(value json.RawMessage) json.RawMessage {
	if value == nil {
		return nil
	}
	return append(json.RawMessage(nil), value...)
}
