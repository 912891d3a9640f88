package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File mirrors the gateway contract onto a single JSON file. It exists as the
// degraded fallback when no SQL backend is reachable: an in-process map,
// loaded from disk at construction and flushed synchronously on every Set.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// NewFile constructs a file-backed gateway rooted at path. The file is read
// eagerly; a missing file starts empty, a malformed one is an error so a bad
// store is never silently truncated.
func NewFile(path string) (*File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("gateway: file backend requires a path")
	}

	f := &File{
		path:   trimmed,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("gateway: read %s: %w", trimmed, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("gateway: parse %s: %w", trimmed, err)
	}
	return f, nil
}

// Get retrieves the stored value for key.
func (f *File) Get(_ context.Context, key string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, ErrKeyRequired
	}

	f.mu.Lock()
	value, ok := f.values[trimmed]
	f.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return cloneValue(value), nil
}

// Set upserts the value under key and flushes the whole map to disk before
// returning. A flush failure rolls the in-memory state back so a reported
// error never leaves a phantom write behind.
func (f *File) Set(_ context.Context, key string, value json.RawMessage) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}
	if len(value) == 0 {
		return ErrValueRequired
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.values[trimmed]
	f.values[trimmed] = cloneValue(value)
	if err := f.flushLocked(); err != nil {
		if existed {
			f.values[trimmed] = previous
		} else {
			delete(f.values, trimmed)
		}
		return fmt.Errorf("gateway: set %q: %w", trimmed, err)
	}
	return nil
}

// EnsureSchema creates the parent directory for the backing file.
func (f *File) EnsureSchema(context.Context) error {
	dir := filepath.Dir(f.path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gateway: ensure schema: %w", err)
	}
	return nil
}

// Name identifies the backend.
func (f *File) Name() string {
	return BackendFile
}

func (f *File) flushLocked() error {
	encoded, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, encoded, 0o644)
}
