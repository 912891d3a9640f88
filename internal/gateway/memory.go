package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Memory stores documents in-process for tests and lightweight deployments.
// Last write wins; no schema is enforced by the backend itself.
type Memory struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewMemory constructs an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

// Get retrieves the stored value for key.
func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, ErrKeyRequired
	}

	m.mu.RLock()
	value, ok := m.values[trimmed]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return cloneValue(value), nil
}

// Set upserts the value under key.
func (m *Memory) Set(_ context.Context, key string, value json.RawMessage) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}
	if len(value) == 0 {
		return ErrValueRequired
	}

	m.mu.Lock()
	m.values[trimmed] = cloneValue(value)
	m.mu.Unlock()
	return nil
}

// EnsureSchema is a no-op for the in-memory backend.
func (m *Memory) EnsureSchema(context.Context) error {
	return nil
}

// Name identifies the backend.
func (m *Memory) Name() string {
	return BackendMemory
}
