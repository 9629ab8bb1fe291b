package database

import (
	"context"
	"sync"

	"github.com/quickmorph/morph"
)

// Memory is the in-process Database used by default and in tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]memoryEntry
	closed  bool
}

type memoryEntry struct {
	fingerprint string
	value       morph.Basic
}

var _ Database = (*Memory)(nil)

// NewMemory returns an empty in-process database.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]memoryEntry)}
}

// Save stores value under key unless an equal value is already there.
func (m *Memory) Save(_ context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	fp := morph.Fingerprint(value)
	for _, e := range m.entries[key] {
		if e.fingerprint == fp {
			return nil
		}
	}
	m.entries[key] = append(m.entries[key], memoryEntry{fingerprint: fp, value: value})
	return nil
}

// Fetch returns the stored values for key, oldest first.
func (m *Memory) Fetch(_ context.Context, key string) ([]morph.Basic, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	stored := m.entries[key]
	out := make([]morph.Basic, len(stored))
	for i, e := range stored {
		out[i] = e.value
	}
	return out, nil
}

// Delete removes value from key.
func (m *Memory) Delete(_ context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	fp := morph.Fingerprint(value)
	stored := m.entries[key]
	for i, e := range stored {
		if e.fingerprint == fp {
			m.entries[key] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Close marks the database closed; all further operations fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
