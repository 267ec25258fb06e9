package blob

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

// Memory stores blobs in a process-local map. Useful for tests.
type Memory struct {
	mu    sync.RWMutex
	blobs map[catalog.StorageRef][]byte
}

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[catalog.StorageRef][]byte)}
}

// Store keeps a copy of the content under a fresh ref.
func (m *Memory) Store(_ context.Context, content []byte) (catalog.StorageRef, error) {
	ref := catalog.StorageRef(uuid.NewString())

	data := make([]byte, len(content))
	copy(data, content)

	m.mu.Lock()
	m.blobs[ref] = data
	m.mu.Unlock()
	return ref, nil
}

// Fetch returns a copy of the content behind a ref.
func (m *Memory) Fetch(_ context.Context, ref catalog.StorageRef) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.blobs[ref]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFoundError("blob", string(ref))
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Delete removes the content behind a ref. Missing refs are a no-op.
func (m *Memory) Delete(_ context.Context, ref catalog.StorageRef) error {
	m.mu.Lock()
	delete(m.blobs, ref)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
