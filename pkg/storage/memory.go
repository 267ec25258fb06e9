package storage

import (
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

// Memory persists catalog snapshots as serialized bytes held in process
// memory. It is the in-process-storage-backed backend variant, used for
// ephemeral catalogs and as the failure-injection seam in rollback tests.
type Memory struct {
	mu   sync.Mutex
	data []byte

	// FailNextSave makes the next Save call fail, for testing rollback.
	FailNextSave error
}

// NewMemory creates an empty in-process persister.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithData creates an in-process persister preloaded with a
// serialized snapshot.
func NewMemoryWithData(data []byte) *Memory {
	m := &Memory{data: make([]byte, len(data))}
	copy(m.data, data)
	return m
}

// Load parses the held bytes. Returns errors.ErrSnapshotNotFound when
// nothing has been saved yet.
func (m *Memory) Load() (*catalog.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, errors.ErrSnapshotNotFound
	}

	var snap catalog.Snapshot
	if err := yaml.Unmarshal(m.data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", "memory snapshot", err)
	}
	return &snap, nil
}

// Save serializes the snapshot into the held bytes.
func (m *Memory) Save(snap *catalog.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNextSave != nil {
		err := m.FailNextSave
		m.FailNextSave = nil
		return err
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.WrapParse("yaml", "memory snapshot", err)
	}
	m.data = data
	return nil
}

// Bytes returns a copy of the currently held serialized snapshot.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
