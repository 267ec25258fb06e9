package catalog

import (
	"github.com/pagevault/pagevault/pkg/errors"
)

// Snapshot is the full serialized state of a catalog: every file record
// (soft-deleted ones included) plus all preset entities. It is the unit of
// persistence and the payload delivered to change subscribers.
//
// Files appear in insertion order; presets are sorted by name, so two
// snapshots of identical catalogs serialize identically.
type Snapshot struct {
	Files      []File     `json:"files" yaml:"files"`
	Tags       []Tag      `json:"tags" yaml:"tags"`
	Models     []Model    `json:"models" yaml:"models"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	out := &Snapshot{
		Files:      make([]File, len(s.Files)),
		Tags:       make([]Tag, len(s.Tags)),
		Models:     make([]Model, len(s.Models)),
		Categories: make([]Category, len(s.Categories)),
	}
	for i := range s.Files {
		out.Files[i] = s.Files[i].copy()
	}
	copy(out.Tags, s.Tags)
	copy(out.Models, s.Models)
	copy(out.Categories, s.Categories)
	return out
}

// Persister is the storage collaborator a Store persists snapshots through.
// Load returns errors.ErrSnapshotNotFound when no snapshot exists yet.
// Save must be atomic from the caller's point of view: a failed save leaves
// the previously saved snapshot intact.
type Persister interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// nopPersister is the default backend: nothing is loaded or saved.
// Useful for purely in-memory catalogs and tests.
type nopPersister struct{}

func (nopPersister) Load() (*Snapshot, error) { return nil, errors.ErrSnapshotNotFound }
func (nopPersister) Save(*Snapshot) error     { return nil }
