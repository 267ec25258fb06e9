// Package catalog provides the consistency and query engine for the
// pagevault HTML-file catalog. A Store owns the canonical collections of
// Files, Tags, Models, and Categories and mediates every mutation through a
// single entry point so that validation, persistence, stat recounting, and
// change notification happen as one unit.
//
// All File references to preset entities are id-based, so renaming a preset
// is O(1) on the entity itself and never rewrites file records. Preset
// deletion is blocked while any active file still references the entity.
//
// Example usage:
//
//	store, err := catalog.New(catalog.WithPersister(backend))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tag, _ := store.CreateTag("UI", "interface components", "#3366ff")
//	file, _ := store.CreateFile(catalog.FileMeta{
//	    Title: "Login button",
//	    Tags:  []catalog.TagID{tag.ID},
//	}, ref)
//
//	results := store.Search(catalog.Filter{Text: "button log"})
package catalog

import (
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pagevault/pagevault/pkg/errors"
	"github.com/pagevault/pagevault/pkg/logging"
)

// Store is the canonical in-memory catalog. One Store instance is
// constructed per process and passed by reference to all consumers; there is
// no ambient global instance.
//
// Writers are serialized through a single mutex: the Store accepts one
// mutation at a time to completion, so no interleaving of two mutations is
// observable. Reads never block on persistence and observe only
// fully-committed state.
type Store struct {
	mu       sync.RWMutex
	notifyMu sync.Mutex // serializes subscriber delivery in commit order

	files      *Files
	tags       map[TagID]*Tag
	models     map[ModelID]*Model
	categories map[CategoryID]*Category

	persister Persister
	notifier  *notifier
	stats     Stats
	log       zerolog.Logger

	now   func() utc.Time
	newID func() string
}

// storeOptions is a struct that contains the options for the store.
type storeOptions struct {
	persister Persister
	logger    zerolog.Logger
	now       func() utc.Time
	newID     func() string
}

// apply applies the given options to the store options.
func (o *storeOptions) apply(opts ...Option) *storeOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// storeDefaults returns the default options for a store.
func storeDefaults() *storeOptions {
	return &storeOptions{
		persister: nopPersister{},
		logger:    *logging.Default(),
		now:       utc.Now,
		newID:     uuid.NewString,
	}
}

// Option configures a Store.
type Option func(*storeOptions)

// WithPersister configures the storage backend the store persists snapshots
// through. Defaults to a no-op backend (purely in-memory catalog).
func WithPersister(p Persister) Option {
	return func(o *storeOptions) {
		if p != nil {
			o.persister = p
		}
	}
}

// WithLogger configures the logger used by the store.
func WithLogger(log zerolog.Logger) Option {
	return func(o *storeOptions) {
		o.logger = log
	}
}

// WithClock overrides the time source. Useful for deterministic tests.
func WithClock(now func() utc.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDFunc overrides id generation. Useful for deterministic tests.
func WithIDFunc(newID func() string) Option {
	return func(o *storeOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// New creates a Store and loads the snapshot from the configured backend.
// A missing snapshot yields an empty catalog; a malformed one is logged as a
// warning and also falls back to an empty, schema-valid catalog.
func New(opts ...Option) (*Store, error) {
	o := storeDefaults().apply(opts...)

	s := &Store{
		files:      NewFiles(),
		tags:       make(map[TagID]*Tag),
		models:     make(map[ModelID]*Model),
		categories: make(map[CategoryID]*Category),
		persister:  o.persister,
		log:        o.logger,
		now:        o.now,
		newID:      o.newID,
	}
	s.notifier = newNotifier(o.logger)

	s.load()
	s.recountLocked()

	return s, nil
}

// load pulls the snapshot from the persister into the collections.
// Load failures never abort construction: the catalog starts empty instead.
func (s *Store) load() {
	snap, err := s.persister.Load()
	if err != nil {
		if errors.Is(err, errors.ErrSnapshotNotFound) {
			return
		}
		s.log.Warn().Err(err).Msg("Failed to load catalog snapshot, starting with empty catalog")
		return
	}
	if snap == nil {
		return
	}

	for i := range snap.Tags {
		t := snap.Tags[i]
		s.tags[t.ID] = &t
	}
	for i := range snap.Models {
		m := snap.Models[i]
		s.models[m.ID] = &m
	}
	for i := range snap.Categories {
		c := snap.Categories[i]
		s.categories[c.ID] = &c
	}
	for i := range snap.Files {
		f := snap.Files[i].copy()
		s.resolveReferences(&f)
		s.files.Add(&f)
	}
}

// resolveReferences validates a loaded file's preset references. Legacy
// records that reference a preset by bare name are resolved to the id;
// references that resolve to nothing are cleared with a warning so that
// invariant 1 holds for every loaded record.
func (s *Store) resolveReferences(f *File) {
	if f.Category != "" {
		if _, ok := s.categories[f.Category]; !ok {
			if id, ok := s.categoryIDByName(string(f.Category)); ok {
				f.Category = id
			} else {
				s.log.Warn().
					Str("file_id", string(f.ID)).
					Str("category", string(f.Category)).
					Msg("Dropping unresolvable category reference")
				f.Category = ""
			}
		}
	}

	if f.Model != "" {
		if _, ok := s.models[f.Model]; !ok {
			if id, ok := s.modelIDByName(string(f.Model)); ok {
				f.Model = id
			} else {
				s.log.Warn().
					Str("file_id", string(f.ID)).
					Str("model", string(f.Model)).
					Msg("Dropping unresolvable model reference")
				f.Model = ""
			}
		}
	}

	if len(f.Tags) > 0 {
		kept := f.Tags[:0]
		for _, tid := range f.Tags {
			if _, ok := s.tags[tid]; ok {
				kept = append(kept, tid)
				continue
			}
			if id, ok := s.tagIDByName(string(tid)); ok {
				kept = append(kept, id)
				continue
			}
			s.log.Warn().
				Str("file_id", string(f.ID)).
				Str("tag", string(tid)).
				Msg("Dropping unresolvable tag reference")
		}
		f.Tags = kept
	}
}

// state is the rollback unit for the commit pipeline.
type state struct {
	files      *Files
	tags       map[TagID]*Tag
	models     map[ModelID]*Model
	categories map[CategoryID]*Category
}

// copyStateLocked deep-copies the mutable collections. Caller holds mu.
func (s *Store) copyStateLocked() state {
	st := state{
		files:      s.files.Copy(),
		tags:       make(map[TagID]*Tag, len(s.tags)),
		models:     make(map[ModelID]*Model, len(s.models)),
		categories: make(map[CategoryID]*Category, len(s.categories)),
	}
	for id, t := range s.tags {
		c := *t
		st.tags[id] = &c
	}
	for id, m := range s.models {
		c := *m
		st.models[id] = &c
	}
	for id, c := range s.categories {
		cc := *c
		st.categories[id] = &cc
	}
	return st
}

// restoreStateLocked reinstates a previously captured state. Caller holds mu.
func (s *Store) restoreStateLocked(st state) {
	s.files = st.files
	s.tags = st.tags
	s.models = st.models
	s.categories = st.categories
}

// errNoop signals that a mutation turned out to change nothing. commit
// treats it as success without persisting, recounting, or notifying.
var errNoop = errors.New("no-op mutation")

// commit runs a mutation as one unit: apply, persist, recount, notify.
// If mutate returns an error, or persisting the new snapshot fails, the
// in-memory state is rolled back to the pre-mutation snapshot before the
// error is returned, so partial effects are never observable.
func (s *Store) commit(operation string, mutate func() error) error {
	s.mu.Lock()
	backup := s.copyStateLocked()

	if err := mutate(); err != nil {
		s.restoreStateLocked(backup)
		s.mu.Unlock()
		if err == errNoop {
			return nil
		}
		return err
	}

	snap := s.snapshotLocked()
	if err := s.persister.Save(snap); err != nil {
		s.restoreStateLocked(backup)
		s.mu.Unlock()
		s.log.Error().Err(err).Str("operation", operation).Msg("Snapshot save failed, mutation rolled back")
		return errors.WrapPersistence("save", err)
	}

	s.recountLocked()
	s.log.Debug().Str("operation", operation).Msg("Catalog mutation committed")

	// Hand off to the notification lock before releasing the write lock so
	// subscribers see snapshots in commit order and may read the store.
	s.notifyMu.Lock()
	s.mu.Unlock()
	s.notifier.fire(snap)
	s.notifyMu.Unlock()

	return nil
}

// Snapshot returns a deep copy of the full committed catalog state.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked builds a snapshot of the current state. Caller holds mu.
func (s *Store) snapshotLocked() *Snapshot {
	return &Snapshot{
		Files:      s.files.List(),
		Tags:       s.tagsSortedLocked(),
		Models:     s.modelsSortedLocked(),
		Categories: s.categoriesSortedLocked(),
	}
}

// Subscribe registers a callback fired exactly once per committed mutation
// with the new full snapshot. Callbacks run synchronously in registration
// order; a panicking subscriber is recovered and logged without blocking
// delivery to the rest. The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	return s.notifier.subscribe(fn)
}
