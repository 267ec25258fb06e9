package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesCommits(t *testing.T) {
	s := newTestStore(t)

	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) {
		snaps = append(snaps, snap)
	})

	tag, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)
	_, err = s.CreateFile(FileMeta{Title: "x", Tags: []TagID{tag.ID}}, "blob")
	require.NoError(t, err)

	require.Len(t, snaps, 2, "one notification per committed mutation")
	assert.Len(t, snaps[0].Tags, 1)
	assert.Empty(t, snaps[0].Files)
	assert.Len(t, snaps[1].Files, 1)
}

func TestSubscribeRegistrationOrder(t *testing.T) {
	s := newTestStore(t)

	var order []string
	s.Subscribe(func(Snapshot) { order = append(order, "first") })
	s.Subscribe(func(Snapshot) { order = append(order, "second") })

	_, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	s := newTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })

	_, err := s.CreateTag("a", "", "")
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe() // double unsubscribe is harmless

	_, err = s.CreateTag("b", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	s := newTestStore(t)

	second := 0
	s.Subscribe(func(Snapshot) { panic("boom") })
	s.Subscribe(func(Snapshot) { second++ })

	tag, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)

	// The panic neither aborted the commit nor starved the second subscriber.
	assert.Equal(t, 1, second)
	_, err = s.Tag(tag.ID)
	assert.NoError(t, err)
}

func TestNoNotificationWithoutCommit(t *testing.T) {
	persister := &testPersister{}
	s := newTestStore(t, WithPersister(persister))

	file, err := s.CreateFile(FileMeta{Title: "x"}, "blob")
	require.NoError(t, err)
	require.NoError(t, s.DeleteFile(file.ID))

	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })

	// Failed mutation: no notification.
	_, err = s.CreateFile(FileMeta{Title: "y", Tags: []TagID{"nope"}}, "blob")
	require.Error(t, err)
	assert.Equal(t, 0, calls)

	// No-op mutation (repeat soft delete): no notification.
	require.NoError(t, s.DeleteFile(file.ID))
	assert.Equal(t, 0, calls)

	// Failed persistence: no notification.
	persister.failNext = assert.AnError
	_, err = s.CreateTag("UI", "", "")
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := newTestStore(t)

	var observedFiles int
	s.Subscribe(func(Snapshot) {
		// Reads against the store from inside a callback must not deadlock.
		observedFiles = len(s.Files())
	})

	_, err := s.CreateFile(FileMeta{Title: "x"}, "blob")
	require.NoError(t, err)

	assert.Equal(t, 1, observedFiles)
}

func TestSubscriberSnapshotIsDetached(t *testing.T) {
	s := newTestStore(t)

	s.Subscribe(func(snap Snapshot) {
		for i := range snap.Files {
			snap.Files[i].Title = "mutated"
		}
	})

	_, err := s.CreateFile(FileMeta{Title: "x"}, "blob")
	require.NoError(t, err)

	assert.Equal(t, "x", s.Files()[0].Title)
}
