package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Files: []catalog.File{
			{
				ID:         "file-1",
				StorageRef: "blob-1",
				Title:      "Login button",
				Tags:       []catalog.TagID{"tag-1"},
				Status:     catalog.FileStatusActive,
			},
		},
		Tags: []catalog.Tag{
			{ID: "tag-1", Name: "UI", Color: "#3366ff"},
		},
		Categories: []catalog.Category{
			{ID: "cat-1", Name: "Auth"},
		},
	}
}

func TestFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	require.NoError(t, f.Save(testSnapshot()))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, catalog.FileID("file-1"), loaded.Files[0].ID)
	assert.Equal(t, []catalog.TagID{"tag-1"}, loaded.Files[0].Tags)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "UI", loaded.Tags[0].Name)
	require.Len(t, loaded.Categories, 1)
}

func TestFileEmptyPath(t *testing.T) {
	_, err := NewFile("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFileLoadMissing(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	_, err = f.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSnapshotNotFound))
}

func TestFileLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Load()
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestFileSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "catalog.yaml")
	f, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Save(testSnapshot()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	f, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Save(testSnapshot()))

	// A second save replaces the file and leaves no temp files behind.
	second := testSnapshot()
	second.Tags[0].Name = "Interface"
	require.NoError(t, f.Save(second))

	loaded, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "Interface", loaded.Tags[0].Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryRoundtrip(t *testing.T) {
	m := NewMemory()

	_, err := m.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSnapshotNotFound))

	require.NoError(t, m.Save(testSnapshot()))

	loaded, err := m.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, "UI", loaded.Tags[0].Name)

	// Preloading from serialized bytes behaves like a prior save.
	clone := NewMemoryWithData(m.Bytes())
	loaded, err = clone.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Files, 1)
}

func TestMemoryFailNextSave(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Save(testSnapshot()))
	before := m.Bytes()

	m.FailNextSave = assert.AnError
	err := m.Save(&catalog.Snapshot{})
	require.Error(t, err)

	// The held snapshot is untouched and the failure is one-shot.
	assert.Equal(t, before, m.Bytes())
	require.NoError(t, m.Save(&catalog.Snapshot{}))
}

func TestMemoryLoadMalformed(t *testing.T) {
	m := NewMemoryWithData([]byte("{{{not yaml"))

	_, err := m.Load()
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
