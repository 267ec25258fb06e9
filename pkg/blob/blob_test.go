package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevault/pagevault/pkg/errors"
)

func TestDirStoreFetchDelete(t *testing.T) {
	ctx := context.Background()
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	content := []byte("<html><body>hello</body></html>")
	ref, err := d.Store(ctx, content)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	got, err := d.Fetch(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, d.Delete(ctx, ref))

	_, err = d.Fetch(ctx, ref)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	// Deleting a missing blob is a no-op success.
	assert.NoError(t, d.Delete(ctx, ref))
}

func TestDirCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	_, err := NewDir(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirEmptyRoot(t *testing.T) {
	_, err := NewDir("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestDirRefsAreUnique(t *testing.T) {
	ctx := context.Background()
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	ref1, err := d.Store(ctx, []byte("one"))
	require.NoError(t, err)
	ref2, err := d.Store(ctx, []byte("one"))
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2, "identical content still gets distinct refs")
}

func TestMemoryStoreFetchDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	content := []byte("<html></html>")
	ref, err := m.Store(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	got, err := m.Fetch(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Fetched bytes are a copy.
	got[0] = 'X'
	again, err := m.Fetch(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, content, again)

	require.NoError(t, m.Delete(ctx, ref))
	assert.Equal(t, 0, m.Len())

	_, err = m.Fetch(ctx, ref)
	assert.True(t, errors.IsNotFound(err))
}
