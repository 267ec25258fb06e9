package pagevault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevault/pagevault/pkg/blob"
	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
	"github.com/pagevault/pagevault/pkg/storage"
)

func TestClientIngestAndContent(t *testing.T) {
	ctx := context.Background()
	client, err := New()
	require.NoError(t, err)

	content := []byte("<html><body>login</body></html>")
	file, err := client.Ingest(ctx, content, catalog.FileMeta{
		Title:        "Login button",
		OriginalName: "login-button.html",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, file.ID)
	assert.NotEmpty(t, file.StorageRef)

	got, err := client.Content(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Content goes through GetFile, so the access was recorded.
	record, err := client.Catalog().PeekFile(file.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, record.AccessCount)
}

func TestClientIngestRejectedCleansUpBlob(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	client, err := New(WithBlobStore(blobs))
	require.NoError(t, err)

	_, err = client.Ingest(ctx, []byte("<html></html>"), catalog.FileMeta{
		Title: "x",
		Tags:  []catalog.TagID{"no-such-tag"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	// The stored blob was removed again.
	assert.Equal(t, 0, blobs.Len())
}

func TestClientRemove(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	client, err := New(WithBlobStore(blobs))
	require.NoError(t, err)

	file, err := client.Ingest(ctx, []byte("<html></html>"), catalog.FileMeta{Title: "x"})
	require.NoError(t, err)

	require.NoError(t, client.Remove(ctx, file.ID))

	_, err = client.Content(ctx, file.ID)
	assert.True(t, errors.IsNotFound(err))

	// Soft delete keeps the blob around.
	assert.Equal(t, 1, blobs.Len())

	// Removing again is a no-op success; removing the unknown is an error.
	assert.NoError(t, client.Remove(ctx, file.ID))
	assert.True(t, errors.IsNotFound(client.Remove(ctx, "missing")))
}

func TestClientPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	blobDir := filepath.Join(dir, "blobs")

	client1, err := New(WithPath(path), WithBlobDir(blobDir))
	require.NoError(t, err)

	store1 := client1.Catalog()
	tag, err := store1.CreateTag("UI", "", "")
	require.NoError(t, err)
	content := []byte("<html>persisted</html>")
	file, err := client1.Ingest(ctx, content, catalog.FileMeta{
		Title: "Login button",
		Tags:  []catalog.TagID{tag.ID},
	})
	require.NoError(t, err)

	// A fresh client over the same vault sees the committed state.
	client2, err := New(WithPath(path), WithBlobDir(blobDir))
	require.NoError(t, err)

	got, err := client2.Content(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	tags := client2.Catalog().Tags()
	require.Len(t, tags, 1)
	assert.Equal(t, "UI", tags[0].Name)
}

func TestClientWithPersister(t *testing.T) {
	persister := storage.NewMemory()
	client, err := New(WithPersister(persister))
	require.NoError(t, err)

	_, err = client.Ingest(context.Background(), []byte("<html></html>"), catalog.FileMeta{Title: "x"})
	require.NoError(t, err)

	assert.NotEmpty(t, persister.Bytes())
}

func TestClientWithStoreOptions(t *testing.T) {
	client, err := New(WithStoreOptions(
		catalog.WithIDFunc(func() string { return "fixed-id" }),
	))
	require.NoError(t, err)

	file, err := client.Ingest(context.Background(), []byte("<html></html>"), catalog.FileMeta{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, catalog.FileID("fixed-id"), file.ID)
}
