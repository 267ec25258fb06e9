package pagevault

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pagevault/pagevault/pkg/blob"
	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/storage"
)

// client is the default Client implementation.
type client struct {
	catalog *catalog.Store
	blobs   blob.Store
	log     zerolog.Logger
}

// New creates a pagevault client. Without options the client is purely
// in-memory: blobs live in a process-local map and the catalog is not
// persisted.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	blobs := o.blobs
	if blobs == nil {
		if o.blobDir != "" {
			dir, err := blob.NewDir(o.blobDir)
			if err != nil {
				return nil, err
			}
			blobs = dir
		} else {
			blobs = blob.NewMemory()
		}
	}

	persister := o.persister
	if persister == nil && o.snapshotPath != "" {
		fp, err := storage.NewFile(o.snapshotPath)
		if err != nil {
			return nil, err
		}
		persister = fp
	}

	storeOpts := []catalog.Option{catalog.WithLogger(o.logger)}
	if persister != nil {
		storeOpts = append(storeOpts, catalog.WithPersister(persister))
	}
	storeOpts = append(storeOpts, o.storeOptions...)

	store, err := catalog.New(storeOpts...)
	if err != nil {
		return nil, err
	}

	return &client{
		catalog: store,
		blobs:   blobs,
		log:     o.logger,
	}, nil
}

// Ingest stores the content first and catalogs it second. If cataloging
// fails the stored blob is removed again on a best-effort basis so failed
// ingests leave nothing behind.
func (c *client) Ingest(ctx context.Context, content []byte, meta catalog.FileMeta) (catalog.File, error) {
	ref, err := c.blobs.Store(ctx, content)
	if err != nil {
		return catalog.File{}, err
	}

	file, err := c.catalog.CreateFile(meta, ref)
	if err != nil {
		if derr := c.blobs.Delete(ctx, ref); derr != nil {
			c.log.Warn().Err(derr).Str("ref", string(ref)).Msg("Failed to clean up blob after rejected ingest")
		}
		return catalog.File{}, err
	}

	c.log.Info().
		Str("file_id", string(file.ID)).
		Str("title", file.Title).
		Msg("Ingested file")
	return file, nil
}

// Content looks up an active file, records the access, and returns the
// stored content.
func (c *client) Content(ctx context.Context, id catalog.FileID) ([]byte, error) {
	file, err := c.catalog.GetFile(id)
	if err != nil {
		return nil, err
	}
	return c.blobs.Fetch(ctx, file.StorageRef)
}

// Remove soft-deletes the catalog record. The blob stays in place.
func (c *client) Remove(_ context.Context, id catalog.FileID) error {
	return c.catalog.DeleteFile(id)
}

// Catalog returns the underlying catalog store.
func (c *client) Catalog() *catalog.Store {
	return c.catalog
}
