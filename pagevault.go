// Package pagevault provides the main entry point for the pagevault
// HTML-file cataloging system. It wires the catalog consistency and query
// engine to a snapshot persistence backend and a blob store for the
// uploaded HTML content, behind one Client constructed once per process.
//
// Example usage:
//
//	client, err := pagevault.New(
//	    pagevault.WithPath("./vault/catalog.yaml"),
//	    pagevault.WithBlobDir("./vault/blobs"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Ingest an uploaded HTML document together with its metadata.
//	file, err := client.Ingest(ctx, content, catalog.FileMeta{
//	    Title:        "Login button",
//	    OriginalName: "login-button.html",
//	})
//
//	// Search the catalog.
//	results := client.Catalog().Search(catalog.Filter{Text: "button log"})
package pagevault

import (
	"context"

	"github.com/pagevault/pagevault/pkg/catalog"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client is the high-level pagevault API: ingestion, content retrieval, and
// access to the catalog engine.
type Client interface {
	// Ingest stores uploaded content in the blob store and catalogs it with
	// the supplied metadata as one step.
	Ingest(ctx context.Context, content []byte, meta catalog.FileMeta) (catalog.File, error)

	// Content returns the HTML content of an active file and records the
	// access on its catalog record.
	Content(ctx context.Context, id catalog.FileID) ([]byte, error)

	// Remove soft-deletes a file record. The blob is retained so the record
	// can be resurrected by hand if needed.
	Remove(ctx context.Context, id catalog.FileID) error

	// Catalog returns the catalog store for queries, stats, preset
	// management, and change subscriptions.
	Catalog() *catalog.Store
}
