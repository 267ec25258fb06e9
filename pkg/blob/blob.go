// Package blob defines the storage collaborator holding uploaded HTML
// content. The catalog treats refs as opaque handles; only the ingestion
// layer dereferences them.
package blob

import (
	"context"

	"github.com/pagevault/pagevault/pkg/catalog"
)

// Store holds raw uploaded content outside the catalog.
type Store interface {
	// Store writes content and returns an opaque ref to it.
	Store(ctx context.Context, content []byte) (catalog.StorageRef, error)

	// Fetch reads the content behind a ref.
	Fetch(ctx context.Context, ref catalog.StorageRef) ([]byte, error)

	// Delete removes the content behind a ref.
	Delete(ctx context.Context, ref catalog.StorageRef) error
}

// Compile-time interface checks to ensure proper implementation.
var (
	_ Store = (*Dir)(nil)
	_ Store = (*Memory)(nil)
)
