// Package storage provides snapshot persistence backends for the catalog.
// A Store is constructed with exactly one backend implementing the
// catalog.Persister interface: file-backed for durability on disk, or
// memory-backed for tests and ephemeral catalogs.
package storage

import (
	"github.com/pagevault/pagevault/pkg/catalog"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ catalog.Persister = (*File)(nil)
	_ catalog.Persister = (*Memory)(nil)
)
