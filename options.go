package pagevault

import (
	"github.com/rs/zerolog"

	"github.com/pagevault/pagevault/pkg/blob"
	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/logging"
)

// options are the configured options for the client.
type options struct {
	snapshotPath string
	persister    catalog.Persister
	blobDir      string
	blobs        blob.Store
	logger       zerolog.Logger
	storeOptions []catalog.Option
}

// defaults returns the default options for a client.
func defaults() *options {
	return &options{
		logger: *logging.Default(),
	}
}

// apply applies the given options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Client.
type Option func(*options)

// WithPath configures a file-backed snapshot persister at the given path.
func WithPath(path string) Option {
	return func(o *options) {
		o.snapshotPath = path
	}
}

// WithPersister configures a custom snapshot persistence backend.
// Takes precedence over WithPath.
func WithPersister(p catalog.Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}

// WithBlobDir configures a directory-backed blob store at the given path.
func WithBlobDir(dir string) Option {
	return func(o *options) {
		o.blobDir = dir
	}
}

// WithBlobStore configures a custom blob storage collaborator.
// Takes precedence over WithBlobDir.
func WithBlobStore(s blob.Store) Option {
	return func(o *options) {
		o.blobs = s
	}
}

// WithLogger configures the logger used by the client and its catalog.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithStoreOptions passes additional options through to the catalog store,
// such as catalog.WithClock or catalog.WithIDFunc.
func WithStoreOptions(opts ...catalog.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}
