// Package app provides the application context and dependency management for
// the pagevault CLI. It centralizes configuration, logging, and the pagevault
// client instance so commands stay thin.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/pagevault/pagevault"
	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

// App represents the pagevault CLI application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.Mutex
	client pagevault.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the pagevault client, creating it lazily from the
// configuration. Thread-safe; only one instance is created.
func (a *App) Client() (pagevault.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	client, err := pagevault.New(
		pagevault.WithPath(a.config.CatalogPath()),
		pagevault.WithBlobDir(a.config.BlobDir()),
		pagevault.WithLogger(*a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = client
	return client, nil
}

// Catalog returns the catalog store from the client instance. Convenience
// for commands that only read or mutate catalog records.
func (a *App) Catalog() (*catalog.Store, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	return client.Catalog(), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(client pagevault.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
