// Package app wires configuration, logging and the registry and tracker
// clients for the registrysync CLI.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/registrysync/internal/github"
	"github.com/agentstation/registrysync/internal/metrics"
	"github.com/agentstation/registrysync/internal/registryapi"
	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/issues"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/registry/memory"
)

// App holds the dependencies shared by the commands.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	mu       sync.Mutex
	registry registry.Client
	tracker  issues.Tracker
	resolver *country.Resolver
	metrics  *metrics.Recorder
	pending  []waiter
}

// waiter is a sync whose background calls must drain before shutdown.
type waiter interface {
	Wait()
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
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

// Registry returns the registry client, created on first use. A configured
// snapshot selects the in-memory registry.
func (a *App) Registry() (registry.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.registry != nil {
		return a.registry, nil
	}

	if a.config.RegistrySnapshot != "" {
		r, err := memory.Load(a.config.RegistrySnapshot)
		if err != nil {
			return nil, err
		}
		a.registry = r
		return r, nil
	}

	c, err := registryapi.New(a.config.RegistryURL, a.config.RegistryUser, a.config.RegistryPassword,
		transport.WithUserAgent("registrysync/"+a.version))
	if err != nil {
		return nil, err
	}
	a.registry = c
	return c, nil
}

// Tracker returns the issue tracker, created on first use.
func (a *App) Tracker() (issues.Tracker, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tracker != nil {
		return a.tracker, nil
	}
	t, err := github.New(a.config.GithubToken, a.config.GithubRepo,
		github.WithTransport(transport.WithUserAgent("registrysync/"+a.version)))
	if err != nil {
		return nil, err
	}
	a.tracker = t
	return t, nil
}

// Resolver returns the country resolver with the configured extra aliases.
func (a *App) Resolver() (*country.Resolver, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolver != nil {
		return a.resolver, nil
	}
	cfg := country.DefaultConfig()
	if a.config.CountryAliases != "" {
		aliases, err := country.LoadAliases(a.config.CountryAliases)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithAliases(aliases)
	}
	a.resolver = country.NewResolver(cfg)
	return a.resolver, nil
}

// Metrics returns the run metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.metrics == nil {
		a.metrics = metrics.New()
	}
	return a.metrics
}

func (a *App) track(w waiter) {
	a.mu.Lock()
	a.pending = append(a.pending, w)
	a.mu.Unlock()
}

// Shutdown waits for background calls of the syncs started by this app,
// bounded by ctx.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, w := range pending {
			w.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WrapResource("drain", "background calls", "", ctx.Err())
	}
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

// WithRegistry sets the registry client (useful for testing).
func WithRegistry(c registry.Client) Option {
	return func(a *App) error {
		a.registry = c
		return nil
	}
}

// WithTracker sets the issue tracker (useful for testing).
func WithTracker(t issues.Tracker) Option {
	return func(a *App) error {
		a.tracker = t
		return nil
	}
}

// WithOutput sets the writer of command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
