// Package landing assembles the landing page configuration runtime: schema
// validation, the in-memory document store, the persistence gateway, the
// seeding service and the HTTP config API.
package landing

import (
	"context"
	"net/http"

	"github.com/goliatone/go-landing/internal/gateway"
	"github.com/goliatone/go-landing/internal/httpapi"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/logging/gologger"
	"github.com/goliatone/go-landing/internal/schema"
	"github.com/goliatone/go-landing/internal/seeding"
	"github.com/goliatone/go-landing/internal/store"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Validate checks a whole raw document against the schema, filling defaults.
func Validate(data []byte) (*schema.Config, error) {
	return schema.Validate(data)
}

// ValidateSection checks one raw section payload against the schema.
func ValidateSection(data []byte) (*schema.Section, error) {
	return schema.ValidateSection(data)
}

// Module wires the runtime services together behind one entry point.
type Module struct {
	config   Config
	provider interfaces.LoggerProvider
	gateway  gateway.Gateway
	seeder   *seeding.Service
	store    *store.Store
	api      *httpapi.API
	logger   interfaces.Logger
}

// New constructs the module from cfg: logger provider, backend selection,
// seeding service, document store and HTTP API, in that order.
func New(ctx context.Context, cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}

	gw, err := gateway.Select(ctx, gateway.Config{
		Driver:    cfg.Storage.Driver,
		DSN:       cfg.Storage.DSN,
		AuthToken: cfg.Storage.AuthToken,
		FilePath:  cfg.Storage.FilePath,
	}, provider)
	if err != nil {
		return nil, err
	}

	seeder := seeding.New(gw, provider)

	documents := store.New(
		store.WithLoggerProvider(provider),
		store.WithCachePath(cfg.Store.CachePath),
		store.WithRemoteURL(cfg.Store.RemoteURL),
	)

	api := httpapi.New(gw, seeder,
		httpapi.WithLoggerProvider(provider),
		httpapi.WithMirrorDir(cfg.Server.MirrorDir),
	)

	return &Module{
		config:   cfg,
		provider: provider,
		gateway:  gw,
		seeder:   seeder,
		store:    documents,
		api:      api,
		logger:   logging.ModuleLogger(provider, ""),
	}, nil
}

// Config returns the configuration the module was built from.
func (m *Module) Config() Config {
	return m.config
}

// Gateway exposes the active persistence backend.
func (m *Module) Gateway() gateway.Gateway {
	return m.gateway
}

// Seeder exposes the seeding service.
func (m *Module) Seeder() *seeding.Service {
	return m.seeder
}

// Store exposes the in-memory document store.
func (m *Module) Store() *store.Store {
	return m.store
}

// API exposes the HTTP config API.
func (m *Module) API() *httpapi.API {
	return m.api
}

// Handler returns the HTTP handler serving the config routes.
func (m *Module) Handler() http.Handler {
	return m.api.Handler()
}

// LoggerProvider exposes the module's logger provider so host applications
// can share it.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Seed runs a startup seeding pass for key, logging rather than failing when
// the pass cannot complete. Sites are also seeded lazily on first read.
func (m *Module) Seed(ctx context.Context, key string, force bool) {
	if _, err := m.seeder.Seed(ctx, key, force); err != nil {
		m.logger.Warn("startup seed failed", "site_key", key, "error", err)
	}
}
