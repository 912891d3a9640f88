package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Config selects and parameterizes the persistence backend.
type Config struct {
	// Driver picks the backend: memory, sqlite, libsql, or file.
	Driver string

	// DSN is the sqlite file path or the libsql URL.
	DSN string

	// AuthToken authenticates against a remote libsql endpoint.
	AuthToken string

	// FilePath is the JSON file used by the file backend, and the fallback
	// target when a SQL backend cannot be opened.
	FilePath string
}

// Select opens the configured backend and runs EnsureSchema on it. Selection
// is explicit and logged: when a SQL backend cannot be opened or prepared and
// a fallback file path is configured, Select degrades to the file backend with
// a loud warning instead of failing startup.
func Select(ctx context.Context, cfg Config, provider interfaces.LoggerProvider) (Gateway, error) {
	logger := logging.GatewayLogger(provider)

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = BackendMemory
	}

	switch driver {
	case BackendMemory:
		logging.WithBackend(logger, BackendMemory).Info("storage backend selected")
		return NewMemory(), nil

	case BackendFile:
		gw, err := newFileBackend(ctx, cfg.FilePath)
		if err != nil {
			return nil, err
		}
		logging.WithBackend(logger, BackendFile).Info("storage backend selected", "path", cfg.FilePath)
		return gw, nil

	case BackendSQLite, BackendLibSQL:
		gw, err := newSQLBackend(ctx, driver, cfg)
		if err == nil {
			logging.WithBackend(logger, gw.Name()).Info("storage backend selected")
			return gw, nil
		}
		if strings.TrimSpace(cfg.FilePath) == "" {
			return nil, err
		}
		logger.Warn("sql backend unavailable, falling back to file storage",
			"backend", driver,
			"path", cfg.FilePath,
			"error", err,
		)
		fallback, ferr := newFileBackend(ctx, cfg.FilePath)
		if ferr != nil {
			return nil, fmt.Errorf("gateway: fallback after %v: %w", err, ferr)
		}
		logging.WithBackend(logger, BackendFile).Info("storage backend selected", "path", cfg.FilePath)
		return fallback, nil

	default:
		return nil, fmt.Errorf("gateway: unknown driver %q", driver)
	}
}

func newSQLBackend(ctx context.Context, driver string, cfg Config) (*Bun, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("gateway: %s backend requires a dsn", driver)
	}

	sqlDriver := "sqlite3"
	if driver == BackendLibSQL {
		sqlDriver = "libsql"
		if token := strings.TrimSpace(cfg.AuthToken); token != "" && !strings.Contains(dsn, "authToken=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn = dsn + sep + "authToken=" + token
		}
	}

	sqldb, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("gateway: open %s: %w", driver, err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	gw := NewBun(db, driver)
	if err := gw.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return gw, nil
}

func newFileBackend(ctx context.Context, path string) (*File, error) {
	gw, err := NewFile(path)
	if err != nil {
		return nil, err
	}
	if err := gw.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return gw, nil
}
