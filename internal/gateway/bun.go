package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Bun persists documents through a Bun-backed SQL database. The same
// implementation serves the embedded sqlite backend and the remote libsql
// backend; only the driver behind the *bun.DB differs.
type Bun struct {
	db   *bun.DB
	name string
}

// NewBun constructs a SQL-backed gateway. The name distinguishes the
// embedded and remote variants in logs.
func NewBun(db *bun.DB, name string) *Bun {
	if strings.TrimSpace(name) == "" {
		name = BackendSQLite
	}
	return &Bun{db: db, name: name}
}

// Get retrieves the stored value for key.
func (g *Bun) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if g.db == nil {
		return nil, errors.New("gateway: sql backend requires a database")
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, ErrKeyRequired
	}

	var model siteConfig
	err := g.db.NewSelect().Model(&model).Where("key = ?", trimmed).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gateway: get %q: %w", trimmed, err)
	}
	return json.RawMessage(model.Value), nil
}

// Set upserts the value under key.
func (g *Bun) Set(ctx context.Context, key string, value json.RawMessage) error {
	if g.db == nil {
		return errors.New("gateway: sql backend requires a database")
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}
	if len(value) == 0 {
		return ErrValueRequired
	}

	model := siteConfig{Key: trimmed, Value: string(value)}
	_, err := g.db.NewInsert().
		Model(&model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gateway: set %q: %w", trimmed, err)
	}
	return nil
}

// EnsureSchema creates the site_config table when it does not exist yet.
func (g *Bun) EnsureSchema(ctx context.Context) error {
	if g.db == nil {
		return errors.New("gateway: sql backend requires a database")
	}
	_, err := g.db.NewCreateTable().
		Model((*siteConfig)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gateway: ensure schema: %w", err)
	}
	return nil
}

// Name identifies the backend.
func (g *Bun) Name() string {
	return g.name
}
