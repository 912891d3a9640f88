package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-landing/internal/schema"
)

// loadCache reads the local snapshot written by a previous session. Any
// failure (missing file, malformed JSON, schema drift) just means starting
// from the default document; the cache is a convenience, not a store of
// record.
func (s *Store) loadCache() (*schema.Config, bool) {
	path := strings.TrimSpace(s.cachePath)
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache snapshot unreadable", "path", path, "error", err)
		}
		return nil, false
	}

	cfg, err := schema.Validate(data)
	if err != nil {
		s.logger.Warn("cache snapshot invalid, starting from default", "path", path, "error", err)
		return nil, false
	}

	s.logger.Debug("restored document from cache snapshot", "path", path)
	return cfg, true
}

// writeCacheLocked mirrors the current document to the snapshot file. Write
// failures are logged and otherwise ignored; a mutation never fails because
// the mirror is unavailable. Caller holds s.mu.
func (s *Store) writeCacheLocked() {
	path := strings.TrimSpace(s.cachePath)
	if path == "" {
		return
	}

	encoded, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		s.logger.Warn("cache snapshot encode failed", "path", path, "error", err)
		return
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Warn("cache snapshot directory unavailable", "path", path, "error", err)
			return
		}
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		s.logger.Warn("cache snapshot write failed", "path", path, "error", err)
	}
}
