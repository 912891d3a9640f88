package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-landing/internal/schema"
)

// FetchRemoteConfig queries the config API for the current document and, on
// success, replaces the in-memory document. It is a best-effort background
// refresh: any failure (network error, non-success status, invalid body)
// leaves the current document untouched and is reported only through logs.
func (s *Store) FetchRemoteConfig(ctx context.Context) {
	base := strings.TrimRight(strings.TrimSpace(s.remoteURL), "/")
	if base == "" {
		s.logger.Debug("remote refresh skipped, no remote url configured")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/config", nil)
	if err != nil {
		s.logger.Warn("remote refresh request build failed", "error", err)
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("remote refresh failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("remote refresh got non-success status", "status", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		s.logger.Warn("remote refresh read failed", "error", err)
		return
	}

	cfg, err := decodeRemoteDocument(body)
	if err != nil {
		s.logger.Warn("remote refresh returned invalid document", "error", err)
		return
	}

	s.SetConfig(cfg)
	s.logger.Debug("document refreshed from remote")
}

// decodeRemoteDocument accepts either `{config: <document>}` or the document
// at the body root, mirroring the API's response shapes.
func decodeRemoteDocument(body []byte) (*schema.Config, error) {
	var wrapped struct {
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Config) > 0 {
		return schema.Validate(wrapped.Config)
	}
	return schema.Validate(body)
}
