package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-landing/internal/gateway"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/seeding"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	// defaultSite keys requests that arrive without a usable Host header.
	defaultSite = "default"

	// keyPrefix namespaces documents in the gateway.
	keyPrefix = "config:"

	maxBodyBytes = 4 << 20
)

// Option configures the API during construction.
type Option func(*API)

// WithLoggerProvider attaches a logger provider to the API.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(a *API) {
		if provider != nil {
			a.logger = logging.HTTPLogger(provider)
		}
	}
}

// WithMirrorDir enables the localhost file mirror: published documents are
// additionally written to dir when the request targets a local host. The
// gateway write stays the source of truth; mirror failures downgrade to a
// warning in the response.
func WithMirrorDir(dir string) Option {
	return func(a *API) {
		a.mirrorDir = dir
	}
}

// API translates GET/POST over the config resource into gateway and seeding
// calls, keyed by the requesting domain.
type API struct {
	gateway   gateway.Gateway
	seeder    *seeding.Service
	mirrorDir string
	logger    interfaces.Logger
}

// New constructs the config API.
func New(gw gateway.Gateway, seeder *seeding.Service, opts ...Option) *API {
	a := &API{
		gateway: gw,
		seeder:  seeder,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Register mounts the config routes on mux. The /publish and /storage aliases
// predate /config and behave identically.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /config", a.handleGet)
	mux.HandleFunc("POST /config", a.handlePost)
	mux.HandleFunc("POST /publish", a.handlePost)
	mux.HandleFunc("POST /storage", a.handlePost)
	mux.HandleFunc("GET /health", a.handleHealth)
}

// Handler returns a mux with the config routes mounted.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.Register(mux)
	return mux
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	key := a.siteKey(r)
	logger := logging.WithSiteKey(a.logger, key)
	noCache(w)

	value, err := a.gateway.Get(r.Context(), key)
	if errors.Is(err, gateway.ErrNotFound) {
		// First read for this site: seed the default document and retry once.
		if _, seedErr := a.seeder.Seed(r.Context(), key, false); seedErr != nil {
			logger.Error("seed on first read failed", "error", seedErr)
			writeError(w, seedErr)
			return
		}
		value, err = a.gateway.Get(r.Context(), key)
	}
	if err != nil {
		if !errors.Is(err, gateway.ErrNotFound) {
			logger.Error("config read failed", "error", err)
		}
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

func (a *API) handlePost(w http.ResponseWriter, r *http.Request) {
	key := a.siteKey(r)
	logger := logging.WithSiteKey(a.logger, key)

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "unable to read request body",
		})
		return
	}

	document, err := extractDocument(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	if err := a.gateway.Set(r.Context(), key, document); err != nil {
		logger.Error("config write failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "failed to persist configuration",
		})
		return
	}

	response := successResponse{Success: true}
	if warning := a.mirror(r, key, document); warning != "" {
		response.Warning = warning
	}

	logger.Info("configuration published")
	writeJSON(w, http.StatusOK, response)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": a.gateway.Name(),
	})
}

// siteKey derives the storage key from the request host: port stripped,
// lowercased, falling back to the default site when no host is present.
func (a *API) siteKey(r *http.Request) string {
	host := strings.TrimSpace(r.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		host = defaultSite
	}
	return keyPrefix + host
}

// extractDocument accepts either `{config: <document>}` or the document at
// the body root. Empty bodies and empty documents are rejected; an object
// with no keys would silently blank the stored configuration.
func extractDocument(body []byte) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, errors.New("request body is required")
	}

	var wrapped struct {
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errors.New("request body must be valid JSON")
	}

	document := json.RawMessage(body)
	if len(wrapped.Config) > 0 && string(wrapped.Config) != "null" {
		document = wrapped.Config
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(document, &fields); err != nil {
		return nil, errors.New("configuration must be a JSON object")
	}
	if len(fields) == 0 {
		return nil, errors.New("configuration must not be empty")
	}
	return document, nil
}

// mirror writes the published document next to the server when the request
// comes from a local host. Best effort only; a failure is reported as a
// warning so the caller can tell saved from saved-with-warning.
func (a *API) mirror(r *http.Request, key string, document json.RawMessage) string {
	if strings.TrimSpace(a.mirrorDir) == "" {
		return ""
	}
	if !isLocalRequest(r) {
		return ""
	}

	name := strings.TrimPrefix(key, keyPrefix) + ".json"
	path := filepath.Join(a.mirrorDir, name)

	if err := os.MkdirAll(a.mirrorDir, 0o755); err != nil {
		a.logger.Warn("local mirror directory unavailable", "path", path, "error", err)
		return "saved to database, local file mirror failed"
	}
	if err := os.WriteFile(path, document, 0o644); err != nil {
		a.logger.Warn("local mirror write failed", "path", path, "error", err)
		return "saved to database, local file mirror failed"
	}
	return ""
}

func isLocalRequest(r *http.Request) bool {
	host := strings.TrimSpace(r.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "localhost" || host == "127.0.0.1" || host == "::1" || host == "[::1]"
}
