package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	landing "github.com/goliatone/go-landing"
	"github.com/goliatone/go-landing/internal/gateway"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configFromEnv()
	module, err := landing.New(ctx, cfg)
	if err != nil {
		log.Fatalf("landing-server: %v", err)
	}

	// Fire-and-forget seed of the default site so the first read never
	// waits on template parsing.
	go module.Seed(context.WithoutCancel(ctx), "config:default", false)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("landing-server: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("landing-server: shutdown: %v", err)
		}
	}
}

// configFromEnv builds the runtime configuration. A LibSQL URL selects the
// remote backend, a sqlite path the embedded one; otherwise storage stays
// in-memory. Hosted deployments get their scratch files redirected to a
// temp directory since the app bundle is read-only there.
func configFromEnv() landing.Config {
	cfg := landing.DefaultConfig()

	if addr := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); addr != "" {
		cfg.Server.Addr = addr
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if hosted() {
		dataDir = filepath.Join(os.TempDir(), "landing")
	}
	if dataDir == "" {
		dataDir = "data"
	}

	switch {
	case strings.TrimSpace(os.Getenv("LIBSQL_URL")) != "":
		cfg.Storage.Driver = gateway.BackendLibSQL
		cfg.Storage.DSN = strings.TrimSpace(os.Getenv("LIBSQL_URL"))
		cfg.Storage.AuthToken = strings.TrimSpace(os.Getenv("LIBSQL_AUTH_TOKEN"))
	case strings.TrimSpace(os.Getenv("SQLITE_PATH")) != "":
		cfg.Storage.Driver = gateway.BackendSQLite
		cfg.Storage.DSN = strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	default:
		cfg.Storage.Driver = gateway.BackendSQLite
		cfg.Storage.DSN = filepath.Join(dataDir, "landing.db")
	}
	cfg.Storage.FilePath = filepath.Join(dataDir, "configs.json")

	if !hosted() {
		cfg.Server.MirrorDir = dataDir
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(os.Getenv("LOG_FORMAT")); format != "" {
		cfg.Logging.Format = format
	}

	return cfg
}

// hosted reports whether the process runs on a managed platform where the
// working directory is not writable.
func hosted() bool {
	return os.Getenv("VERCEL") != "" || os.Getenv("HOSTED") != ""
}
