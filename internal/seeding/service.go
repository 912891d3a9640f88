package seeding

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-landing/internal/defaults"
	"github.com/goliatone/go-landing/internal/gateway"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Result reports what a seeding pass did for a key.
type Result struct {
	Key    string
	Seeded bool
	Forced bool
}

// Service writes the bundled default document into the persistence gateway.
// It backs both the startup seed and the read path's seed-on-absence retry.
type Service struct {
	gateway gateway.Gateway
	logger  interfaces.Logger
}

// New constructs a seeding service bound to the given gateway.
func New(gw gateway.Gateway, provider interfaces.LoggerProvider) *Service {
	return &Service{
		gateway: gw,
		logger:  logging.SeedingLogger(provider),
	}
}

// Seed ensures key holds a document. Without force it is insert-if-absent: an
// existing document is left untouched and the call reports Seeded=false. With
// force the default template overwrites whatever is stored. Seed is
// idempotent; running it twice leaves the same state as running it once.
func (s *Service) Seed(ctx context.Context, key string, force bool) (Result, error) {
	trimmed := strings.TrimSpace(key)
	result := Result{Key: trimmed, Forced: force}
	if trimmed == "" {
		return result, gateway.ErrKeyRequired
	}

	logger := logging.WithSiteKey(s.logger, trimmed)

	if !force {
		_, err := s.gateway.Get(ctx, trimmed)
		if err == nil {
			logger.Debug("seed skipped, document already present")
			return result, nil
		}
		if !errors.Is(err, gateway.ErrNotFound) {
			return result, wrapReadError(err)
		}
	}

	value, err := defaults.Raw()
	if err != nil {
		if value == nil {
			return result, wrapTemplateError(err)
		}
		logger.Warn("default template degraded to fallback document", "error", err)
	}

	if err := s.gateway.Set(ctx, trimmed, value); err != nil {
		return result, wrapWriteError(err)
	}

	result.Seeded = true
	logger.Info("seeded default document", "forced", force)
	return result, nil
}
