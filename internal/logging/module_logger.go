package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	rootModule    = "landing"
	storeModule   = "landing.store"
	gatewayModule = "landing.gateway"
	seedingModule = "landing.seeding"
	httpModule    = "landing.httpapi"
)

const (
	fieldSiteKey = "site_key"
	fieldBackend = "backend"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoreLogger returns the logger namespace reserved for the document store.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// GatewayLogger returns the logger namespace reserved for persistence backends.
func GatewayLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, gatewayModule)
}

// SeedingLogger returns the logger namespace reserved for the seeding service.
func SeedingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedingModule)
}

// HTTPLogger returns the logger namespace reserved for the config API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithSiteKey enriches the provided logger with the site key a request or
// storage operation is acting on. Empty values are ignored.
func WithSiteKey(logger interfaces.Logger, key string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		fields[fieldSiteKey] = trimmed
	}
	return WithFields(logger, fields)
}

// WithBackend tags log entries with the active persistence backend name.
func WithBackend(logger interfaces.Logger, backend string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(backend); trimmed != "" {
		fields[fieldBackend] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
