package landing

import (
	"errors"
	"strings"

	"github.com/goliatone/go-landing/internal/gateway"
)

// ErrStorageDriverUnknown indicates an unrecognized storage driver name.
var ErrStorageDriverUnknown = errors.New("landing config: storage driver is invalid")

// ErrStorageDSNRequired indicates a SQL driver was selected without a DSN.
var ErrStorageDSNRequired = errors.New("landing config: storage dsn is required for sql drivers")

// ErrStorageFilePathRequired indicates the file driver was selected without a path.
var ErrStorageFilePathRequired = errors.New("landing config: storage file path is required for the file driver")
var ErrLoggingLevelInvalid = errors.New("landing config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("landing config: logging format is invalid")

// Config aggregates the module's runtime settings. Fields intentionally use
// simple types so host applications can populate them from any source.
type Config struct {
	Storage StorageConfig
	Server  ServerConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	Driver    string
	DSN       string
	AuthToken string
	FilePath  string
}

// ServerConfig captures the HTTP listener settings.
type ServerConfig struct {
	Addr      string
	MirrorDir string
}

// StoreConfig captures the in-memory document store settings.
type StoreConfig struct {
	CachePath string
	RemoteURL string
}

// LoggingConfig captures options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a working configuration: in-memory storage, the
// standard listen address, console logging at info.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: gateway.BackendMemory,
		},
		Server: ServerConfig{
			Addr: ":3001",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks cross-field consistency before the module is wired.
func (c Config) Validate() error {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch driver {
	case "", gateway.BackendMemory:
	case gateway.BackendSQLite, gateway.BackendLibSQL:
		if strings.TrimSpace(c.Storage.DSN) == "" && strings.TrimSpace(c.Storage.FilePath) == "" {
			return ErrStorageDSNRequired
		}
	case gateway.BackendFile:
		if strings.TrimSpace(c.Storage.FilePath) == "" {
			return ErrStorageFilePathRequired
		}
	default:
		return ErrStorageDriverUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}
