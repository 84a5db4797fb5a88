package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrAccessCodeRequired rejects configurations without an operator access code.
var ErrAccessCodeRequired = errors.New("knowbase config: access code is required")

// ErrStorageProviderUnknown rejects unrecognised storage providers.
var ErrStorageProviderUnknown = errors.New("knowbase config: storage provider is invalid")

// ErrRedisURLRequired rejects redis storage without a connection URL.
var ErrRedisURLRequired = errors.New("knowbase config: redis URL is required when storage provider is redis")

// ErrSQLitePathRequired rejects sqlite storage without a database path.
var ErrSQLitePathRequired = errors.New("knowbase config: sqlite path is required when storage provider is sqlite")

var ErrMountPathInvalid = errors.New("knowbase config: mount path must start with a single /")
var ErrPreviewBytesInvalid = errors.New("knowbase config: preview byte limit must be positive")
var ErrSessionTTLInvalid = errors.New("knowbase config: session TTL must be positive")
var ErrLoggingLevelInvalid = errors.New("knowbase config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("knowbase config: logging format is invalid")

// Storage provider identifiers accepted by Config.Storage.Provider.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config aggregates the process-wide settings for a knowbase instance. It is
// constructed once during bootstrap and passed by reference into the
// components that need it; nothing reads it as ambient state.
type Config struct {
	// Name is the display name shown on every rendered page.
	Name string
	// AccessCode is the single operator credential; compared against the
	// trimmed submitted value.
	AccessCode string
	HTTP       HTTPConfig
	Routing    RoutingConfig
	Storage    StorageConfig
	Markdown   MarkdownConfig
	Session    SessionConfig
	Logging    LoggingConfig
}

// HTTPConfig captures transport settings.
type HTTPConfig struct {
	Addr string
}

// RoutingConfig captures where rendered pages are mounted. Root-relative
// links inside documents are rewritten under MountPath.
type RoutingConfig struct {
	MountPath string
}

// StorageConfig selects and parameterises the page store backend.
type StorageConfig struct {
	Provider   string
	RedisURL   string
	SQLitePath string
}

// MarkdownConfig tunes the content pipeline.
type MarkdownConfig struct {
	// PreviewBytes caps the stored preview excerpt. The cut point only ever
	// advances to the next rune boundary, so stored previews may exceed the
	// cap by up to three bytes.
	PreviewBytes int
}

// SessionConfig captures cookie session behaviour.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// LoggingConfig selects the logger provider behaviour.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the baseline configuration used by the binaries and
// the test suites.
func DefaultConfig() Config {
	return Config{
		Name: "knowbase",
		HTTP: HTTPConfig{Addr: ":8080"},
		Routing: RoutingConfig{
			MountPath: "/w",
		},
		Storage: StorageConfig{
			Provider: StorageRedis,
		},
		Markdown: MarkdownConfig{
			PreviewBytes: 500,
		},
		Session: SessionConfig{
			CookieName: "knowbase_session",
			TTL:        24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks cross-field consistency before the container wires any
// services.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AccessCode) == "" {
		return ErrAccessCodeRequired
	}

	switch c.Storage.Provider {
	case StorageRedis:
		if strings.TrimSpace(c.Storage.RedisURL) == "" {
			return ErrRedisURLRequired
		}
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return ErrSQLitePathRequired
		}
	case StorageMemory:
	default:
		return ErrStorageProviderUnknown
	}

	if !strings.HasPrefix(c.Routing.MountPath, "/") || strings.HasPrefix(c.Routing.MountPath, "//") {
		return ErrMountPathInvalid
	}

	if c.Markdown.PreviewBytes <= 0 {
		return ErrPreviewBytesInvalid
	}

	if c.Session.TTL <= 0 {
		return ErrSessionTTLInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
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
