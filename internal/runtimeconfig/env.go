package runtimeconfig

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names understood by FromEnv.
const (
	EnvName         = "KNOWBASE_NAME"
	EnvAccessCode   = "KNOWBASE_ACCESS_CODE"
	EnvAddr         = "KNOWBASE_ADDR"
	EnvMountPath    = "KNOWBASE_MOUNT_PATH"
	EnvStorage      = "KNOWBASE_STORAGE"
	EnvRedisURL     = "KNOWBASE_REDIS_URL"
	EnvSQLitePath   = "KNOWBASE_SQLITE_PATH"
	EnvPreviewBytes = "KNOWBASE_PREVIEW_BYTES"
	EnvSessionTTL   = "KNOWBASE_SESSION_TTL"
	EnvLogLevel     = "KNOWBASE_LOG_LEVEL"
	EnvLogFormat    = "KNOWBASE_LOG_FORMAT"
)

// FromEnv builds a configuration from process environment variables,
// starting from the defaults. Unset variables leave the defaults in place;
// the result still needs Validate before use.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := envString(EnvName); v != "" {
		cfg.Name = v
	}
	if v := envString(EnvAccessCode); v != "" {
		cfg.AccessCode = v
	}
	if v := envString(EnvAddr); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := envString(EnvMountPath); v != "" {
		cfg.Routing.MountPath = v
	}
	if v := envString(EnvStorage); v != "" {
		cfg.Storage.Provider = strings.ToLower(v)
	}
	if v := envString(EnvRedisURL); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := envString(EnvSQLitePath); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := envString(EnvPreviewBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Markdown.PreviewBytes = n
		}
	}
	if v := envString(EnvSessionTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = d
		}
	}
	if v := envString(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := envString(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}

	return cfg
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
