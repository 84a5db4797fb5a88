package knowbase

import (
	"github.com/snakefangox/knowbase/internal/runtimeconfig"
)

// Config re-exports the runtime configuration consumed by New.
type Config = runtimeconfig.Config

// Storage provider identifiers accepted by Config.Storage.Provider.
const (
	StorageRedis  = runtimeconfig.StorageRedis
	StorageSQLite = runtimeconfig.StorageSQLite
	StorageMemory = runtimeconfig.StorageMemory
)

// DefaultConfig returns the baseline configuration: redis storage, the /w
// mount path, 500-byte previews, and 24h sessions.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv builds a configuration from KNOWBASE_* environment
// variables, falling back to defaults for anything unset.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv()
}
