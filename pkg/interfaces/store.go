package interfaces

import "context"

// ScanEntry is one (key, value) pair yielded by a repository scan.
type ScanEntry struct {
	Key  string
	Page Page
}

// PageRepository is the key-value persistence boundary for Page records.
// Keys are case-sensitive PathKeys; values are full records with no partial
// updates. Glob semantics for Scan patterns are delegated to the backend.
type PageRepository interface {
	// Get returns the record stored under key. Absence is reported through
	// a not-found error, not a zero value.
	Get(ctx context.Context, key string) (Page, error)
	// Upsert overwrites any record stored under key.
	Upsert(ctx context.Context, key string, page Page) error
	// Scan returns every (key, value) pair whose key matches pattern.
	// Result order is backend-defined and not guaranteed stable.
	Scan(ctx context.Context, pattern string) ([]ScanEntry, error)
}

// SecretStore persists small operational secrets (e.g. the session master
// key) alongside the page records.
type SecretStore interface {
	// GetSecret returns the secret stored under name, or nil when absent.
	GetSecret(ctx context.Context, name string) ([]byte, error)
	// SetSecret stores value under name, overwriting any previous value.
	SetSecret(ctx context.Context, name string, value []byte) error
}
