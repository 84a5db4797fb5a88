package pages

import (
	"context"
	"sync"

	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// MemoryPageRepository is an in-memory page store for scaffolding and tests.
// It honours the same glob semantics as the persistent backends.
type MemoryPageRepository struct {
	mu      sync.RWMutex
	pages   map[string]interfaces.Page
	order   []string
	secrets map[string][]byte
}

// NewMemoryPageRepository constructs the repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:   make(map[string]interfaces.Page),
		secrets: make(map[string][]byte),
	}
}

var (
	_ interfaces.PageRepository = (*MemoryPageRepository)(nil)
	_ interfaces.SecretStore    = (*MemoryPageRepository)(nil)
)

// Get returns the record stored under key.
func (m *MemoryPageRepository) Get(_ context.Context, key string) (interfaces.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[key]
	if !ok {
		return interfaces.Page{}, &PageNotFoundError{Key: key}
	}
	return page, nil
}

// Upsert overwrites the record stored under key.
func (m *MemoryPageRepository) Upsert(_ context.Context, key string, page interfaces.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[key]; !ok {
		m.order = append(m.order, key)
	}
	m.pages[key] = page
	return nil
}

// Scan returns every entry whose key matches the glob pattern, in insertion
// order. Insertion order keeps tie-breaking deterministic in tests; the
// contract itself guarantees no particular order.
func (m *MemoryPageRepository) Scan(_ context.Context, pattern string) ([]interfaces.ScanEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []interfaces.ScanEntry
	for _, key := range m.order {
		if !globMatch(pattern, key) {
			continue
		}
		out = append(out, interfaces.ScanEntry{Key: key, Page: m.pages[key]})
	}
	return out, nil
}

// GetSecret returns the secret stored under name, or nil when absent.
func (m *MemoryPageRepository) GetSecret(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.secrets[name]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

// SetSecret stores value under name.
func (m *MemoryPageRepository) SetSecret(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	m.secrets[name] = copied
	return nil
}

// globMatch implements the subset of redis-style glob matching the scan
// contract needs: '*' matches any run of bytes (separators included) and
// '?' matches a single byte. Everything else is literal.
func globMatch(pattern, s string) bool {
	if pattern == "" {
		return s == ""
	}
	switch pattern[0] {
	case '*':
		for i := 0; i <= len(s); i++ {
			if globMatch(pattern[1:], s[i:]) {
				return true
			}
		}
		return false
	case '?':
		return s != "" && globMatch(pattern[1:], s[1:])
	default:
		return s != "" && s[0] == pattern[0] && globMatch(pattern[1:], s[1:])
	}
}
