package di

import (
	"context"
	"net/http"
	"testing"

	"github.com/snakefangox/knowbase/internal/pages"
	"github.com/snakefangox/knowbase/internal/runtimeconfig"
)

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.AccessCode = "test-code"
	cfg.Storage.Provider = runtimeconfig.StorageMemory
	return cfg
}

func TestNewWiresMemoryBackend(t *testing.T) {
	c, err := New(memoryConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if c.PageService() == nil || c.SearchService() == nil || c.AuthService() == nil {
		t.Fatal("container left a service nil")
	}
	if c.PageRepository() == nil || c.SecretStore() == nil {
		t.Fatal("container left storage nil")
	}

	mux := http.NewServeMux()
	if err := c.WikiAPI().Register(mux); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestNewRequiresAccessCode(t *testing.T) {
	cfg := memoryConfig()
	cfg.AccessCode = ""

	if _, err := New(cfg); err == nil {
		t.Fatal("New() expected validation error for missing access code")
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Provider = "etcd"

	if _, err := New(cfg); err == nil {
		t.Fatal("New() expected error for unknown storage provider")
	}
}

func TestWithPageRepositoryOverride(t *testing.T) {
	repo := pages.NewMemoryPageRepository()

	c, err := New(memoryConfig(), WithPageRepository(repo, repo))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if c.PageRepository() != repo {
		t.Fatal("container ignored the injected repository")
	}

	if _, err := c.PageService().Assemble(context.Background(), "a.md", "# A"); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if _, err := repo.Get(context.Background(), "a.md"); err != nil {
		t.Fatalf("page missing from injected repository: %v", err)
	}
}

func TestNewWiresSQLiteBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Provider = runtimeconfig.StorageSQLite
	cfg.Storage.SQLitePath = "file::memory:?cache=shared"

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, err := c.PageService().Assemble(context.Background(), "a.md", "# A"); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	got, err := c.PageService().Get(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content == "" {
		t.Fatal("Get() returned empty content")
	}
}
