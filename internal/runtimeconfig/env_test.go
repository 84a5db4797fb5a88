package runtimeconfig

import (
	"testing"
	"time"
)

func TestFromEnvDefaultsWhenUnset(t *testing.T) {
	cfg := FromEnv()
	want := DefaultConfig()

	if cfg.Name != want.Name || cfg.HTTP.Addr != want.HTTP.Addr {
		t.Fatalf("FromEnv() = %+v, want defaults %+v", cfg, want)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvName, "docs")
	t.Setenv(EnvAccessCode, "hunter2")
	t.Setenv(EnvStorage, "SQLITE")
	t.Setenv(EnvSQLitePath, "/tmp/kb.db")
	t.Setenv(EnvSessionTTL, "2h")
	t.Setenv(EnvPreviewBytes, "750")

	cfg := FromEnv()
	if cfg.Name != "docs" {
		t.Fatalf("Name = %q, want docs", cfg.Name)
	}
	if cfg.AccessCode != "hunter2" {
		t.Fatalf("AccessCode = %q, want hunter2", cfg.AccessCode)
	}
	if cfg.Storage.Provider != StorageSQLite {
		t.Fatalf("Provider = %q, want %q", cfg.Storage.Provider, StorageSQLite)
	}
	if cfg.Storage.SQLitePath != "/tmp/kb.db" {
		t.Fatalf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Fatalf("TTL = %v, want 2h", cfg.Session.TTL)
	}
	if cfg.Markdown.PreviewBytes != 750 {
		t.Fatalf("PreviewBytes = %d, want 750", cfg.Markdown.PreviewBytes)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv(EnvPreviewBytes, "lots")
	t.Setenv(EnvSessionTTL, "soon")

	cfg := FromEnv()
	want := DefaultConfig()
	if cfg.Markdown.PreviewBytes != want.Markdown.PreviewBytes {
		t.Fatalf("PreviewBytes = %d, want default %d", cfg.Markdown.PreviewBytes, want.Markdown.PreviewBytes)
	}
	if cfg.Session.TTL != want.Session.TTL {
		t.Fatalf("TTL = %v, want default %v", cfg.Session.TTL, want.Session.TTL)
	}
}
