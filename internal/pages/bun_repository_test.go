package pages

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/snakefangox/knowbase/pkg/interfaces"
)

func newBunRepo(t *testing.T) *BunPageRepository {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	repo := NewBunPageRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return repo
}

func TestBunRepositoryRoundTrip(t *testing.T) {
	repo := newBunRepo(t)
	ctx := context.Background()

	page := interfaces.Page{
		Content: "<h1>Setup</h1>",
		Index:   "<ul><li>a</li></ul>",
		Preview: "# Setup",
		Title:   "Setup Guide",
	}
	if err := repo.Upsert(ctx, "notes/setup.md", page); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.Get(ctx, "notes/setup.md")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != page {
		t.Fatalf("Get() = %+v, want %+v", got, page)
	}
}

func TestBunRepositoryUpsertOverwrites(t *testing.T) {
	repo := newBunRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "a.md", interfaces.Page{Content: "old"}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, "a.md", interfaces.Page{Content: "new"}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.Get(ctx, "a.md")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content != "new" {
		t.Fatalf("Get().Content = %q, want %q", got.Content, "new")
	}
}

func TestBunRepositoryGetMissing(t *testing.T) {
	repo := newBunRepo(t)

	_, err := repo.Get(context.Background(), "absent.md")
	var notFound *PageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want PageNotFoundError", err)
	}
}

func TestBunRepositoryScanGlob(t *testing.T) {
	repo := newBunRepo(t)
	ctx := context.Background()

	keys := []string{"notes/setup.md", "notes/setup-advanced.md", "journal/2024.md"}
	for _, key := range keys {
		if err := repo.Upsert(ctx, key, interfaces.Page{Content: key}); err != nil {
			t.Fatalf("Upsert(%q) error = %v", key, err)
		}
	}

	entries, err := repo.Scan(ctx, "*setup*")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Scan(*setup*) returned %d entries, want 2", len(entries))
	}
}

func TestBunRepositorySecrets(t *testing.T) {
	repo := newBunRepo(t)
	ctx := context.Background()

	missing, err := repo.GetSecret(ctx, "master_key")
	if err != nil {
		t.Fatalf("GetSecret() error = %v", err)
	}
	if missing != nil {
		t.Fatalf("GetSecret() for absent secret = %v, want nil", missing)
	}

	if err := repo.SetSecret(ctx, "master_key", []byte("secret-value")); err != nil {
		t.Fatalf("SetSecret() error = %v", err)
	}
	if err := repo.SetSecret(ctx, "master_key", []byte("rotated")); err != nil {
		t.Fatalf("SetSecret() rotate error = %v", err)
	}
	got, err := repo.GetSecret(ctx, "master_key")
	if err != nil {
		t.Fatalf("GetSecret() error = %v", err)
	}
	if string(got) != "rotated" {
		t.Fatalf("GetSecret() = %q, want %q", got, "rotated")
	}
}

func TestBunRepositoryScanIsCaseSensitive(t *testing.T) {
	repo := newBunRepo(t)
	ctx := context.Background()

	for _, key := range []string{"notes/Setup.md", "notes/setup.md"} {
		if err := repo.Upsert(ctx, key, interfaces.Page{Content: key}); err != nil {
			t.Fatalf("Upsert(%q) error = %v", key, err)
		}
	}

	entries, err := repo.Scan(ctx, "*setup*")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "notes/setup.md" {
		t.Fatalf("Scan(*setup*) = %+v, want only notes/setup.md", entries)
	}

	entries, err = repo.Scan(ctx, "*Setup*")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "notes/Setup.md" {
		t.Fatalf("Scan(*Setup*) = %+v, want only notes/Setup.md", entries)
	}
}

func TestGlobEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"*setup*", "*setup*"},
		{"a?c", "a?c"},
		{"notes/[draft].md", "notes/[[]draft].md"},
	}
	for _, tc := range cases {
		if got := globEscape(tc.in); got != tc.want {
			t.Errorf("globEscape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
