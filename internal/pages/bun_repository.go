package pages

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// pageRow is the relational shape of a stored page.
type pageRow struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	Path      string    `bun:"path,pk"`
	Content   string    `bun:"content,notnull"`
	IndexHTML string    `bun:"index_html,notnull"`
	Preview   string    `bun:"preview,notnull"`
	Title     string    `bun:"title"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type secretRow struct {
	bun.BaseModel `bun:"table:secrets,alias:s"`

	Name  string `bun:"name,pk"`
	Value []byte `bun:"value,notnull"`
}

// BunPageRepository stores pages in a relational database through bun.
// It is the embedded-storage alternative to the redis backend.
type BunPageRepository struct {
	db *bun.DB
}

// NewBunPageRepository wraps an existing bun handle.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return &BunPageRepository{db: db}
}

var (
	_ interfaces.PageRepository = (*BunPageRepository)(nil)
	_ interfaces.SecretStore    = (*BunPageRepository)(nil)
)

// EnsureSchema creates the backing tables when they do not exist yet.
func (r *BunPageRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*pageRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return storeUnavailable(err)
	}
	if _, err := r.db.NewCreateTable().Model((*secretRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Get returns the page stored under key.
func (r *BunPageRepository) Get(ctx context.Context, key string) (interfaces.Page, error) {
	row := new(pageRow)
	err := r.db.NewSelect().Model(row).Where("path = ?", key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.Page{}, &PageNotFoundError{Key: key}
	}
	if err != nil {
		return interfaces.Page{}, storeUnavailable(err)
	}
	return interfaces.Page{
		Content: row.Content,
		Index:   row.IndexHTML,
		Preview: row.Preview,
		Title:   row.Title,
	}, nil
}

// Upsert overwrites the page stored under key.
func (r *BunPageRepository) Upsert(ctx context.Context, key string, page interfaces.Page) error {
	row := &pageRow{
		Path:      key,
		Content:   page.Content,
		IndexHTML: page.Index,
		Preview:   page.Preview,
		Title:     page.Title,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (path) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("index_html = EXCLUDED.index_html").
		Set("preview = EXCLUDED.preview").
		Set("title = EXCLUDED.title").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Scan returns every page whose path matches the glob pattern. sqlite's
// GLOB operator is case sensitive and understands the same '*' and '?'
// wildcards as the other backends; LIKE would match case-insensitively
// and report keys the memory and redis stores do not.
func (r *BunPageRepository) Scan(ctx context.Context, pattern string) ([]interfaces.ScanEntry, error) {
	var rows []pageRow
	err := r.db.NewSelect().Model(&rows).
		Where("path GLOB ?", globEscape(pattern)).
		Order("path ASC").
		Scan(ctx)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	out := make([]interfaces.ScanEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, interfaces.ScanEntry{
			Key: row.Path,
			Page: interfaces.Page{
				Content: row.Content,
				Index:   row.IndexHTML,
				Preview: row.Preview,
				Title:   row.Title,
			},
		})
	}
	return out, nil
}

// GetSecret returns the secret stored under name, or nil when absent.
func (r *BunPageRepository) GetSecret(ctx context.Context, name string) ([]byte, error) {
	row := new(secretRow)
	err := r.db.NewSelect().Model(row).Where("name = ?", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return row.Value, nil
}

// SetSecret stores value under name.
func (r *BunPageRepository) SetSecret(ctx context.Context, name string, value []byte) error {
	row := &secretRow{Name: name, Value: value}
	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// globEscape keeps '[' literal in a GLOB pattern. The scan contract has no
// character classes, so an opening bracket in a key must not start one.
func globEscape(pattern string) string {
	return strings.ReplaceAll(pattern, "[", "[[]")
}
