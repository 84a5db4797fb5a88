package pages

import (
	"context"
	"encoding/json"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"

	"github.com/snakefangox/knowbase/pkg/interfaces"
)

const (
	// pagesHashKey is the single hash holding every page, keyed by path.
	pagesHashKey = "pages"

	// secretKeyPrefix namespaces plain string secrets away from the page hash.
	secretKeyPrefix = "secret:"

	storeUnavailableCode = "STORE_UNAVAILABLE"
	pageDecodeCode       = "PAGE_DECODE_INVALID"
)

// RedisPageRepository stores pages in a single redis hash keyed by path,
// with JSON-encoded values.
type RedisPageRepository struct {
	client *redis.Client
}

// NewRedisPageRepository wraps an existing client.
func NewRedisPageRepository(client *redis.Client) *RedisPageRepository {
	return &RedisPageRepository{client: client}
}

// NewRedisPageRepositoryFromURL connects using a redis URL, e.g.
// redis://localhost:6379/0.
func NewRedisPageRepositoryFromURL(url string) (*RedisPageRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid redis URL")
	}
	return &RedisPageRepository{client: redis.NewClient(opts)}, nil
}

var (
	_ interfaces.PageRepository = (*RedisPageRepository)(nil)
	_ interfaces.SecretStore    = (*RedisPageRepository)(nil)
)

// Close releases the underlying client connection.
func (r *RedisPageRepository) Close() error {
	return r.client.Close()
}

// Ping verifies connectivity.
func (r *RedisPageRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Get returns the page stored under key.
func (r *RedisPageRepository) Get(ctx context.Context, key string) (interfaces.Page, error) {
	payload, err := r.client.HGet(ctx, pagesHashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return interfaces.Page{}, &PageNotFoundError{Key: key}
	}
	if err != nil {
		return interfaces.Page{}, storeUnavailable(err)
	}
	return decodePage(key, []byte(payload))
}

// Upsert overwrites the page stored under key.
func (r *RedisPageRepository) Upsert(ctx context.Context, key string, page interfaces.Page) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode page record")
	}
	if err := r.client.HSet(ctx, pagesHashKey, key, payload).Err(); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Scan walks the page hash with HSCAN MATCH, following the cursor until the
// server reports completion.
func (r *RedisPageRepository) Scan(ctx context.Context, pattern string) ([]interfaces.ScanEntry, error) {
	var (
		out    []interfaces.ScanEntry
		cursor uint64
	)
	for {
		fields, next, err := r.client.HScan(ctx, pagesHashKey, cursor, pattern, 100).Result()
		if err != nil {
			return nil, storeUnavailable(err)
		}
		// HSCAN alternates field and value.
		for i := 0; i+1 < len(fields); i += 2 {
			page, err := decodePage(fields[i], []byte(fields[i+1]))
			if err != nil {
				return nil, err
			}
			out = append(out, interfaces.ScanEntry{Key: fields[i], Page: page})
		}
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}

// GetSecret returns the secret stored under name, or nil when absent.
func (r *RedisPageRepository) GetSecret(ctx context.Context, name string) ([]byte, error) {
	value, err := r.client.Get(ctx, secretKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return value, nil
}

// SetSecret stores value under name.
func (r *RedisPageRepository) SetSecret(ctx context.Context, name string, value []byte) error {
	if err := r.client.Set(ctx, secretKeyPrefix+name, value, 0).Err(); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

func decodePage(key string, payload []byte) (interfaces.Page, error) {
	var page interfaces.Page
	if err := json.Unmarshal(payload, &page); err != nil {
		return interfaces.Page{}, goerrors.Wrap(err, goerrors.CategoryInternal, "decode page record: "+key).
			WithTextCode(pageDecodeCode)
	}
	return page, nil
}

func storeUnavailable(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "page store unavailable").
		WithTextCode(storeUnavailableCode)
}
