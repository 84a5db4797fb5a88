// Package di wires the module's services together from runtime
// configuration: storage backend, markdown pipeline, page, search, auth,
// and upload handling, plus the HTTP surface on top of them.
package di

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/snakefangox/knowbase/internal/auth"
	"github.com/snakefangox/knowbase/internal/commands"
	uploadscmd "github.com/snakefangox/knowbase/internal/commands/uploads"
	knowhttp "github.com/snakefangox/knowbase/internal/http"
	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/internal/logging/gologger"
	"github.com/snakefangox/knowbase/internal/markdown"
	"github.com/snakefangox/knowbase/internal/pages"
	"github.com/snakefangox/knowbase/internal/runtimeconfig"
	"github.com/snakefangox/knowbase/internal/search"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	repo    interfaces.PageRepository
	secrets interfaces.SecretStore
	closer  func() error

	pipeline  interfaces.MarkdownPipeline
	pageSvc   *pages.Service
	searchSvc *search.Service
	authSvc   *auth.Service
	imports   *uploadscmd.ImportArchiveHandler
	wikiAPI   *knowhttp.WikiAPI
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithPageRepository overrides the configured storage backend. The supplied
// store must also act as the secret store.
func WithPageRepository(repo interfaces.PageRepository, secrets interfaces.SecretStore) Option {
	return func(c *Container) {
		c.repo = repo
		c.secrets = secrets
	}
}

// New builds a fully wired container from the supplied configuration.
func New(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.repo == nil {
		if err := c.buildStorage(); err != nil {
			return nil, err
		}
	}

	c.pipeline = markdown.NewPipeline(markdown.Config{
		MountPath:    cfg.Routing.MountPath,
		PreviewBytes: cfg.Markdown.PreviewBytes,
	}, logging.MarkdownLogger(c.loggerProvider))

	c.pageSvc = pages.NewService(c.pipeline, c.repo,
		pages.WithLogger(logging.PagesLogger(c.loggerProvider)))

	c.searchSvc = search.NewService(c.repo, search.Config{MountPath: cfg.Routing.MountPath},
		search.WithLogger(logging.SearchLogger(c.loggerProvider)))

	c.authSvc = auth.NewService(auth.Config{
		AccessCode: cfg.AccessCode,
		SessionTTL: cfg.Session.TTL,
	}, c.secrets, auth.WithLogger(logging.AuthLogger(c.loggerProvider)))

	c.imports = uploadscmd.NewImportArchiveHandler(c.pageSvc,
		commands.CommandLogger(c.loggerProvider, "uploads"))

	c.wikiAPI = knowhttp.NewWikiAPI(
		knowhttp.WithSiteName(cfg.Name),
		knowhttp.WithMountPath(cfg.Routing.MountPath),
		knowhttp.WithCookieName(cfg.Session.CookieName),
		knowhttp.WithPageService(c.pageSvc),
		knowhttp.WithSearchService(c.searchSvc),
		knowhttp.WithAuthService(c.authSvc),
		knowhttp.WithImportHandler(c.imports),
		knowhttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)

	return c, nil
}

func (c *Container) buildStorage() error {
	switch c.Config.Storage.Provider {
	case runtimeconfig.StorageRedis:
		repo, err := pages.NewRedisPageRepositoryFromURL(c.Config.Storage.RedisURL)
		if err != nil {
			return err
		}
		c.repo = repo
		c.secrets = repo
		c.closer = repo.Close
	case runtimeconfig.StorageSQLite:
		sqlDB, err := sql.Open("sqlite3", c.Config.Storage.SQLitePath)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryExternal, "open sqlite database")
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		repo := pages.NewBunPageRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return err
		}
		c.repo = repo
		c.secrets = repo
		c.closer = db.Close
	case runtimeconfig.StorageMemory:
		repo := pages.NewMemoryPageRepository()
		c.repo = repo
		c.secrets = repo
	default:
		return runtimeconfig.ErrStorageProviderUnknown
	}
	return nil
}

// Close releases storage resources held by the container.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// LoggerProvider exposes the wired logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// PageRepository exposes the wired storage backend.
func (c *Container) PageRepository() interfaces.PageRepository { return c.repo }

// SecretStore exposes the wired secret store.
func (c *Container) SecretStore() interfaces.SecretStore { return c.secrets }

// MarkdownPipeline exposes the wired render pipeline.
func (c *Container) MarkdownPipeline() interfaces.MarkdownPipeline { return c.pipeline }

// PageService exposes the wired page service.
func (c *Container) PageService() interfaces.PageService { return c.pageSvc }

// SearchService exposes the wired search service.
func (c *Container) SearchService() interfaces.SearchService { return c.searchSvc }

// AuthService exposes the wired auth service.
func (c *Container) AuthService() *auth.Service { return c.authSvc }

// ImportHandler exposes the wired archive import command handler.
func (c *Container) ImportHandler() *uploadscmd.ImportArchiveHandler { return c.imports }

// WikiAPI exposes the wired HTTP surface.
func (c *Container) WikiAPI() *knowhttp.WikiAPI { return c.wikiAPI }
