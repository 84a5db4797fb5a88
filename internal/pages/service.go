package pages

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

const pageNotFoundCode = "PAGE_NOT_FOUND"

// Service turns markdown sources into stored pages and serves them back.
type Service struct {
	pipeline interfaces.MarkdownPipeline
	repo     interfaces.PageRepository
	logger   interfaces.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the page service.
func NewService(pipeline interfaces.MarkdownPipeline, repo interfaces.PageRepository, opts ...Option) *Service {
	s := &Service{
		pipeline: pipeline,
		repo:     repo,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.PageService = (*Service)(nil)

// Assemble renders the markdown source and stores the resulting page under
// the normalized path key in a single write. Re-assembling the same source
// produces an identical record.
func (s *Service) Assemble(ctx context.Context, path, source string) (interfaces.Page, error) {
	key := NormalizePathKey(path)

	rendered, err := s.pipeline.Render(source)
	if err != nil {
		return interfaces.Page{}, err
	}

	page := interfaces.Page{
		Content: rendered.Content,
		Index:   rendered.Index,
		Preview: rendered.Preview,
		Title:   rendered.Title,
	}
	if err := s.repo.Upsert(ctx, key, page); err != nil {
		return interfaces.Page{}, err
	}

	s.logger.Debug("page assembled", "path", key, "bytes", len(page.Content))
	return page, nil
}

// Get returns the page stored under path. Absent pages surface as a
// not-found error the caller can branch on.
func (s *Service) Get(ctx context.Context, path string) (interfaces.Page, error) {
	key := NormalizePathKey(path)

	page, err := s.repo.Get(ctx, key)
	if err != nil {
		var notFound *PageNotFoundError
		if errors.As(err, &notFound) {
			return interfaces.Page{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "page not found: "+key).
				WithTextCode(pageNotFoundCode)
		}
		return interfaces.Page{}, err
	}
	return page, nil
}
