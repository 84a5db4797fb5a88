package search

import (
	"context"
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// Config carries the service's settings.
type Config struct {
	// MountPath is the URL prefix result links are served under.
	MountPath string
}

// Service performs fuzzy title search over the page store.
type Service struct {
	repo   interfaces.PageRepository
	mount  string
	logger interfaces.Logger
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

// NewService constructs the search service.
func NewService(repo interfaces.PageRepository, cfg Config, opts ...Option) *Service {
	mount := strings.TrimSpace(cfg.MountPath)
	if mount == "" {
		mount = "/w"
	}
	s := &Service{
		repo:   repo,
		mount:  mount,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.SearchService = (*Service)(nil)

// Search matches pages whose lower-cased path contains the lower-cased
// query, ranked by Jaro-Winkler similarity between the derived title and
// the query as typed. Ties keep store order.
func (s *Service) Search(ctx context.Context, query string) ([]interfaces.SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}
	lowered := strings.ToLower(trimmed)

	// Matching happens here rather than in the store pattern: the backends
	// glob case-sensitively, and a lowered pattern would miss mixed-case
	// keys. Scanning everything keeps the result set backend-independent.
	entries, err := s.repo.Scan(ctx, "*")
	if err != nil {
		return nil, err
	}

	type scored struct {
		result interfaces.SearchResult
		score  float64
	}
	matches := make([]scored, 0, len(entries))
	for _, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Key), lowered) {
			continue
		}
		title := TitleFromPath(entry.Key)
		matches = append(matches, scored{
			result: interfaces.SearchResult{
				Title:   title,
				URL:     s.mount + "/" + entry.Key,
				Preview: entry.Page.Preview,
			},
			score: smetrics.JaroWinkler(title, trimmed, 0.7, 4),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	results := make([]interfaces.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.result)
	}

	s.logger.Debug("search completed", "query", trimmed, "results", len(results))
	return results, nil
}

// TitleFromPath derives a display title from a path key: the last path
// segment with the ".md" suffix stripped and dashes turned into spaces.
func TitleFromPath(key string) string {
	segment := key
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	segment = strings.TrimSuffix(segment, ".md")
	return strings.ReplaceAll(segment, "-", " ")
}
