// Package knowbase is a small personal wiki: markdown archives go in,
// sanitized HTML pages with navigation indexes, previews, and fuzzy title
// search come out. The module façade wires storage, rendering, search, and
// the HTTP surface from a single configuration value.
package knowbase

import (
	"net/http"

	"github.com/snakefangox/knowbase/internal/auth"
	uploadscmd "github.com/snakefangox/knowbase/internal/commands/uploads"
	"github.com/snakefangox/knowbase/internal/di"
	knowhttp "github.com/snakefangox/knowbase/internal/http"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// PageService exports the page service contract.
type PageService = interfaces.PageService

// SearchService exports the search service contract.
type SearchService = interfaces.SearchService

// Page exports the stored page record.
type Page = interfaces.Page

// SearchResult exports the search result DTO.
type SearchResult = interfaces.SearchResult

// ImportArchiveCommand exports the archive import message for programmatic
// ingestion.
type ImportArchiveCommand = uploadscmd.ImportArchiveCommand

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Search returns the configured search service.
func (m *Module) Search() SearchService {
	return m.container.SearchService()
}

// Auth returns the configured auth service.
func (m *Module) Auth() *auth.Service {
	return m.container.AuthService()
}

// ImportArchive returns the archive ingestion command handler.
func (m *Module) ImportArchive() *uploadscmd.ImportArchiveHandler {
	return m.container.ImportHandler()
}

// Handler returns the module's HTTP surface mounted on a fresh ServeMux.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.WikiAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// WikiAPI exposes the route registrar for callers that bring their own mux.
func (m *Module) WikiAPI() *knowhttp.WikiAPI {
	return m.container.WikiAPI()
}

// Close releases resources held by the module's storage backend.
func (m *Module) Close() error {
	return m.container.Close()
}
