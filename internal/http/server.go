// Package http exposes the wiki over plain net/http: login, page views,
// fuzzy search, and archive upload, all registered on a standard ServeMux.
package http

import (
	"fmt"
	"net/http"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/snakefangox/knowbase/internal/auth"
	uploadscmd "github.com/snakefangox/knowbase/internal/commands/uploads"
	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

// maxArchiveBytes bounds upload request bodies.
const maxArchiveBytes = 64 << 20

// WikiAPI registers the site's routes: the wiki pages under the mount path,
// search, login, and archive upload.
type WikiAPI struct {
	siteName   string
	mountPath  string
	cookieName string

	pages   interfaces.PageService
	search  interfaces.SearchService
	auth    *auth.Service
	imports command.Commander[uploadscmd.ImportArchiveCommand]
	logger  interfaces.Logger
}

// WikiOption mutates the WikiAPI configuration.
type WikiOption func(*WikiAPI)

// NewWikiAPI constructs a WikiAPI instance.
func NewWikiAPI(opts ...WikiOption) *WikiAPI {
	api := &WikiAPI{
		siteName:   "knowbase",
		mountPath:  "/w",
		cookieName: "knowbase_session",
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithSiteName sets the name shown in page headers and titles.
func WithSiteName(name string) WikiOption {
	return func(api *WikiAPI) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			api.siteName = trimmed
		}
	}
}

// WithMountPath overrides the wiki mount path (defaults to "/w").
func WithMountPath(path string) WikiOption {
	return func(api *WikiAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.mountPath = "/" + strings.Trim(trimmed, "/")
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) WikiOption {
	return func(api *WikiAPI) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			api.cookieName = trimmed
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service interfaces.PageService) WikiOption {
	return func(api *WikiAPI) {
		api.pages = service
	}
}

// WithSearchService wires the search service.
func WithSearchService(service interfaces.SearchService) WikiOption {
	return func(api *WikiAPI) {
		api.search = service
	}
}

// WithAuthService wires the auth service.
func WithAuthService(service *auth.Service) WikiOption {
	return func(api *WikiAPI) {
		api.auth = service
	}
}

// WithImportHandler wires the archive import command handler.
func WithImportHandler(handler command.Commander[uploadscmd.ImportArchiveCommand]) WikiOption {
	return func(api *WikiAPI) {
		api.imports = handler
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) WikiOption {
	return func(api *WikiAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register wires every route onto the mux.
func (api *WikiAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: wiki api is nil")
	}
	if api.pages == nil || api.search == nil || api.auth == nil || api.imports == nil {
		return fmt.Errorf("http: wiki api requires page, search, auth, and import services")
	}

	mux.HandleFunc("GET /login", api.handleLoginForm)
	mux.HandleFunc("POST /login", api.handleLogin)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(Assets())))

	mux.HandleFunc("GET /{$}", api.requirePage(api.handleHome))
	mux.HandleFunc("GET "+api.mountPath+"/{path...}", api.requirePage(api.handlePage))
	mux.HandleFunc("GET /search", api.requireJSON(api.handleSearch))
	mux.HandleFunc("GET /upload", api.requirePage(api.handleUploadForm))
	mux.HandleFunc("POST /upload", api.requirePage(api.handleUpload))

	return nil
}

// requirePage gates an HTML route behind a valid session, redirecting to the
// login form otherwise.
func (api *WikiAPI) requirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !api.sessionValid(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// requireJSON gates a JSON route behind a valid session, answering 401
// instead of redirecting.
func (api *WikiAPI) requireJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !api.sessionValid(r) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next(w, r)
	}
}

func (api *WikiAPI) sessionValid(r *http.Request) bool {
	cookie, err := r.Cookie(api.cookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return api.auth.Verify(r.Context(), cookie.Value) == nil
}
