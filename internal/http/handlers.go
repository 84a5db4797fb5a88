package http

import (
	"html/template"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	uploadscmd "github.com/snakefangox/knowbase/internal/commands/uploads"
	"github.com/snakefangox/knowbase/internal/search"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

type wikiView struct {
	Name    string
	Title   string
	Query   string
	Index   template.HTML
	Content template.HTML
}

type loginView struct {
	Name   string
	Failed bool
}

type uploadView struct {
	Name string
	Done bool
}

func (api *WikiAPI) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	api.renderLogin(w, r.URL.Query().Has("failed"))
}

func (api *WikiAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	token, err := api.auth.Login(r.Context(), r.PostFormValue("access_code"))
	if err != nil {
		if goerrors.IsCategory(err, goerrors.CategoryAuth) {
			http.Redirect(w, r, "/login?failed", http.StatusSeeOther)
			return
		}
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (api *WikiAPI) handleHome(w http.ResponseWriter, r *http.Request) {
	api.renderPage(w, r, "")
}

func (api *WikiAPI) handlePage(w http.ResponseWriter, r *http.Request) {
	api.renderPage(w, r, r.PathValue("path"))
}

// renderPage serves a stored page. An absent path renders the shell with
// empty content rather than a 404, so fresh setups and dead links still show
// the site chrome.
func (api *WikiAPI) renderPage(w http.ResponseWriter, r *http.Request, path string) {
	page, err := api.pages.Get(r.Context(), path)
	if err != nil && !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		api.logger.Error("http.page.load_failed", "path", path, "error", err)
		writeError(w, err)
		return
	}

	title := page.Title
	if title == "" && path != "" {
		title = search.TitleFromPath(path)
	}

	view := wikiView{
		Name:    api.siteName,
		Title:   title,
		Index:   template.HTML(page.Index),
		Content: template.HTML(page.Content),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := wikiTemplate.Execute(w, view); err != nil {
		api.logger.Error("http.page.render_failed", "path", path, "error", err)
	}
}

func (api *WikiAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := api.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		api.logger.Error("http.search.failed", "error", err)
		writeError(w, err)
		return
	}
	if results == nil {
		results = []interfaces.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (api *WikiAPI) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	api.renderUpload(w, r.URL.Query().Has("done"))
}

func (api *WikiAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxArchiveBytes)
	if err := r.ParseMultipartForm(maxArchiveBytes); err != nil {
		http.Error(w, "archive too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("archive")
	if err != nil {
		http.Error(w, "archive file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read archive", http.StatusBadRequest)
		return
	}

	cmd := uploadscmd.ImportArchiveCommand{Archive: payload, Filename: header.Filename}
	if err := api.imports.Execute(r.Context(), cmd); err != nil {
		api.logger.Error("http.upload.failed", "filename", header.Filename, "error", err)
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/upload?done", http.StatusSeeOther)
}

func (api *WikiAPI) renderLogin(w http.ResponseWriter, failed bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, loginView{Name: api.siteName, Failed: failed}); err != nil {
		api.logger.Error("http.login.render_failed", "error", err)
	}
}

func (api *WikiAPI) renderUpload(w http.ResponseWriter, done bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uploadTemplate.Execute(w, uploadView{Name: api.siteName, Done: done}); err != nil {
		api.logger.Error("http.upload.render_failed", "error", err)
	}
}
