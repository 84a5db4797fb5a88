package http

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var (
	wikiTemplate   = template.Must(template.ParseFS(templateFS, "templates/wiki.html"))
	loginTemplate  = template.Must(template.ParseFS(templateFS, "templates/login.html"))
	uploadTemplate = template.Must(template.ParseFS(templateFS, "templates/upload.html"))
)

// Assets returns the embedded static files rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
