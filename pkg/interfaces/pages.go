package interfaces

import "context"

// Page is the persisted unit of rendered content. The JSON field names are
// wire-compatible with the records already stored by earlier deployments.
type Page struct {
	Content string `json:"content"`
	Index   string `json:"index"`
	Preview string `json:"preview"`
	Title   string `json:"title,omitempty"`
}

// PageService assembles and retrieves wiki pages.
type PageService interface {
	// Assemble runs the content pipeline over source and upserts the
	// resulting Page under path. Exactly one store write per call.
	Assemble(ctx context.Context, path string, source string) (Page, error)
	// Get performs a point lookup. Absence surfaces as a not-found error;
	// callers substitute the zero Page.
	Get(ctx context.Context, path string) (Page, error)
}

// SearchResult is the ephemeral row returned by the search ranker.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Preview string `json:"preview"`
}

// SearchService ranks stored pages against a free-text query.
type SearchService interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
