package interfaces

// Rendered is the output of one pipeline run over a single document.
type Rendered struct {
	// Content holds the rendered HTML body with intra-wiki links rewritten.
	Content string
	// Index holds the independently rendered HTML of the optional index
	// region, or the empty string when the document carries none.
	Index string
	// Preview is a raw excerpt of the index-stripped markdown source,
	// truncated only at a rune boundary.
	Preview string
	// Title is the optional frontmatter title; empty when the document has
	// no frontmatter.
	Title string
}

// MarkdownPipeline converts raw markdown source into a Rendered record. The
// pipeline is pure: identical input must yield byte-identical output, and
// malformed-but-decodable markdown never fails.
type MarkdownPipeline interface {
	Render(source string) (Rendered, error)
}
