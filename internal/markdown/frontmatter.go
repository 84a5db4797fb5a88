package markdown

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter carries the optional metadata a document may open with.
type FrontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
	Draft bool     `yaml:"draft"`
}

// splitFrontMatter strips a leading YAML frontmatter block from source and
// returns the parsed metadata alongside the body. Documents without
// frontmatter pass through unchanged, and malformed frontmatter is treated
// as ordinary body text rather than an error: the pipeline never fails on
// decodable input.
func splitFrontMatter(source string) (FrontMatter, string) {
	var meta FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, source
	}
	return meta, string(body)
}
