package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Engine wraps a goldmark instance with the fixed extension set every
// document is rendered with: GFM strikethrough, tables, autolinking, task
// lists, footnotes, definition lists, auto heading IDs, and hard line
// breaks. Raw HTML stays escaped (the engine default), which covers the GFM
// tagfilter concern without a separate sanitiser.
//
// The engine is stateless, so a single instance can be shared across
// concurrent pipeline runs without locking. Each Parse call owns its tree
// for the duration of one run.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine constructs the shared engine. The permissive grammar means Parse
// always produces a tree; only rendering can fail.
func NewEngine() *Engine {
	return &Engine{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Table,
				extension.Linkify,
				extension.TaskList,
				extension.Footnote,
				extension.DefinitionList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// Parse turns markdown source into a syntax tree owned by the caller.
func (e *Engine) Parse(source []byte) ast.Node {
	return e.md.Parser().Parse(text.NewReader(source))
}

// Render serializes a (possibly rewritten) tree back to HTML bytes.
func (e *Engine) Render(source []byte, doc ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
