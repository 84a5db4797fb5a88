package markdown

import (
	"strings"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"

	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

const internalRenderDefectCode = "MARKDOWN_RENDER_INVALID_UTF8"

// Config tunes a Pipeline instance.
type Config struct {
	// MountPath is inserted in front of root-relative link destinations.
	MountPath string
	// PreviewBytes caps the stored preview excerpt.
	PreviewBytes int
}

// Pipeline converts one raw markdown document into a Rendered record:
// frontmatter split, index region extraction, preview excerpt, parse, link
// rewrite, render. Every step is a pure in-memory computation; the pipeline
// holds no per-document state and is safe for concurrent use.
type Pipeline struct {
	engine       *Engine
	mount        string
	previewBytes int
	logger       interfaces.Logger
}

// NewPipeline constructs a pipeline sharing a single goldmark engine.
func NewPipeline(cfg Config, logger interfaces.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NoOp()
	}
	mount := strings.TrimSpace(cfg.MountPath)
	if mount == "" {
		mount = "/w"
	}
	previewBytes := cfg.PreviewBytes
	if previewBytes <= 0 {
		previewBytes = 500
	}
	return &Pipeline{
		engine:       NewEngine(),
		mount:        mount,
		previewBytes: previewBytes,
		logger:       logger,
	}
}

var _ interfaces.MarkdownPipeline = (*Pipeline)(nil)

// Render implements interfaces.MarkdownPipeline. Identical input yields
// byte-identical output; only the renderer emitting invalid UTF-8 (a
// violated engine contract) is an error.
func (p *Pipeline) Render(source string) (interfaces.Rendered, error) {
	var out interfaces.Rendered

	meta, body := splitFrontMatter(source)
	out.Title = strings.TrimSpace(meta.Title)

	if inner, remainder, found := extractIndexRegion(body); found {
		indexSrc := []byte(inner)
		indexDoc := p.engine.Parse(indexSrc)
		rewriteRelativeLinks(indexDoc, p.mount)
		indexHTML, err := p.engine.Render(indexSrc, indexDoc)
		if err != nil {
			return interfaces.Rendered{}, goerrors.Wrap(err, goerrors.CategoryInternal, "render index region").
				WithTextCode(internalRenderDefectCode)
		}
		if err := checkRenderedUTF8(indexHTML); err != nil {
			return interfaces.Rendered{}, err
		}
		out.Index = string(indexHTML)
		body = remainder
	}

	out.Preview = previewExcerpt(body, p.previewBytes)

	src := []byte(body)
	doc := p.engine.Parse(src)
	rewriteRelativeLinks(doc, p.mount)

	contentHTML, err := p.engine.Render(src, doc)
	if err != nil {
		return interfaces.Rendered{}, goerrors.Wrap(err, goerrors.CategoryInternal, "render page body").
			WithTextCode(internalRenderDefectCode)
	}
	if err := checkRenderedUTF8(contentHTML); err != nil {
		return interfaces.Rendered{}, err
	}
	out.Content = string(contentHTML)

	p.logger.Debug("markdown.pipeline.rendered",
		"source_bytes", len(source),
		"content_bytes", len(out.Content),
		"has_index", out.Index != "",
	)
	return out, nil
}

// checkRenderedUTF8 guards the contracted invariant that the engine emits
// valid UTF-8 for valid UTF-8 input. A failure here is a pipeline defect,
// not bad user input.
func checkRenderedUTF8(rendered []byte) error {
	if utf8.Valid(rendered) {
		return nil
	}
	return goerrors.New("markdown renderer emitted invalid UTF-8", goerrors.CategoryInternal).
		WithTextCode(internalRenderDefectCode)
}
