package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

var doubleSlash = []byte("//")

// rewriteRelativeLinks walks the tree in pre-order and prefixes every
// hyperlink destination that starts with a single leading slash with the
// wiki mount path, in place: /path becomes <mount>/path. Scheme-qualified,
// protocol-relative, anchor-only, and document-relative destinations are
// left untouched. The caller holds exclusive access to the tree for the
// duration of the pass.
func rewriteRelativeLinks(doc ast.Node, mount string) {
	prefix := []byte(mount)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := link.Destination
		if len(dest) == 0 || dest[0] != '/' || bytes.HasPrefix(dest, doubleSlash) {
			return ast.WalkContinue, nil
		}
		rewritten := make([]byte, 0, len(prefix)+len(dest))
		rewritten = append(rewritten, prefix...)
		rewritten = append(rewritten, dest...)
		link.Destination = rewritten
		return ast.WalkContinue, nil
	})
}
