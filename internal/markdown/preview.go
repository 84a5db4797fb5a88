package markdown

import "unicode/utf8"

// previewExcerpt returns the first limit bytes of source, with the cut point
// advanced forward until it lands on a rune boundary. The cut never moves
// backward, so a multi-byte character straddling the limit is kept whole and
// the excerpt may exceed limit by up to three bytes.
func previewExcerpt(source string, limit int) string {
	if limit <= 0 || len(source) <= limit {
		return source
	}
	cut := limit
	for cut < len(source) && !utf8.RuneStart(source[cut]) {
		cut++
	}
	return source[:cut]
}
