package markdown

import "regexp"

// indexRegion matches a delimited index block: a literal start token on its
// own line through the first end token, newlines included. Non-greedy, so
// only the leftmost block is captured; later blocks stay in the body as
// literal text.
var indexRegion = regexp.MustCompile(`(?s)\+\+\+INDEX\+\+\+\n(.*?)\n---INDEX---`)

// extractIndexRegion splits source into the inner text of the first index
// region and the remaining body with the whole delimited block (delimiters
// included) removed. When no region is present the source comes back
// unchanged.
func extractIndexRegion(source string) (inner, body string, found bool) {
	loc := indexRegion.FindStringSubmatchIndex(source)
	if loc == nil {
		return "", source, false
	}
	inner = source[loc[2]:loc[3]]
	body = source[:loc[0]] + source[loc[1]:]
	return inner, body, true
}
