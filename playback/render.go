package playback

import "strings"

// SpanStyle is the highlight treatment for one rendered span.
type SpanStyle int

const (
	// StylePlain renders with no emphasis.
	StylePlain SpanStyle = iota
	// StyleSearch marks a word matching the search query. Lower priority
	// than StyleActive.
	StyleSearch
	// StyleActive marks the word currently being spoken. Wins over
	// StyleSearch when both apply to the same word.
	StyleActive
)

// Span is one styled run of text. Concatenating span texts in order
// reproduces the block text exactly.
type Span struct {
	Text  string
	Style SpanStyle
}

// Render maps a block plus the active global word index and an optional
// search query onto a styled span sequence. It is pure: what to highlight is
// decided here, how to paint it is the presentation layer's business.
func Render(block TextBlock, activeIndex int, searchQuery string) []Span {
	tokens := Tokenize(block)
	spans := make([]Span, 0, len(tokens))
	query := strings.ToLower(strings.TrimSpace(searchQuery))

	for _, tok := range tokens {
		style := StylePlain
		if tok.IsWord {
			switch {
			case tok.WordIndex == activeIndex:
				style = StyleActive
			case query != "" && strings.Contains(strings.ToLower(tok.Text), query):
				style = StyleSearch
			}
		}
		spans = append(spans, Span{Text: tok.Text, Style: style})
	}
	return spans
}
