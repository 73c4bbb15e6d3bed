package playback

import (
	"regexp"
	"strings"
	"unicode"
)

// TextBlock is one visually distinct paragraph or numbered list item parsed
// out of a narration string. WordStartIndex is the global word-index offset
// of the block's first word within the full text.
type TextBlock struct {
	RawText        string
	IsListItem     bool
	WordStartIndex int
}

// Token is one segment of a block: either a word (non-whitespace run) or a
// separator (whitespace run). Only words occupy a slot in the global
// word-index space; separators carry WordIndex -1 and exist so that joining
// all tokens reproduces the block text exactly.
type Token struct {
	Text      string
	IsWord    bool
	WordIndex int
}

// listMarker finds numbered-list markers: a digit sequence, a period, a
// single space, then an uppercase letter, at the start of the string or
// preceded by whitespace. RE2 has no lookbehind, so the leading whitespace
// is consumed by the match and compensated for in SplitBlocks.
var listMarker = regexp.MustCompile(`(^|\s)\d+\. [A-Z]`)

// listItemPrefix flags a trimmed chunk that begins with a number + period.
var listItemPrefix = regexp.MustCompile(`^\d+\.`)

// SplitBlocks splits narration text into renderable blocks. Text with no
// numbered-list marker anywhere is a single non-list block; otherwise the
// text is split immediately before each marker's digit sequence, chunks are
// trimmed, and chunks starting with a number + period are flagged as list
// items.
func SplitBlocks(text string) []TextBlock {
	matches := listMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []TextBlock{{RawText: text, IsListItem: false, WordStartIndex: 0}}
	}

	var cuts []int
	for _, m := range matches {
		cut := m[0]
		// skip the captured whitespace so the split lands on the digit
		if m[3] > m[2] {
			cut = m[3]
		}
		if cut > 0 {
			cuts = append(cuts, cut)
		}
	}

	var blocks []TextBlock
	wordIndex := 0
	prev := 0
	for _, cut := range append(cuts, len(text)) {
		chunk := strings.TrimSpace(text[prev:cut])
		prev = cut
		if chunk == "" {
			continue
		}
		blocks = append(blocks, TextBlock{
			RawText:        chunk,
			IsListItem:     listItemPrefix.MatchString(chunk),
			WordStartIndex: wordIndex,
		})
		wordIndex += len(strings.Fields(chunk))
	}
	if len(blocks) == 0 {
		return []TextBlock{{RawText: text, IsListItem: false, WordStartIndex: 0}}
	}
	return blocks
}

// Tokenize decomposes a block into alternating word and separator tokens.
// Word tokens get consecutive global indices continuing from the block's
// WordStartIndex; separators get -1. Joining all token texts reconstructs
// the block text losslessly.
func Tokenize(block TextBlock) []Token {
	var tokens []Token
	runes := []rune(block.RawText)
	index := block.WordStartIndex

	start := 0
	for start < len(runes) {
		isSpace := unicode.IsSpace(runes[start])
		end := start
		for end < len(runes) && unicode.IsSpace(runes[end]) == isSpace {
			end++
		}
		if isSpace {
			tokens = append(tokens, Token{Text: string(runes[start:end]), IsWord: false, WordIndex: -1})
		} else {
			tokens = append(tokens, Token{Text: string(runes[start:end]), IsWord: true, WordIndex: index})
			index++
		}
		start = end
	}
	return tokens
}

// Words returns the flat displayed-word list for the full text, the whitespace
// split the tracker reconciles timestamp indices against.
func Words(text string) []string {
	return strings.Fields(text)
}
