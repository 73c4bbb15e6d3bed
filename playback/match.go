package playback

import (
	"strings"
	"unicode"

	"lessoncast/config"
)

// punctuation stripped by the second matching rule.
const punctuation = `.,!?;:'"()[]{}`

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// Matches reports whether a displayed word and a transcript word refer to the
// same spoken word, despite punctuation and segmentation differences
// introduced by the transcription side. Rules are tried in order,
// short-circuiting on the first success:
//
//  1. exact after trimming whitespace, case-insensitive
//  2. exact after stripping punctuation and lower-casing
//  3. exact after stripping all non-alphanumerics and lower-casing
//  4. prefix: both normalized forms at least MinPrefixLen runes, one a prefix
//     of the other, length difference at most MaxPrefixLenDiff
//
// The prefix bound keeps short unrelated words sharing a prefix from
// matching; it is a precision/recall tradeoff and is preserved exactly.
func Matches(displayedWord, timestampWord string) bool {
	d := strings.TrimSpace(displayedWord)
	t := strings.TrimSpace(timestampWord)
	if strings.EqualFold(d, t) {
		return true
	}

	d = strings.ToLower(stripPunctuation(d))
	t = strings.ToLower(stripPunctuation(t))
	if d != "" && d == t {
		return true
	}

	d = stripNonAlnum(d)
	t = stripNonAlnum(t)
	if d != "" && d == t {
		return true
	}

	dr, tr := []rune(d), []rune(t)
	if len(dr) < config.MinPrefixLen || len(tr) < config.MinPrefixLen {
		return false
	}
	diff := len(dr) - len(tr)
	if diff < 0 {
		diff = -diff
	}
	if diff > config.MaxPrefixLenDiff {
		return false
	}
	return strings.HasPrefix(d, t) || strings.HasPrefix(t, d)
}
