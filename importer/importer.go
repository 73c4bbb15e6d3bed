// Package importer turns external articles into draft course sections by
// extracting their readable text.
package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"

	"lessoncast/types"
)

const extractorTimeout = 30 * time.Second

var multiBlank = regexp.MustCompile(`\n{3,}`)

// Draft is the extracted material before an editor reviews it.
type Draft struct {
	Title   string
	Text    string
	Excerpt string
	Source  string
}

// FromURL fetches a page and extracts its readable title and text.
func FromURL(url string) (*Draft, error) {
	article, err := readability.FromURL(url, extractorTimeout)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed for %s: %w", url, err)
	}

	text := cleanText(article.TextContent)
	if text == "" {
		return nil, fmt.Errorf("no readable text found at %s", url)
	}

	return &Draft{
		Title:   strings.TrimSpace(article.Title),
		Text:    text,
		Excerpt: strings.TrimSpace(article.Excerpt),
		Source:  url,
	}, nil
}

// Section converts a draft into an unnarrated section for the given chapter.
// The editor orders and trims it before narration is queued.
func (d *Draft) Section(chapterID string, order int) *types.Section {
	return &types.Section{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Order:     order,
		Title:     d.Title,
		Text:      d.Text,
		Type:      "content",
		UpdatedAt: time.Now().UTC(),
	}
}

// cleanText normalizes extracted text: trims each line, collapses runs of
// blank lines, and drops leading/trailing whitespace.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.Join(lines, "\n")
	out = multiBlank.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
