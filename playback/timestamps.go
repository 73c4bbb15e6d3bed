package playback

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// WordTimestamp marks when one spoken word begins and ends within a clip.
// Times are clip-relative seconds. The sequence for a clip is chronological
// and therefore textual order; it is trusted as produced by the transcription
// side and never re-sorted here.
type WordTimestamp struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Document is the alignment resource stored next to each narration clip:
// { text, segments: [ { words: [ { text, start, end, confidence? } ] } ] }
type Document struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Segment is one group of aligned words inside a Document.
type Segment struct {
	Words []documentWord `json:"words"`
}

type documentWord struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Flatten collects all segment words into one ordered sequence in document
// order. Missing confidence defaults to 1.0.
func (d Document) Flatten() []WordTimestamp {
	var words []WordTimestamp
	for _, seg := range d.Segments {
		for _, w := range seg.Words {
			conf := 1.0
			if w.Confidence != nil {
				conf = *w.Confidence
			}
			words = append(words, WordTimestamp{
				Text:       w.Text,
				Start:      w.Start,
				End:        w.End,
				Confidence: conf,
			})
		}
	}
	return words
}

// BuildDocument assembles a Document from an already-flat word sequence, the
// shape the synthesis side uploads.
func BuildDocument(text string, words []WordTimestamp) Document {
	seg := Segment{Words: make([]documentWord, 0, len(words))}
	for _, w := range words {
		conf := w.Confidence
		seg.Words = append(seg.Words, documentWord{Text: w.Text, Start: w.Start, End: w.End, Confidence: &conf})
	}
	return Document{Text: text, Segments: []Segment{seg}}
}

// ParseDocument decodes an alignment document and flattens it. Malformed
// input yields an empty sequence: many clips are narrated without alignment
// data, and "no timestamps" is a normal state, not an error.
func ParseDocument(data []byte) []WordTimestamp {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("timestamps: malformed document ignored: %v", err)
		return nil
	}
	return doc.Flatten()
}

// Loader fetches alignment documents over HTTP.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader with a bounded request timeout.
func NewLoader() *Loader {
	return &Loader{client: &http.Client{Timeout: 15 * time.Second}}
}

// Load fetches and parses the document at url. Every failure mode (bad URL,
// network error, non-200, malformed JSON) degrades to an empty sequence so
// the caller falls back to un-highlighted text.
func (l *Loader) Load(ctx context.Context, url string) []WordTimestamp {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("timestamps: bad URL %q: %v", url, err)
		return nil
	}

	resp, err := l.client.Do(req)
	if err != nil {
		log.Printf("timestamps: fetch failed for %q: %v", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("timestamps: fetch for %q returned status %d", url, resp.StatusCode)
		return nil
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		log.Printf("timestamps: malformed document at %q: %v", url, err)
		return nil
	}
	return doc.Flatten()
}
