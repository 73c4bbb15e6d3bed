package search

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"lessoncast/config"
	"lessoncast/types"
)

// Result is one search hit.
type Result struct {
	SectionID    string  `json:"section_id"`
	ChapterID    string  `json:"chapter_id"`
	SectionTitle string  `json:"section_title"`
	Score        float64 `json:"score"`
	Snippet      string  `json:"snippet"`
}

type entry struct {
	sectionID string
	chapterID string
	title     string
	text      string
	vector    []float32
}

// Index answers course-content searches. When an embeddings provider is
// available it ranks sections by cosine similarity to the query; otherwise,
// and whenever embedding fails, it falls back to case-insensitive substring
// matching so search keeps working offline.
type Index struct {
	provider EmbeddingsProvider
	entries  []entry
}

// NewIndex creates an empty index. provider may be nil.
func NewIndex(provider EmbeddingsProvider) *Index {
	return &Index{provider: provider}
}

// Rebuild replaces the index contents with the given sections. Sections with
// no text are skipped. Embedding failures degrade the whole index to
// substring mode rather than erroring.
func (ix *Index) Rebuild(ctx context.Context, sections []*types.Section) {
	entries := make([]entry, 0, len(sections))
	texts := make([]string, 0, len(sections))
	for _, sec := range sections {
		if sec.Text == "" {
			continue
		}
		entries = append(entries, entry{
			sectionID: sec.ID,
			chapterID: sec.ChapterID,
			title:     sec.Title,
			text:      sec.Text,
		})
		texts = append(texts, sec.Title+"\n"+sec.Text)
	}

	if ix.provider != nil && len(texts) > 0 {
		vecs, err := ix.provider.EmbedDocuments(ctx, texts)
		if err != nil {
			log.Printf("Search index embedding failed, falling back to substring search: %v", err)
		} else {
			for i := range entries {
				entries[i].vector = vecs[i]
			}
		}
	}

	ix.entries = entries
}

// Len reports the number of indexed sections.
func (ix *Index) Len() int { return len(ix.entries) }

// Search ranks indexed sections against the query, returning at most
// config.MaxSearchResults hits.
func (ix *Index) Search(ctx context.Context, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(ix.entries) == 0 {
		return nil
	}

	if ix.provider != nil && ix.entries[0].vector != nil {
		if results := ix.semanticSearch(ctx, query); results != nil {
			return results
		}
	}
	return ix.substringSearch(query)
}

func (ix *Index) semanticSearch(ctx context.Context, query string) []Result {
	qvec, err := ix.provider.EmbedQuery(ctx, query)
	if err != nil {
		log.Printf("Query embedding failed, falling back to substring search: %v", err)
		return nil
	}

	results := make([]Result, 0, len(ix.entries))
	for _, e := range ix.entries {
		score := cosineSimilarity(qvec, e.vector)
		results = append(results, Result{
			SectionID:    e.sectionID,
			ChapterID:    e.chapterID,
			SectionTitle: e.title,
			Score:        score,
			Snippet:      snippet(e.text, query),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > config.MaxSearchResults {
		results = results[:config.MaxSearchResults]
	}
	return results
}

func (ix *Index) substringSearch(query string) []Result {
	needle := strings.ToLower(query)
	var results []Result
	for _, e := range ix.entries {
		inTitle := strings.Contains(strings.ToLower(e.title), needle)
		inText := strings.Contains(strings.ToLower(e.text), needle)
		if !inTitle && !inText {
			continue
		}
		score := 0.5
		if inTitle {
			score = 1.0
		}
		results = append(results, Result{
			SectionID:    e.sectionID,
			ChapterID:    e.chapterID,
			SectionTitle: e.title,
			Score:        score,
			Snippet:      snippet(e.text, query),
		})
		if len(results) == config.MaxSearchResults {
			break
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// snippet extracts a window around the first occurrence of query in text, or
// the head of the text when the query does not literally occur.
func snippet(text, query string) string {
	radius := config.SnippetRadius
	pos := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if pos < 0 {
		if len(text) <= 2*radius {
			return text
		}
		return text[:2*radius] + "…"
	}

	start := pos - radius
	if start < 0 {
		start = 0
	}
	end := pos + len(query) + radius
	if end > len(text) {
		end = len(text)
	}

	out := text[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
