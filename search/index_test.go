package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lessoncast/types"
)

// fakeProvider maps exact texts to fixed vectors.
type fakeProvider struct {
	docVectors   map[string][]float32
	queryVectors map[string][]float32
	queryErr     error
}

func (f *fakeProvider) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, ok := f.docVectors[t]
		if !ok {
			return nil, errors.New("unexpected document: " + t)
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeProvider) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	vec, ok := f.queryVectors[text]
	if !ok {
		return nil, errors.New("unexpected query: " + text)
	}
	return vec, nil
}

func testSections() []*types.Section {
	return []*types.Section{
		{ID: "s1", ChapterID: "c1", Title: "Deeds", Text: "A deed transfers title to real property."},
		{ID: "s2", ChapterID: "c1", Title: "Leases", Text: "A lease grants possession without ownership."},
		{ID: "s3", ChapterID: "c2", Title: "Empty", Text: ""},
	}
}

func TestSemanticSearchRanksByCosine(t *testing.T) {
	provider := &fakeProvider{
		docVectors: map[string][]float32{
			"Deeds\nA deed transfers title to real property.": {1, 0},
			"Leases\nA lease grants possession without ownership.": {0, 1},
		},
		queryVectors: map[string][]float32{
			"ownership": {0.1, 0.9},
		},
	}

	ix := NewIndex(provider)
	ix.Rebuild(context.Background(), testSections())
	if ix.Len() != 2 {
		t.Fatalf("index length = %d; want 2 (empty section skipped)", ix.Len())
	}

	results := ix.Search(context.Background(), "ownership")
	if len(results) != 2 {
		t.Fatalf("got %d results; want 2", len(results))
	}
	if results[0].SectionID != "s2" {
		t.Fatalf("top result = %s; want s2", results[0].SectionID)
	}
	if results[0].Score <= results[1].Score {
		t.Fatalf("results not sorted by score: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestSubstringFallbackWithoutProvider(t *testing.T) {
	ix := NewIndex(nil)
	ix.Rebuild(context.Background(), testSections())

	results := ix.Search(context.Background(), "LEASE")
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}
	if results[0].SectionID != "s2" {
		t.Fatalf("result = %s; want s2", results[0].SectionID)
	}
}

func TestQueryEmbedFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{
		docVectors: map[string][]float32{
			"Deeds\nA deed transfers title to real property.": {1, 0},
			"Leases\nA lease grants possession without ownership.": {0, 1},
		},
		queryErr: errors.New("rate limited"),
	}

	ix := NewIndex(provider)
	ix.Rebuild(context.Background(), testSections())

	results := ix.Search(context.Background(), "deed")
	if len(results) != 1 || results[0].SectionID != "s1" {
		t.Fatalf("fallback results = %+v; want single s1 hit", results)
	}
}

func TestSearchEmptyQueryAndEmptyIndex(t *testing.T) {
	ix := NewIndex(nil)
	if got := ix.Search(context.Background(), "anything"); got != nil {
		t.Fatalf("empty index returned results: %v", got)
	}
	ix.Rebuild(context.Background(), testSections())
	if got := ix.Search(context.Background(), "   "); got != nil {
		t.Fatalf("blank query returned results: %v", got)
	}
}

func TestSnippetWindowsAroundMatch(t *testing.T) {
	long := strings.Repeat("x", 200) + " easement " + strings.Repeat("y", 200)
	got := snippet(long, "easement")
	if !strings.Contains(got, "easement") {
		t.Fatalf("snippet lost the match: %q", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("snippet not elided on both sides: %q", got)
	}
	if len(got) > 2*90+len("easement")+len("……") {
		t.Fatalf("snippet too long: %d chars", len(got))
	}

	if s := snippet("short text", "absent"); s != "short text" {
		t.Fatalf("short no-match snippet = %q", s)
	}
}
