package playback

import (
	"strings"
	"testing"
)

func TestRenderActiveWord(t *testing.T) {
	block := TextBlock{RawText: "real property includes land"}
	spans := Render(block, 1, "")

	var joined strings.Builder
	activeCount := 0
	for _, s := range spans {
		joined.WriteString(s.Text)
		if s.Style == StyleActive {
			activeCount++
			if s.Text != "property" {
				t.Fatalf("active span = %q; want %q", s.Text, "property")
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("active spans = %d; want 1", activeCount)
	}
	if joined.String() != block.RawText {
		t.Fatalf("span concat = %q; want %q", joined.String(), block.RawText)
	}
}

func TestRenderSearchHighlight(t *testing.T) {
	block := TextBlock{RawText: "the escrow account holds escrow funds"}
	spans := Render(block, -1, "escrow")

	searchCount := 0
	for _, s := range spans {
		if s.Style == StyleSearch {
			searchCount++
		}
	}
	if searchCount != 2 {
		t.Fatalf("search spans = %d; want 2", searchCount)
	}
}

func TestRenderActiveBeatsSearch(t *testing.T) {
	block := TextBlock{RawText: "escrow rules"}
	spans := Render(block, 0, "escrow")

	if spans[0].Style != StyleActive {
		t.Fatalf("word matching both treatments got %v; playback highlight must win", spans[0].Style)
	}
}

func TestRenderRespectsGlobalIndices(t *testing.T) {
	blocks := SplitBlocks("Intro here. 1. First point made. 2. Second point made.")
	// Activate the first word of the second block; the first block must not
	// light up.
	spans := Render(blocks[0], blocks[1].WordStartIndex, "")
	for _, s := range spans {
		if s.Style == StyleActive {
			t.Fatalf("block 0 rendered an active word for an index outside it")
		}
	}
	spans = Render(blocks[1], blocks[1].WordStartIndex, "")
	found := false
	for _, s := range spans {
		if s.Style == StyleActive {
			found = true
		}
	}
	if !found {
		t.Fatalf("block 1 did not render its active word")
	}
}
