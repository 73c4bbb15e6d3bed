package importer

import (
	"testing"
)

func TestCleanTextCollapsesBlankRuns(t *testing.T) {
	in := "  First paragraph.  \n\n\n\n  Second paragraph.\n\n\nThird.  \n\n"
	want := "First paragraph.\n\nSecond paragraph.\n\nThird."
	if got := cleanText(in); got != want {
		t.Fatalf("cleanText = %q; want %q", got, want)
	}
}

func TestDraftSection(t *testing.T) {
	d := &Draft{Title: "Property Basics", Text: "Some text.", Source: "https://example.com/a"}
	sec := d.Section("c1", 3)

	if sec.ID == "" {
		t.Fatalf("section ID not assigned")
	}
	if sec.ChapterID != "c1" || sec.Order != 3 {
		t.Fatalf("section placement = %s/%d", sec.ChapterID, sec.Order)
	}
	if sec.Title != "Property Basics" || sec.Text != "Some text." {
		t.Fatalf("section content = %q / %q", sec.Title, sec.Text)
	}
	if sec.AudioURL != "" {
		t.Fatalf("imported section should start unnarrated")
	}
}
