package playback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleDocument = `{
	"text": "real property includes",
	"segments": [
		{"words": [
			{"text": "real", "start": 0.0, "end": 0.4, "confidence": 0.98},
			{"text": "property", "start": 0.4, "end": 1.0}
		]},
		{"words": [
			{"text": "includes", "start": 1.0, "end": 1.8, "confidence": 0.91}
		]}
	]
}`

func TestParseDocumentFlattensSegments(t *testing.T) {
	words := ParseDocument([]byte(sampleDocument))
	if len(words) != 3 {
		t.Fatalf("word count = %d; want 3", len(words))
	}
	if words[2].Text != "includes" || words[2].Start != 1.0 {
		t.Fatalf("segment order not preserved: %+v", words[2])
	}
	// Missing confidence defaults to 1.0.
	if words[1].Confidence != 1.0 {
		t.Fatalf("default confidence = %v; want 1.0", words[1].Confidence)
	}
	if words[0].Confidence != 0.98 {
		t.Fatalf("explicit confidence = %v; want 0.98", words[0].Confidence)
	}
}

func TestParseDocumentMalformed(t *testing.T) {
	if words := ParseDocument([]byte("{not json")); len(words) != 0 {
		t.Fatalf("malformed document produced %d words", len(words))
	}
	if words := ParseDocument([]byte(`{"text":"x","segments":[]}`)); len(words) != 0 {
		t.Fatalf("empty segments produced %d words", len(words))
	}
}

func TestLoaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	words := NewLoader().Load(context.Background(), srv.URL)
	if len(words) != 3 {
		t.Fatalf("fetched word count = %d; want 3", len(words))
	}
}

func TestLoaderDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := NewLoader()
	if words := l.Load(context.Background(), srv.URL); len(words) != 0 {
		t.Fatalf("404 produced %d words", len(words))
	}
	if words := l.Load(context.Background(), ""); len(words) != 0 {
		t.Fatalf("empty URL produced %d words", len(words))
	}
	if words := l.Load(context.Background(), "http://127.0.0.1:1/none"); len(words) != 0 {
		t.Fatalf("unreachable host produced %d words", len(words))
	}
}

func TestBuildDocumentRoundTrip(t *testing.T) {
	in := sampleTimestamps()
	doc := BuildDocument("real property includes land", in)
	out := doc.Flatten()
	if len(out) != len(in) {
		t.Fatalf("round trip length = %d; want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Text != in[i].Text || out[i].Start != in[i].Start || out[i].End != in[i].End {
			t.Fatalf("word %d = %+v; want %+v", i, out[i], in[i])
		}
	}
}
