package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(ClientConfig{Endpoint: srv.URL, APIKey: "dGVzdA==", ModelID: "inworld-tts-1"})
	return c, srv
}

func TestSynthesizeDecodesAudioAndAlignment(t *testing.T) {
	audio := []byte("mp3-bytes")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Basic dGVzdA==" {
			t.Errorf("authorization = %q", got)
		}

		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "Hello world" {
			t.Errorf("text = %q", req.Text)
		}
		if req.VoiceID != "Dennis" {
			t.Errorf("voiceId = %q", req.VoiceID)
		}
		if req.TimestampType != "WORD" {
			t.Errorf("timestampType = %q", req.TimestampType)
		}

		resp := map[string]any{
			"audioContent": base64.StdEncoding.EncodeToString(audio),
			"timestampInfo": map[string]any{
				"wordAlignment": map[string]any{
					"words":                []string{"Hello", "world"},
					"wordStartTimeSeconds": []float64{0.0, 0.5},
					"wordEndTimeSeconds":   []float64{0.4, 1.0},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	res, err := c.Synthesize(context.Background(), "Hello world", "Dennis")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if string(res.Audio) != string(audio) {
		t.Fatalf("audio = %q; want %q", res.Audio, audio)
	}

	words := res.Timestamps.Flatten()
	if len(words) != 2 {
		t.Fatalf("got %d words; want 2", len(words))
	}
	if words[1].Text != "world" || words[1].Start != 0.5 || words[1].End != 1.0 {
		t.Fatalf("word[1] = %+v", words[1])
	}
	if words[0].Confidence != 1.0 {
		t.Fatalf("confidence = %v; want 1.0", words[0].Confidence)
	}
	if res.Timestamps.Text != "Hello world" {
		t.Fatalf("document text = %q", res.Timestamps.Text)
	}
}

func TestSynthesizeSurfacesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"message": "quota exceeded"})
	})

	if _, err := c.Synthesize(context.Background(), "text", "Dennis"); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	c := NewClient(ClientConfig{Endpoint: "http://unused", APIKey: "k"})
	if _, err := c.Synthesize(context.Background(), "   ", "Dennis"); err == nil {
		t.Fatalf("expected error for blank text")
	}
}

func TestConvertAlignmentClampsMismatchedArrays(t *testing.T) {
	var resp synthesizeResponse
	resp.TimestampInfo.WordAlignment.Words = []string{"a", "b", "c"}
	resp.TimestampInfo.WordAlignment.WordStartTimeSeconds = []float64{0, 1}
	resp.TimestampInfo.WordAlignment.WordEndTimeSeconds = []float64{0.5, 1.5, 2.5}

	doc := convertAlignment(resp, "a b c")
	if got := len(doc.Flatten()); got != 2 {
		t.Fatalf("got %d words; want 2 after clamping", got)
	}
}
