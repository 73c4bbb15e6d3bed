package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"lessoncast/playback"
)

// Result is one synthesis outcome: the audio bytes and the word alignment
// document the playback side will consume.
type Result struct {
	Audio      []byte
	Timestamps playback.Document
}

// Synthesizer converts narration text to speech with word-level timestamps.
// Implementations are the hosted TTS client below and the fake used in
// worker tests.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (*Result, error)
}

// ClientConfig configures the hosted TTS API client.
type ClientConfig struct {
	// Endpoint of the voice synthesis API.
	Endpoint string
	// APIKey is the Base64 credential sent as Basic auth.
	APIKey string
	// ModelID selects the synthesis model.
	ModelID string
	// SpeakingRate adjusts narration speed at synthesis time (1.0 = normal).
	SpeakingRate float64
}

// Client calls a voice synthesis API that returns base64 audio plus word
// alignment arrays in one response.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClientFromEnv reads TTS_ENDPOINT, TTS_API_KEY and TTS_MODEL_ID.
func NewClientFromEnv() (*Client, error) {
	key := os.Getenv("TTS_API_KEY")
	if key == "" {
		return nil, errors.New("TTS_API_KEY is not set")
	}
	endpoint := os.Getenv("TTS_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://api.inworld.ai/tts/v1/voice"
	}
	model := os.Getenv("TTS_MODEL_ID")
	if model == "" {
		model = "inworld-tts-1"
	}
	return NewClient(ClientConfig{Endpoint: endpoint, APIKey: key, ModelID: model, SpeakingRate: 1.0}), nil
}

// NewClient builds a synthesis client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.SpeakingRate == 0 {
		cfg.SpeakingRate = 1.0
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: 90 * time.Second}}
}

type synthesizeRequest struct {
	Text          string      `json:"text"`
	VoiceID       string      `json:"voiceId"`
	ModelID       string      `json:"modelId"`
	TimestampType string      `json:"timestampType"`
	AudioConfig   audioConfig `json:"audioConfig"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
}

type synthesizeResponse struct {
	AudioContent  string `json:"audioContent"`
	TimestampInfo struct {
		WordAlignment struct {
			Words                []string  `json:"words"`
			WordStartTimeSeconds []float64 `json:"wordStartTimeSeconds"`
			WordEndTimeSeconds   []float64 `json:"wordEndTimeSeconds"`
		} `json:"wordAlignment"`
	} `json:"timestampInfo"`
	Message string `json:"message"`
}

// Synthesize requests word-aligned speech for the given text and voice.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is required")
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:          text,
		VoiceID:       voiceID,
		ModelID:       c.cfg.ModelID,
		TimestampType: "WORD",
		AudioConfig:   audioConfig{AudioEncoding: "MP3", SpeakingRate: c.cfg.SpeakingRate},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode synthesis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if payload.Message != "" {
			return nil, fmt.Errorf("synthesis failed: %s", payload.Message)
		}
		return nil, fmt.Errorf("synthesis failed: status %d", resp.StatusCode)
	}
	if payload.AudioContent == "" {
		return nil, errors.New("no audio content in synthesis response")
	}

	audio, err := base64.StdEncoding.DecodeString(payload.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("bad audio encoding in synthesis response: %w", err)
	}

	return &Result{
		Audio:      audio,
		Timestamps: convertAlignment(payload, text),
	}, nil
}

// convertAlignment maps the API's parallel alignment arrays onto the
// alignment document format. The API reports no per-word confidence, so 1.0
// is recorded. Array lengths are clamped to the shortest so a truncated
// response never indexes out of range.
func convertAlignment(resp synthesizeResponse, text string) playback.Document {
	wa := resp.TimestampInfo.WordAlignment
	n := len(wa.Words)
	if len(wa.WordStartTimeSeconds) < n {
		n = len(wa.WordStartTimeSeconds)
	}
	if len(wa.WordEndTimeSeconds) < n {
		n = len(wa.WordEndTimeSeconds)
	}

	words := make([]playback.WordTimestamp, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, playback.WordTimestamp{
			Text:       wa.Words[i],
			Start:      wa.WordStartTimeSeconds[i],
			End:        wa.WordEndTimeSeconds[i],
			Confidence: 1.0,
		})
	}
	return playback.BuildDocument(text, words)
}
