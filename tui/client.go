package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lessoncast/types"
)

// ChapterPayload is the full lesson payload served by the content API.
type ChapterPayload struct {
	Chapter   types.Chapter         `json:"chapter"`
	Sections  []*types.Section      `json:"sections"`
	Questions []*types.QuizQuestion `json:"questions"`
}

// Client fetches lesson content from the API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the preview player.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchChapter loads a chapter with its sections and quiz questions.
func (c *Client) FetchChapter(number int) (*ChapterPayload, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/api/chapters/%d", c.baseURL, number))
	if err != nil {
		return nil, fmt.Errorf("failed to reach content API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content API returned status %d for chapter %d", resp.StatusCode, number)
	}

	var payload ChapterPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode chapter payload: %w", err)
	}
	return &payload, nil
}
