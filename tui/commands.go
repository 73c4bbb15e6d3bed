package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lessoncast/config"
	"lessoncast/playback"
)

// loadChapter fetches the chapter payload in the background.
func loadChapter(client *Client, number int) tea.Cmd {
	return func() tea.Msg {
		payload, err := client.FetchChapter(number)
		return ChapterLoadedMsg{Payload: payload, Err: err}
	}
}

// loadTimestamps fetches a clip's alignment document. The loader degrades to
// an empty word list on failure, so playback proceeds without highlighting.
func loadTimestamps(loader *playback.Loader, generation uint64, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return TimestampsMsg{
			Generation: generation,
			Words:      loader.Load(ctx, url),
		}
	}
}

// tickCmd schedules the next playback tick.
func tickCmd() tea.Cmd {
	return tea.Tick(config.PollInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
