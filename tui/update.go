package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"lessoncast/config"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ChapterLoadedMsg:
		return m.handleChapterLoaded(msg)
	case TimestampsMsg:
		return m.handleTimestamps(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.State == StatePlaying {
			return m.stopPlayback(), nil
		}
	case "up", "k":
		if m.State == StateBrowsing && m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.State == StateBrowsing && m.Payload != nil && m.Cursor < len(m.Payload.Sections)-1 {
			m.Cursor++
		}
	case "enter":
		if m.State == StateBrowsing && m.Payload != nil && len(m.Payload.Sections) > 0 {
			return m.startSection(m.Cursor)
		}
	case " ":
		if m.clip != nil {
			m.clip.TogglePlay()
		}
	case "left", "h":
		if m.clip != nil {
			m.clip.SeekTo(m.player.position - 5)
		}
	case "right", "l":
		if m.clip != nil {
			m.clip.SeekTo(m.player.position + 5)
		}
	case "+", "=":
		m.cycleRate(1)
	case "-", "_":
		m.cycleRate(-1)
	case "/":
		if m.State == StatePlaying {
			m.searching = true
			m.searchQuery = ""
		}
	}
	return m, nil
}

// handleSearchKey edits the in-text search query.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchQuery = ""
	case "enter":
		m.searching = false
	case "backspace":
		if len(m.searchQuery) > 0 {
			runes := []rune(m.searchQuery)
			m.searchQuery = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
		}
	}
	return m, nil
}

// cycleRate steps through the supported playback rates.
func (m Model) cycleRate(direction int) {
	if m.clip == nil {
		return
	}
	current := m.rates.PlaybackRate()
	idx := 0
	for i, r := range config.PlaybackRates {
		if r == current {
			idx = i
			break
		}
	}
	idx += direction
	if idx < 0 || idx >= len(config.PlaybackRates) {
		return
	}
	m.clip.SetRate(config.PlaybackRates[idx])
}

// handleChapterLoaded processes the chapter fetch result
func (m Model) handleChapterLoaded(msg ChapterLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Payload = msg.Payload
	m.State = StateBrowsing
	return m, nil
}

// handleTimestamps applies fetched word timestamps to the current clip.
// Stale generations are discarded by the clip itself.
func (m Model) handleTimestamps(msg TimestampsMsg) (tea.Model, tea.Cmd) {
	if m.clip == nil {
		return m, nil
	}
	if m.clip.ApplyTimestamps(msg.Generation, msg.Words) && m.media != nil && len(msg.Words) > 0 {
		// Sections that were never probed get their duration from the
		// last word's end time.
		m.media.setDuration(msg.Words[len(msg.Words)-1].End)
	}
	return m, nil
}

// handleTick advances playback and schedules the next tick. A finished
// section auto-advances to the next narrated one, matching the lesson flow.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.clip == nil {
		return m, tickCmd()
	}
	m.clip.Tick()

	if m.player.completed && !m.player.playing && m.Cursor < len(m.Payload.Sections)-1 {
		m.Cursor++
		next, cmd := m.startSection(m.Cursor)
		return next, tea.Batch(cmd, tickCmd())
	}
	return m, tickCmd()
}
