package tui

import (
	"fmt"
	"strings"

	"lessoncast/playback"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	switch m.State {
	case StateLoading:
		b.WriteString(TitleStyle.Render("Lesson Preview"))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Loading chapter %d...", m.ChapterNumber)))
	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press q to quit"))
	case StateBrowsing:
		b.WriteString(m.viewSectionList())
	case StatePlaying:
		b.WriteString(m.viewPlayer())
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) viewSectionList() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Chapter %d: %s", m.Payload.Chapter.Number, m.Payload.Chapter.Title)))
	b.WriteString("\n")

	if len(m.Payload.Sections) == 0 {
		b.WriteString(InfoStyle.Render("This chapter has no sections yet."))
		return b.String()
	}

	for i, sec := range m.Payload.Sections {
		line := sec.Title
		if sec.AudioURL == "" {
			line += InfoStyle.Render("  (not narrated)")
		} else {
			line += StatusStyle.Render(fmt.Sprintf("  %s", formatDuration(sec.Duration)))
		}
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("up/down select · enter play · q quit"))
	return b.String()
}

func (m Model) viewPlayer() string {
	sec := m.Payload.Sections[m.Cursor]

	var b strings.Builder
	b.WriteString(TitleStyle.Render(sec.Title))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(m.renderText(sec.Text)))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(SearchMatchStyle.Render("/" + m.searchQuery))
		b.WriteString(InfoStyle.Render("  enter keep · esc clear"))
	} else {
		b.WriteString(InfoStyle.Render("space play/pause · ←/→ seek · +/- rate · / search · esc back"))
	}
	return b.String()
}

// renderText styles each block of the section, highlighting the active word
// and any search matches.
func (m Model) renderText(text string) string {
	blocks := playback.SplitBlocks(text)
	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		var line strings.Builder
		for _, span := range playback.Render(block, m.player.activeWord, m.searchQuery) {
			switch span.Style {
			case playback.StyleActive:
				line.WriteString(ActiveWordStyle.Render(span.Text))
			case playback.StyleSearch:
				line.WriteString(SearchMatchStyle.Render(span.Text))
			default:
				line.WriteString(span.Text)
			}
		}
		rendered = append(rendered, line.String())
	}
	return strings.Join(rendered, "\n\n")
}

func (m Model) statusLine() string {
	state := "paused"
	if m.player.playing {
		state = "playing"
	}
	if m.player.completed && !m.player.playing {
		state = "finished"
	}

	duration := 0.0
	if m.media != nil {
		duration = m.media.Duration()
	}
	return StatusStyle.Render(fmt.Sprintf(
		"%s · %s / %s · %.2gx",
		state,
		formatDuration(m.player.position),
		formatDuration(duration),
		m.rates.PlaybackRate(),
	))
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
