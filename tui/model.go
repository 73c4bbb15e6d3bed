package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"lessoncast/playback"
)

// State represents the preview player state machine
type State string

const (
	StateLoading  State = "loading"
	StateBrowsing State = "browsing"
	StatePlaying  State = "playing"
	StateError    State = "error"
)

// playerState holds the playback fields the clip's event callbacks mutate.
// It lives behind a pointer because bubbletea copies the model on every
// update.
type playerState struct {
	activeWord int
	playing    bool
	completed  bool
	position   float64
}

// Model is the preview player: browse a chapter's sections, play one with
// live word highlighting driven by the narration timestamps.
type Model struct {
	Client *Client

	ChapterNumber int
	Payload       *ChapterPayload
	Err           error

	State  State
	Cursor int

	loader *playback.Loader
	rates  playback.RateStore
	clip   *playback.Clip
	media  *simMedia
	player *playerState

	searching   bool
	searchQuery string
}

// NewModel creates the preview player for one chapter.
func NewModel(client *Client, chapterNumber int) Model {
	return Model{
		Client:        client,
		ChapterNumber: chapterNumber,
		State:         StateLoading,
		loader:        playback.NewLoader(),
		rates:         playback.NewMemoryRateStore(),
		player:        &playerState{activeWord: -1},
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadChapter(m.Client, m.ChapterNumber),
		tickCmd(),
	)
}

// startSection builds a clip for the selected section and starts playback.
func (m Model) startSection(index int) (Model, tea.Cmd) {
	sec := m.Payload.Sections[index]

	m.player.activeWord = -1
	m.player.playing = false
	m.player.completed = false
	m.player.position = 0

	m.media = newSimMedia(sec.Duration)
	ps := m.player
	media := m.media
	m.clip = playback.NewClip(
		playback.ClipConfig{
			Text:          sec.Text,
			AudioURL:      sec.AudioURL,
			TimestampsURL: sec.TimestampsURL,
			AutoPlay:      true,
		},
		media,
		m.rates,
		playback.Events{
			OnHighlightedWord:  func(_ string, index int) { ps.activeWord = index },
			OnHighlightCleared: func() { ps.activeWord = -1 },
			OnPlayingChange:    func(playing bool) { ps.playing = playing },
			OnTimeUpdate:       func(current, _ float64) { ps.position = current },
			OnComplete:         func() { ps.completed = true },
		},
	)
	m.clip.Start()
	m.State = StatePlaying

	if sec.TimestampsURL == "" {
		return m, nil
	}
	return m, loadTimestamps(m.loader, m.clip.Generation(), sec.TimestampsURL)
}

// stopPlayback tears the current clip down and returns to the section list.
func (m Model) stopPlayback() Model {
	if m.clip != nil {
		m.clip.Pause()
		m.clip.Invalidate()
	}
	m.clip = nil
	m.media = nil
	m.State = StateBrowsing
	m.searching = false
	m.searchQuery = ""
	return m
}
