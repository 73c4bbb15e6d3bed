package playback

import (
	"context"
	"time"

	"lessoncast/config"
)

// Media is the audio-element collaborator: something that plays one clip and
// reports time. Implementations include the simulated clock used by the
// terminal preview and the fake used in tests. Transport errors are its
// concern, not the tracker's.
type Media interface {
	Play() error
	Pause()
	Seek(seconds float64)
	SetRate(rate float64)
	CurrentTime() float64
	Duration() float64
	Ended() bool
}

// RateStore is the single source of truth for the user's playback-rate
// preference, shared across clip instances. Read at clip creation, written
// only on explicit user action.
type RateStore interface {
	PlaybackRate() float64
	SetPlaybackRate(rate float64) error
}

// MemoryRateStore keeps the rate preference in process memory.
type MemoryRateStore struct {
	rate float64
}

// NewMemoryRateStore starts at the default rate.
func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{rate: config.DefaultPlaybackRate}
}

func (s *MemoryRateStore) PlaybackRate() float64 {
	if s.rate == 0 {
		return config.DefaultPlaybackRate
	}
	return s.rate
}

func (s *MemoryRateStore) SetPlaybackRate(rate float64) error {
	s.rate = rate
	return nil
}

// ValidRate reports whether rate belongs to the discrete selectable set.
func ValidRate(rate float64) bool {
	for _, r := range config.PlaybackRates {
		if r == rate {
			return true
		}
	}
	return false
}

// ClipConfig configures one clip player. Zero values are the defaults.
type ClipConfig struct {
	// Text is the displayed narration text.
	Text string
	// AudioURL locates the narration audio; empty means no audio exists for
	// this clip.
	AudioURL string
	// TimestampsURL locates the word alignment document; empty or
	// unfetchable means text renders without highlighting.
	TimestampsURL string
	// AutoPlay starts playback as soon as the clip starts. Default false.
	AutoPlay bool
	// HideText suppresses text rendering (audio-only clips). Default false.
	HideText bool
}

// Events are the callbacks a clip invokes from the event-loop context. Any
// may be nil.
type Events struct {
	OnHighlightedWord  func(word string, index int)
	OnHighlightCleared func()
	OnPlayingChange    func(isPlaying bool)
	OnTimeUpdate       func(current, duration float64)
	OnComplete         func()
}

// Clip drives playback of one narrated unit: transport state, the highlight
// tracker, and completion. Not safe for concurrent use; all methods belong
// to one event-loop goroutine, with the poll tick and media time-update
// events both routed through Tick.
type Clip struct {
	cfg     ClipConfig
	media   Media
	tracker *Tracker
	rates   RateStore
	events  Events

	generation uint64
	playing    bool
	completed  bool
}

// NewClip wires a clip player. The shared playback-rate preference is read
// once here and applied to the media element.
func NewClip(cfg ClipConfig, media Media, rates RateStore, events Events) *Clip {
	c := &Clip{
		cfg:     cfg,
		media:   media,
		tracker: NewTracker(cfg.Text),
		rates:   rates,
		events:  events,
	}
	c.tracker.OnHighlight(func(word string, index int) {
		if c.events.OnHighlightedWord != nil {
			c.events.OnHighlightedWord(word, index)
		}
	})
	c.tracker.OnClear(func() {
		if c.events.OnHighlightCleared != nil {
			c.events.OnHighlightCleared()
		}
	})
	if rates != nil {
		media.SetRate(rates.PlaybackRate())
	}
	return c
}

// Config returns the clip's configuration.
func (c *Clip) Config() ClipConfig { return c.cfg }

// Tracker exposes the clip's highlight tracker for index resolution.
func (c *Clip) Tracker() *Tracker { return c.tracker }

// Generation identifies the clip's current load cycle. A timestamp fetch
// started under an older generation must be discarded.
func (c *Clip) Generation() uint64 { return c.generation }

// Invalidate cancels the clip's in-flight state ahead of a clip change:
// stale fetches applied after this are ignored and the tracker goes Idle.
func (c *Clip) Invalidate() {
	c.generation++
	c.tracker.Reset()
}

// ApplyTimestamps installs fetched word timestamps if they belong to the
// current generation. Returns false when the result was stale and dropped
// without mutating state.
func (c *Clip) ApplyTimestamps(generation uint64, ts []WordTimestamp) bool {
	if generation != c.generation {
		return false
	}
	c.tracker.SetTimestamps(ts)
	return true
}

// Start begins playback when the clip is configured to autoplay.
func (c *Clip) Start() {
	if c.cfg.AutoPlay && c.cfg.AudioURL != "" {
		c.Play()
	}
}

// Play starts or resumes playback. Pressing play on a finished clip
// re-triggers the completion side effect instead of silently restarting.
func (c *Clip) Play() {
	if c.completed || c.media.Ended() {
		c.fireComplete()
		return
	}
	if err := c.media.Play(); err != nil {
		// Degrade to controls-without-playback; never a blocking error.
		return
	}
	c.setPlaying(true)
}

// Pause suspends playback.
func (c *Clip) Pause() {
	c.media.Pause()
	c.setPlaying(false)
}

// TogglePlay flips between playing and paused.
func (c *Clip) TogglePlay() {
	if c.playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// IsPlaying reports the transport state.
func (c *Clip) IsPlaying() bool { return c.playing }

// Completed reports whether the clip has reached its end.
func (c *Clip) Completed() bool { return c.completed }

// SeekTo moves the transport and recomputes the highlight in the same call,
// so the UI reflects the new position before the next tick.
func (c *Clip) SeekTo(seconds float64) {
	c.media.Seek(seconds)
	c.tracker.Seek(seconds)
	if c.events.OnTimeUpdate != nil {
		c.events.OnTimeUpdate(c.media.CurrentTime(), c.media.Duration())
	}
}

// SetRate applies a playback-rate choice from the discrete set and persists
// it as the shared preference for clips created later.
func (c *Clip) SetRate(rate float64) {
	if !ValidRate(rate) {
		return
	}
	c.media.SetRate(rate)
	if c.rates != nil {
		_ = c.rates.SetPlaybackRate(rate)
	}
}

// Tick is the single recompute entry point fed by both the fixed poll and
// native media time-update events. Firing from either or both is safe: the
// recompute is pure given (current time, timestamps).
func (c *Clip) Tick() {
	current := c.media.CurrentTime()
	duration := c.media.Duration()
	if c.events.OnTimeUpdate != nil {
		c.events.OnTimeUpdate(current, duration)
	}
	c.tracker.Tick(current)

	if c.media.Ended() && !c.completed {
		c.setPlaying(false)
		c.fireComplete()
	}
}

// Run drives the fixed-interval poll until the context is cancelled. The
// terminal preview uses its own tick loop instead; this is for hosts without
// one.
func (c *Clip) Run(ctx context.Context) {
	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Clip) fireComplete() {
	c.completed = true
	if c.events.OnHighlightCleared != nil {
		c.events.OnHighlightCleared()
	}
	if c.events.OnComplete != nil {
		c.events.OnComplete()
	}
}

func (c *Clip) setPlaying(playing bool) {
	if c.playing == playing {
		return
	}
	c.playing = playing
	if c.events.OnPlayingChange != nil {
		c.events.OnPlayingChange(playing)
	}
}
