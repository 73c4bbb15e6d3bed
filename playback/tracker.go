package playback

import "lessoncast/config"

// TrackerState is the highlight tracker's lifecycle state. There is no
// buffering or error state: transport trouble belongs to the media
// collaborator, and missing timestamps just keep the tracker Idle.
type TrackerState int

const (
	// Idle means no timestamps are loaded; text renders un-highlighted.
	Idle TrackerState = iota
	// Tracking means timestamps are loaded and ticks resolve active words.
	Tracking
)

// Tracker answers "which word is being spoken right now" for one clip and
// reconciles transcript word indices against the displayed text. All methods
// are meant for a single event-loop goroutine; both the poll ticker and
// media time-update events funnel into Tick, which is idempotent for a fixed
// (time, timestamps) pair.
type Tracker struct {
	state      TrackerState
	timestamps []WordTimestamp
	words      []string

	active int

	onHighlight func(word string, index int)
	onClear     func()
}

// NewTracker returns an Idle tracker for the given displayed text.
func NewTracker(text string) *Tracker {
	return &Tracker{state: Idle, words: Words(text), active: -1}
}

// OnHighlight registers the highlight-changed callback.
func (t *Tracker) OnHighlight(fn func(word string, index int)) { t.onHighlight = fn }

// OnClear registers the no-active-word callback.
func (t *Tracker) OnClear(fn func()) { t.onClear = fn }

// SetTimestamps installs the clip's word alignment. An empty sequence keeps
// the tracker Idle, which is a normal, frequent case.
func (t *Tracker) SetTimestamps(ts []WordTimestamp) {
	t.timestamps = ts
	t.active = -1
	if len(ts) > 0 {
		t.state = Tracking
	} else {
		t.state = Idle
	}
}

// Reset returns the tracker to Idle and forgets the active word. Called when
// the clip changes.
func (t *Tracker) Reset() {
	t.state = Idle
	t.timestamps = nil
	t.active = -1
}

// State reports the current lifecycle state.
func (t *Tracker) State() TrackerState { return t.state }

// ActiveWordIndex is the last emitted index, or -1 when no word is active.
func (t *Tracker) ActiveWordIndex() int { return t.active }

// ActiveIndex scans timestamps for the first entry whose [Start, End)
// interval contains at. Pure: same inputs, same answer. Linear scan; clips
// are tens to low hundreds of words.
func ActiveIndex(timestamps []WordTimestamp, at float64) int {
	for i, ts := range timestamps {
		if ts.Start <= at && at < ts.End {
			return i
		}
	}
	return -1
}

// Tick recomputes the active word for the given playback time and emits a
// highlight-changed or cleared event when the answer differs from the last
// emission. Redundant re-emissions are suppressed; correctness does not
// depend on the suppression.
func (t *Tracker) Tick(at float64) {
	if t.state != Tracking {
		return
	}

	idx := ActiveIndex(t.timestamps, at)
	if idx == t.active {
		return
	}
	t.active = idx
	if idx < 0 {
		if t.onClear != nil {
			t.onClear()
		}
		return
	}
	if t.onHighlight != nil {
		t.onHighlight(t.timestamps[idx].Text, idx)
	}
}

// Seek recomputes the active word synchronously for an explicit user seek,
// so the UI reflects the new position without waiting for the next poll
// tick. Seeks may move the index backward; consumers treat that as an
// explicit reset point, not an anomaly.
func (t *Tracker) Seek(at float64) {
	t.Tick(at)
}

// Resolve maps a transcript word index (with its word text) to a position in
// the displayed word list. In-bounds indices resolve directly. Out-of-bounds
// indices — the transcription segmented differently than the whitespace
// split — fall back to a window search around the index, then a full scan.
// -1 means nothing matched; the caller shows no highlight this tick, which
// is silent, non-fatal degradation.
func (t *Tracker) Resolve(index int, word string) int {
	if index >= 0 && index < len(t.words) {
		return index
	}

	lo := index - config.MatchWindow
	hi := index + config.MatchWindow
	if lo < 0 {
		lo = 0
	}
	if hi > len(t.words)-1 {
		hi = len(t.words) - 1
	}
	for i := lo; i <= hi; i++ {
		if Matches(t.words[i], word) {
			return i
		}
	}

	for i, w := range t.words {
		if Matches(w, word) {
			return i
		}
	}
	return -1
}
