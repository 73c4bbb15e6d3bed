package tui

import (
	"time"

	"lessoncast/playback"
)

// ChapterLoadedMsg delivers the chapter payload or the fetch error.
type ChapterLoadedMsg struct {
	Payload *ChapterPayload
	Err     error
}

// TimestampsMsg delivers fetched word timestamps for a clip generation.
// Generation lets stale fetches be discarded after the user switches clips.
type TimestampsMsg struct {
	Generation uint64
	Words      []playback.WordTimestamp
}

// TickMsg drives playback position recomputation.
type TickMsg time.Time
