package config

import "time"

// Playback Constants
const (
	// PollInterval is the fixed highlight-refresh tick. Media time-update
	// events fire at a device-dependent cadence; the poll guarantees a
	// minimum granularity regardless.
	PollInterval = 50 * time.Millisecond

	// MatchWindow is how many positions around the reported word index are
	// searched when the transcript and the displayed text disagree in
	// length. Heuristic width; tunable, not load-bearing.
	MatchWindow = 5

	// MinPrefixLen is the minimum normalized word length for the prefix
	// matching rule to apply.
	MinPrefixLen = 3

	// MaxPrefixLenDiff bounds the length difference allowed by the prefix
	// matching rule, so short unrelated words sharing a prefix do not match.
	MaxPrefixLenDiff = 2
)

// PlaybackRates is the discrete set of user-selectable speed multipliers.
var PlaybackRates = []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}

// DefaultPlaybackRate is used until the user picks a rate.
const DefaultPlaybackRate = 1.0

// Narration Pipeline Constants
const (
	// NarrationTopic is the Kafka topic synthesis jobs are published to
	NarrationTopic = "narration-jobs"

	// NarrationGroupID is the consumer group for narration workers
	NarrationGroupID = "narration-workers"

	// SynthesisTimeout bounds one TTS request
	SynthesisTimeout = 2 * time.Minute

	// AudioContentType is the MIME type for uploaded narration audio
	AudioContentType = "audio/mpeg"

	// TimestampsContentType is the MIME type for uploaded alignment documents
	TimestampsContentType = "application/json"
)

// Session Constants
const (
	// SessionTTL is how long a login session stays valid
	SessionTTL = 7 * 24 * time.Hour
)

// Search Constants
const (
	// MaxSearchResults caps the number of section hits returned
	MaxSearchResults = 10

	// SnippetRadius is the number of characters kept around a match in a
	// search result snippet
	SnippetRadius = 80
)
