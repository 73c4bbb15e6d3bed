package tui

import "time"

// simMedia simulates audio playback against the wall clock so narrated
// sections can be previewed in a terminal without an audio device. Position
// advances lazily on read, scaled by the playback rate.
type simMedia struct {
	playing  bool
	rate     float64
	pos      float64
	duration float64
	last     time.Time
}

func newSimMedia(duration float64) *simMedia {
	return &simMedia{rate: 1.0, duration: duration}
}

// setDuration is used once timestamps arrive for sections that never had
// their duration probed.
func (s *simMedia) setDuration(d float64) {
	if s.duration == 0 && d > 0 {
		s.duration = d
	}
}

func (s *simMedia) advance() {
	if !s.playing {
		return
	}
	now := time.Now()
	s.pos += now.Sub(s.last).Seconds() * s.rate
	s.last = now
	if s.duration > 0 && s.pos > s.duration {
		s.pos = s.duration
	}
}

func (s *simMedia) Play() error {
	if s.playing {
		return nil
	}
	s.playing = true
	s.last = time.Now()
	return nil
}

func (s *simMedia) Pause() {
	s.advance()
	s.playing = false
}

func (s *simMedia) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if s.duration > 0 && seconds > s.duration {
		seconds = s.duration
	}
	s.pos = seconds
	s.last = time.Now()
}

func (s *simMedia) SetRate(rate float64) {
	s.advance()
	s.rate = rate
}

func (s *simMedia) CurrentTime() float64 {
	s.advance()
	return s.pos
}

func (s *simMedia) Duration() float64 { return s.duration }

func (s *simMedia) Ended() bool {
	s.advance()
	return s.duration > 0 && s.pos >= s.duration
}
