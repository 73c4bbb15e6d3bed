package store

import (
	"context"
	"strconv"
	"time"

	"lessoncast/config"
)

func rateKey(userID string) string { return "prefs:" + userID + ":playback-rate" }

// RatePreferences is the Redis-backed playback-rate preference store,
// satisfying playback.RateStore for one user. The rate is read when a clip
// player is created and written only on explicit user action.
type RatePreferences struct {
	store  *Store
	userID string
}

// Rates returns the preference store scoped to a user.
func (s *Store) Rates(userID string) *RatePreferences {
	return &RatePreferences{store: s, userID: userID}
}

// PlaybackRate returns the persisted preference, or the default when none is
// stored or Redis is unreachable (a missing preference never blocks playback).
func (p *RatePreferences) PlaybackRate() float64 {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	v, err := p.store.rdb.Get(ctx, rateKey(p.userID)).Result()
	if err != nil {
		return config.DefaultPlaybackRate
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return config.DefaultPlaybackRate
	}
	return rate
}

// SetPlaybackRate persists the user's choice.
func (p *RatePreferences) SetPlaybackRate(rate float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.store.rdb.Set(ctx, rateKey(p.userID), strconv.FormatFloat(rate, 'f', -1, 64), 0).Err()
}
