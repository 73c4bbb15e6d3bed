package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Narration job states.
const (
	NarrationQueued = "queued"
	NarrationDone   = "done"
	NarrationFailed = "failed"
)

// NarrationStatus tracks one synthesis job through the queue. Records expire
// after a day; the durable result is the URLs written onto the entity.
type NarrationStatus struct {
	JobID     string    `json:"job_id"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity_id"`
	State     string    `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

const narrationStatusTTL = 24 * time.Hour

func narrationStatusKey(jobID string) string { return "narration:job:" + jobID }

// SetNarrationStatus records the job's current state.
func (s *Store) SetNarrationStatus(ctx context.Context, st *NarrationStatus) error {
	st.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode narration status %s: %w", st.JobID, err)
	}
	return s.rdb.Set(ctx, narrationStatusKey(st.JobID), data, narrationStatusTTL).Err()
}

// GetNarrationStatus looks a job up, returning ErrNotFound for unknown or
// expired jobs.
func (s *Store) GetNarrationStatus(ctx context.Context, jobID string) (*NarrationStatus, error) {
	var st NarrationStatus
	if err := s.getJSON(ctx, narrationStatusKey(jobID), &st); err != nil {
		return nil, err
	}
	return &st, nil
}
