package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lessoncast/config"
	"lessoncast/media"
	"lessoncast/store"
	"lessoncast/tts"
	"lessoncast/types"
)

// ContentStore is the slice of the content store the worker writes results
// back through.
type ContentStore interface {
	GetSection(ctx context.Context, id string) (*types.Section, error)
	PutSection(ctx context.Context, sec *types.Section) error
	GetQuizQuestion(ctx context.Context, id string) (*types.QuizQuestion, error)
	PutQuizQuestion(ctx context.Context, q *types.QuizQuestion) error
	SetNarrationStatus(ctx context.Context, st *store.NarrationStatus) error
}

// MediaStore uploads finished narration artifacts and returns public URLs.
type MediaStore interface {
	PutAudio(ctx context.Context, clipID string, audio []byte) (string, error)
	PutTimestamps(ctx context.Context, clipID string, doc []byte) (string, error)
}

// Worker executes narration jobs: synthesize, upload, then write the URLs
// back onto the target entity.
type Worker struct {
	store ContentStore
	media MediaStore
	synth tts.Synthesizer
	// probe measures audio duration; swapped out in tests.
	probe func(audio []byte) (float64, error)
}

// NewWorker wires a narration worker.
func NewWorker(store ContentStore, mediaStore MediaStore, synth tts.Synthesizer) *Worker {
	return &Worker{
		store: store,
		media: mediaStore,
		synth: synth,
		probe: media.ProbeDurationBytes,
	}
}

// Process implements JobHandler.
func (w *Worker) Process(ctx context.Context, job Job) error {
	if job.Text == "" {
		log.Printf("Narration job %s has no text, skipping", job.ID)
		return nil
	}

	if err := w.run(ctx, job); err != nil {
		w.setStatus(ctx, job, store.NarrationFailed, err.Error())
		return err
	}
	w.setStatus(ctx, job, store.NarrationDone, "")
	return nil
}

func (w *Worker) run(ctx context.Context, job Job) error {
	synthCtx, cancel := context.WithTimeout(ctx, config.SynthesisTimeout)
	defer cancel()

	res, err := w.synth.Synthesize(synthCtx, job.Text, job.VoiceID)
	if err != nil {
		return fmt.Errorf("synthesis failed for job %s: %w", job.ID, err)
	}

	doc, err := json.Marshal(res.Timestamps)
	if err != nil {
		return fmt.Errorf("failed to encode timestamps for job %s: %w", job.ID, err)
	}

	clipID := job.ClipID()
	audioURL, err := w.media.PutAudio(ctx, clipID, res.Audio)
	if err != nil {
		return err
	}
	timestampsURL, err := w.media.PutTimestamps(ctx, clipID, doc)
	if err != nil {
		return err
	}

	if err := w.attach(ctx, job, audioURL, timestampsURL, res.Audio); err != nil {
		return err
	}

	log.Printf("Narration job %s complete: %s", job.ID, audioURL)
	return nil
}

// setStatus records the job outcome; a failed status write never fails the
// job itself.
func (w *Worker) setStatus(ctx context.Context, job Job, state, errMsg string) {
	err := w.store.SetNarrationStatus(ctx, &store.NarrationStatus{
		JobID:    job.ID,
		Kind:     job.Target.Kind,
		EntityID: job.Target.EntityID,
		State:    state,
		Error:    errMsg,
	})
	if err != nil {
		log.Printf("Could not record status for narration job %s: %v", job.ID, err)
	}
}

// attach writes the finished URLs onto the field the job targets.
func (w *Worker) attach(ctx context.Context, job Job, audioURL, timestampsURL string, audio []byte) error {
	t := job.Target
	if t.Kind == KindSection {
		sec, err := w.store.GetSection(ctx, t.EntityID)
		if err != nil {
			return fmt.Errorf("section %s not found for narration job: %w", t.EntityID, err)
		}
		sec.AudioURL = audioURL
		sec.TimestampsURL = timestampsURL
		if dur, err := w.probe(audio); err != nil {
			log.Printf("Could not probe duration for section %s: %v", sec.ID, err)
		} else {
			sec.Duration = dur
		}
		sec.UpdatedAt = time.Now().UTC()
		return w.store.PutSection(ctx, sec)
	}

	q, err := w.store.GetQuizQuestion(ctx, t.EntityID)
	if err != nil {
		return fmt.Errorf("question %s not found for narration job: %w", t.EntityID, err)
	}

	switch t.Kind {
	case KindQuestion:
		q.QuestionAudioURL = audioURL
		q.QuestionTimestampsURL = timestampsURL
	case KindOption:
		if t.OptionIndex < 0 || t.OptionIndex >= len(q.Options) {
			return fmt.Errorf("option index %d out of range for question %s", t.OptionIndex, q.ID)
		}
		q.OptionAudioURLs = growTo(q.OptionAudioURLs, len(q.Options))
		q.OptionTimestampsURLs = growTo(q.OptionTimestampsURLs, len(q.Options))
		q.OptionAudioURLs[t.OptionIndex] = audioURL
		q.OptionTimestampsURLs[t.OptionIndex] = timestampsURL
	case KindExplanation:
		q.ExplanationAudioURL = audioURL
		q.ExplanationTimestampsURL = timestampsURL
	case KindCorrectExplanation:
		q.CorrectExplanationAudioURL = audioURL
		q.CorrectExplanationTimestampsURL = timestampsURL
	case KindIncorrectExplanation:
		if t.OptionIndex < 0 || t.OptionIndex >= len(q.IncorrectExplanation) {
			return fmt.Errorf("incorrect-explanation index %d out of range for question %s", t.OptionIndex, q.ID)
		}
		q.IncorrectExplanationAudioURLs = growTo(q.IncorrectExplanationAudioURLs, len(q.IncorrectExplanation))
		q.IncorrectExplanationTimestampsURLs = growTo(q.IncorrectExplanationTimestampsURLs, len(q.IncorrectExplanation))
		q.IncorrectExplanationAudioURLs[t.OptionIndex] = audioURL
		q.IncorrectExplanationTimestampsURLs[t.OptionIndex] = timestampsURL
	default:
		return fmt.Errorf("unknown narration target kind %q", t.Kind)
	}

	q.UpdatedAt = time.Now().UTC()
	return w.store.PutQuizQuestion(ctx, q)
}

func growTo(s []string, n int) []string {
	for len(s) < n {
		s = append(s, "")
	}
	return s
}
