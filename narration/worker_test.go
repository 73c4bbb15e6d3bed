package narration

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lessoncast/playback"
	"lessoncast/store"
	"lessoncast/tts"
	"lessoncast/types"
)

type fakeContentStore struct {
	sections  map[string]*types.Section
	questions map[string]*types.QuizQuestion
	statuses  map[string]*store.NarrationStatus
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		sections:  map[string]*types.Section{},
		questions: map[string]*types.QuizQuestion{},
		statuses:  map[string]*store.NarrationStatus{},
	}
}

func (f *fakeContentStore) SetNarrationStatus(_ context.Context, st *store.NarrationStatus) error {
	cp := *st
	f.statuses[st.JobID] = &cp
	return nil
}

func (f *fakeContentStore) GetSection(_ context.Context, id string) (*types.Section, error) {
	sec, ok := f.sections[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *sec
	return &cp, nil
}

func (f *fakeContentStore) PutSection(_ context.Context, sec *types.Section) error {
	cp := *sec
	f.sections[sec.ID] = &cp
	return nil
}

func (f *fakeContentStore) GetQuizQuestion(_ context.Context, id string) (*types.QuizQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *q
	return &cp, nil
}

func (f *fakeContentStore) PutQuizQuestion(_ context.Context, q *types.QuizQuestion) error {
	cp := *q
	f.questions[q.ID] = &cp
	return nil
}

type fakeMediaStore struct {
	audio      map[string][]byte
	timestamps map[string][]byte
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{audio: map[string][]byte{}, timestamps: map[string][]byte{}}
}

func (f *fakeMediaStore) PutAudio(_ context.Context, clipID string, audio []byte) (string, error) {
	f.audio[clipID] = audio
	return "https://cdn.test/" + clipID + ".mp3", nil
}

func (f *fakeMediaStore) PutTimestamps(_ context.Context, clipID string, doc []byte) (string, error) {
	f.timestamps[clipID] = doc
	return "https://cdn.test/" + clipID + ".timestamps.json", nil
}

type fakeSynth struct {
	calls []string
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, text, voiceID string) (*tts.Result, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	words := []playback.WordTimestamp{{Text: "word", Start: 0, End: 1, Confidence: 1}}
	return &tts.Result{
		Audio:      []byte("audio:" + text),
		Timestamps: playback.BuildDocument(text, words),
	}, nil
}

func newTestWorker(store ContentStore, media MediaStore, synth tts.Synthesizer) *Worker {
	w := NewWorker(store, media, synth)
	w.probe = func([]byte) (float64, error) { return 12.5, nil }
	return w
}

func TestProcessSectionJob(t *testing.T) {
	store := newFakeContentStore()
	store.sections["s1"] = &types.Section{ID: "s1", Text: "Hello there"}
	media := newFakeMediaStore()
	w := newTestWorker(store, media, &fakeSynth{})

	job := Job{
		ID:     "j1",
		Target: types.NarrationTarget{Kind: KindSection, EntityID: "s1"},
		Text:   "Hello there",
	}
	if err := w.Process(context.Background(), job); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	sec := store.sections["s1"]
	if sec.AudioURL != "https://cdn.test/section-s1.mp3" {
		t.Fatalf("audio URL = %q", sec.AudioURL)
	}
	if sec.TimestampsURL != "https://cdn.test/section-s1.timestamps.json" {
		t.Fatalf("timestamps URL = %q", sec.TimestampsURL)
	}
	if sec.Duration != 12.5 {
		t.Fatalf("duration = %v; want 12.5", sec.Duration)
	}
	if _, ok := media.audio["section-s1"]; !ok {
		t.Fatalf("audio was not uploaded under the clip ID")
	}
	if st := store.statuses["j1"]; st == nil || st.State != "done" {
		t.Fatalf("job status = %+v; want done", st)
	}
}

func TestProcessOptionJobGrowsSlices(t *testing.T) {
	store := newFakeContentStore()
	store.questions["q1"] = &types.QuizQuestion{
		ID:      "q1",
		Options: []string{"A", "B", "C", "D"},
	}
	w := newTestWorker(store, newFakeMediaStore(), &fakeSynth{})

	job := Job{
		ID:     "j2",
		Target: types.NarrationTarget{Kind: KindOption, EntityID: "q1", OptionIndex: 2},
		Text:   "C",
	}
	if err := w.Process(context.Background(), job); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	q := store.questions["q1"]
	if len(q.OptionAudioURLs) != 4 {
		t.Fatalf("option audio slice length = %d; want 4", len(q.OptionAudioURLs))
	}
	if q.OptionAudioURLs[2] == "" || q.OptionAudioURLs[0] != "" {
		t.Fatalf("option URLs misplaced: %v", q.OptionAudioURLs)
	}
	if q.OptionTimestampsURLs[2] == "" {
		t.Fatalf("option timestamps URL not set")
	}
}

func TestProcessOptionJobOutOfRange(t *testing.T) {
	store := newFakeContentStore()
	store.questions["q1"] = &types.QuizQuestion{ID: "q1", Options: []string{"A", "B"}}
	w := newTestWorker(store, newFakeMediaStore(), &fakeSynth{})

	job := Job{
		ID:     "j3",
		Target: types.NarrationTarget{Kind: KindOption, EntityID: "q1", OptionIndex: 5},
		Text:   "x",
	}
	if err := w.Process(context.Background(), job); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestProcessEmptyTextIsNoop(t *testing.T) {
	synth := &fakeSynth{}
	w := newTestWorker(newFakeContentStore(), newFakeMediaStore(), synth)

	job := Job{ID: "j4", Target: types.NarrationTarget{Kind: KindSection, EntityID: "s1"}}
	if err := w.Process(context.Background(), job); err != nil {
		t.Fatalf("empty-text job should be a no-op, got: %v", err)
	}
	if len(synth.calls) != 0 {
		t.Fatalf("synthesizer was called for an empty job")
	}
}

func TestProcessSynthFailurePropagates(t *testing.T) {
	store := newFakeContentStore()
	store.sections["s1"] = &types.Section{ID: "s1", Text: "t"}
	w := newTestWorker(store, newFakeMediaStore(), &fakeSynth{err: errors.New("quota")})

	job := Job{ID: "j5", Target: types.NarrationTarget{Kind: KindSection, EntityID: "s1"}, Text: "t"}
	if err := w.Process(context.Background(), job); err == nil {
		t.Fatalf("expected synthesis error to propagate")
	}
	if store.sections["s1"].AudioURL != "" {
		t.Fatalf("store was updated despite synthesis failure")
	}
	if st := store.statuses["j5"]; st == nil || st.State != "failed" || st.Error == "" {
		t.Fatalf("job status = %+v; want failed with error", st)
	}
}

func TestJobsForQuestionEnumeratesClips(t *testing.T) {
	q := &types.QuizQuestion{
		ID:                   "q1",
		Question:             "What is a deed?",
		Options:              []string{"A", "", "C"},
		CorrectAnswer:        0,
		Explanation:          "A deed transfers title.",
		CorrectExplanation:   "Right.",
		IncorrectExplanation: []string{"", "Not quite."},
	}

	jobs := JobsForQuestion(q, "Dennis")

	var kinds []string
	for _, j := range jobs {
		kinds = append(kinds, fmt.Sprintf("%s/%d", j.Target.Kind, j.Target.OptionIndex))
		if j.VoiceID != "Dennis" {
			t.Fatalf("voice = %q; want Dennis", j.VoiceID)
		}
	}

	// Empty option B and empty incorrect-explanation 0 are skipped.
	want := []string{
		"question/0",
		"option/0", "option/2",
		"explanation/0",
		"correct-explanation/0",
		"incorrect-explanation/1",
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d jobs (%v); want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("job %d = %s; want %s", i, kinds[i], want[i])
		}
	}
}

func TestClipIDDeterministic(t *testing.T) {
	job := Job{
		ID:     "irrelevant",
		Target: types.NarrationTarget{Kind: KindOption, EntityID: "q9", OptionIndex: 1},
	}
	if got := job.ClipID(); got != "question-q9-option-1" {
		t.Fatalf("ClipID = %q", got)
	}
}
