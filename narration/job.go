package narration

import (
	"fmt"

	"github.com/google/uuid"

	"lessoncast/types"
)

// Target kinds. Each kind maps to the entity field the finished narration is
// written back to.
const (
	KindSection              = "section"
	KindQuestion             = "question"
	KindOption               = "option"
	KindExplanation          = "explanation"
	KindCorrectExplanation   = "correct-explanation"
	KindIncorrectExplanation = "incorrect-explanation"
)

// Job is one narration request flowing through the queue. Text is captured at
// enqueue time so editing an entity mid-flight produces a stale clip rather
// than a torn one.
type Job struct {
	ID      string                `json:"id"`
	Target  types.NarrationTarget `json:"target"`
	Text    string                `json:"text"`
	VoiceID string                `json:"voice_id,omitempty"`
}

// ClipID is the deterministic media identifier for the job's target, so
// re-narrating an entity overwrites its previous artifacts instead of
// accumulating orphans.
func (j Job) ClipID() string {
	t := j.Target
	switch t.Kind {
	case KindSection:
		return "section-" + t.EntityID
	case KindQuestion:
		return "question-" + t.EntityID + "-prompt"
	case KindOption:
		return fmt.Sprintf("question-%s-option-%d", t.EntityID, t.OptionIndex)
	case KindExplanation:
		return "question-" + t.EntityID + "-explanation"
	case KindCorrectExplanation:
		return "question-" + t.EntityID + "-explanation-correct"
	case KindIncorrectExplanation:
		return fmt.Sprintf("question-%s-explanation-incorrect-%d", t.EntityID, t.OptionIndex)
	default:
		return "clip-" + j.ID
	}
}

// JobsForSection enumerates the narration work for a section. Sections with
// no text produce no jobs.
func JobsForSection(sec *types.Section, voiceID string) []Job {
	if sec.Text == "" {
		return nil
	}
	return []Job{{
		ID:      uuid.NewString(),
		Target:  types.NarrationTarget{Kind: KindSection, EntityID: sec.ID},
		Text:    sec.Text,
		VoiceID: voiceID,
	}}
}

// JobsForQuestion enumerates the narration work for every clip in a quiz
// question's playback sequence: the prompt, each option, and whichever
// explanation variants the question carries. Empty texts are skipped; their
// slots stay silent during playback.
func JobsForQuestion(q *types.QuizQuestion, voiceID string) []Job {
	var jobs []Job
	add := func(kind, text string, optionIndex int) {
		if text == "" {
			return
		}
		jobs = append(jobs, Job{
			ID:      uuid.NewString(),
			Target:  types.NarrationTarget{Kind: kind, EntityID: q.ID, OptionIndex: optionIndex},
			Text:    text,
			VoiceID: voiceID,
		})
	}

	add(KindQuestion, q.Question, 0)
	for i, opt := range q.Options {
		add(KindOption, opt, i)
	}
	add(KindExplanation, q.Explanation, 0)
	add(KindCorrectExplanation, q.CorrectExplanation, 0)
	for i, text := range q.IncorrectExplanation {
		add(KindIncorrectExplanation, text, i)
	}
	return jobs
}
