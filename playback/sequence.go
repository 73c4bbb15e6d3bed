package playback

import "fmt"

// ClipRef locates one clip in a quiz playback sequence.
type ClipRef struct {
	Text          string
	AudioURL      string
	TimestampsURL string
}

// QuestionClipIndex is the conventional index of the question clip; options
// occupy 0..len(options)-1.
const QuestionClipIndex = -1

// SequencePlayer chains the narration clips of one quiz question: question,
// then each answer option, auto-advancing on completion. The explanation
// clip is user-triggered after answering and is not part of the auto
// sequence. Clip slots without audio are skipped as if already complete.
//
// The current index only moves forward. Completion events are validated
// against a sequence token captured at start time, so a completion arriving
// for a stale sequence (the question changed underneath it) is discarded
// without mutating state.
type SequencePlayer struct {
	token        uint64
	question     ClipRef
	options      []ClipRef
	current      int
	completedAll bool

	// OnAdvance starts playback of the clip that just became current.
	OnAdvance func(clipIndex int, clip ClipRef)
	// OnClearRegion clears any highlight left on a clip's text region.
	OnClearRegion func(clipIndex int)
	// OnFinished fires exactly once, when the last narrated clip completes.
	OnFinished func()
}

// NewSequencePlayer returns an empty player; call Start per question.
func NewSequencePlayer() *SequencePlayer {
	return &SequencePlayer{current: QuestionClipIndex, completedAll: true}
}

// Start resets the player for a new question and begins the auto sequence.
// It clears highlight state in every text region, discards the previous
// sequence's in-flight state, and returns the identity token completion
// callbacks must present.
func (p *SequencePlayer) Start(question ClipRef, options []ClipRef) uint64 {
	p.token++
	p.question = question
	p.options = options
	p.current = QuestionClipIndex
	p.completedAll = false

	p.clearRegion(QuestionClipIndex)
	for i := range options {
		p.clearRegion(i)
	}

	if question.AudioURL != "" {
		p.advanceTo(QuestionClipIndex, question)
		return p.token
	}
	p.advancePast(QuestionClipIndex)
	return p.token
}

// Token returns the current sequence identity.
func (p *SequencePlayer) Token() uint64 { return p.token }

// CurrentClipIndex reports which clip is active.
func (p *SequencePlayer) CurrentClipIndex() int { return p.current }

// CompletedAll reports whether every narrated clip in the sequence finished.
func (p *SequencePlayer) CompletedAll() bool { return p.completedAll }

// ClipComplete handles a clip completion event. Events carrying a stale
// token, or arriving after the sequence already completed, are discarded.
func (p *SequencePlayer) ClipComplete(token uint64) {
	if token != p.token || p.completedAll {
		return
	}
	p.clearRegion(p.current)
	p.advancePast(p.current)
}

// advancePast moves forward from the given index, skipping silent slots,
// finishing the sequence when no narrated option remains.
func (p *SequencePlayer) advancePast(index int) {
	for next := index + 1; next < len(p.options); next++ {
		if p.options[next].AudioURL != "" {
			p.advanceTo(next, p.options[next])
			return
		}
	}
	p.current = len(p.options)
	p.completedAll = true
	if p.OnFinished != nil {
		p.OnFinished()
	}
}

func (p *SequencePlayer) advanceTo(index int, clip ClipRef) {
	p.current = index
	if p.OnAdvance != nil {
		p.OnAdvance(index, clip)
	}
}

func (p *SequencePlayer) clearRegion(index int) {
	if p.OnClearRegion != nil {
		p.OnClearRegion(index)
	}
}

// ExplanationAudio holds the four possible explanation narration sources for
// one question.
type ExplanationAudio struct {
	// Correct is the correct-specific clip.
	Correct string
	// Generic is the fallback clip for either outcome.
	Generic string
	// Incorrect holds one clip per option, used when that wrong option was
	// selected.
	Incorrect []string
}

// SelectExplanationClip picks the explanation narration: a correct answer
// prefers the correct-specific clip, an incorrect answer prefers the clip
// for the selected wrong option, and both fall back to the generic clip.
// Empty means no explanation narration exists.
func SelectExplanationClip(src ExplanationAudio, wasCorrect bool, selectedOption int) string {
	if wasCorrect {
		if src.Correct != "" {
			return src.Correct
		}
		return src.Generic
	}
	if selectedOption >= 0 && selectedOption < len(src.Incorrect) && src.Incorrect[selectedOption] != "" {
		return src.Incorrect[selectedOption]
	}
	return src.Generic
}

// ExplanationGate ensures an explanation clip autoplays once per reveal: a
// re-render of the same (question, selected option) pair does not replay,
// while a fresh attempt does.
type ExplanationGate struct {
	played map[string]bool
}

// NewExplanationGate returns an empty gate.
func NewExplanationGate() *ExplanationGate {
	return &ExplanationGate{played: make(map[string]bool)}
}

// ShouldPlay reports true the first time a reveal is seen and false after.
func (g *ExplanationGate) ShouldPlay(questionID string, selectedOption int) bool {
	key := fmt.Sprintf("%s:%d", questionID, selectedOption)
	if g.played[key] {
		return false
	}
	g.played[key] = true
	return true
}

// Reset forgets played reveals, for a new quiz attempt.
func (g *ExplanationGate) Reset() {
	g.played = make(map[string]bool)
}
