package types

import "time"

// Role controls what a user may do on the authoring side.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleEditor  Role = "editor"
	RoleStudent Role = "student"
)

// CanEdit reports whether the role grants access to authoring endpoints.
func CanEdit(r Role) bool {
	return r == RoleAdmin || r == RoleEditor
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Hash      string    `json:"-"`
	Salt      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Chapter groups ordered sections and a quiz.
type Chapter struct {
	ID          string    `json:"id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section is one narrated unit of chapter content. Objectives and KeyTerms
// are optional payloads rendered alongside the text; AudioURL/TimestampsURL
// are filled in by the narration pipeline and may be empty.
type Section struct {
	ID            string    `json:"id"`
	ChapterID     string    `json:"chapter_id"`
	Order         int       `json:"order"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	Type          string    `json:"type"` // content, objectives, key-terms
	Objectives    []string  `json:"objectives,omitempty"`
	KeyTerms      []KeyTerm `json:"key_terms,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	TimestampsURL string    `json:"timestamps_url,omitempty"`
	Duration      float64   `json:"duration_seconds,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// KeyTerm is a glossary entry attached to a section.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// QuizQuestion carries the question, its options, and the narration resources
// for every clip in the quiz playback sequence. All audio fields are optional;
// a missing clip is skipped during sequential playback.
type QuizQuestion struct {
	ID            string   `json:"id"`
	ChapterID     string   `json:"chapter_id"`
	Order         int      `json:"order"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`

	Explanation          string   `json:"explanation"`
	CorrectExplanation   string   `json:"correct_explanation,omitempty"`
	IncorrectExplanation []string `json:"incorrect_explanations,omitempty"`

	QuestionAudioURL      string `json:"question_audio_url,omitempty"`
	QuestionTimestampsURL string `json:"question_timestamps_url,omitempty"`

	OptionAudioURLs      []string `json:"option_audio_urls,omitempty"`
	OptionTimestampsURLs []string `json:"option_timestamps_urls,omitempty"`

	ExplanationAudioURL      string `json:"explanation_audio_url,omitempty"`
	ExplanationTimestampsURL string `json:"explanation_timestamps_url,omitempty"`

	CorrectExplanationAudioURL      string `json:"correct_explanation_audio_url,omitempty"`
	CorrectExplanationTimestampsURL string `json:"correct_explanation_timestamps_url,omitempty"`

	IncorrectExplanationAudioURLs      []string `json:"incorrect_explanation_audio_urls,omitempty"`
	IncorrectExplanationTimestampsURLs []string `json:"incorrect_explanation_timestamps_urls,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NarrationTarget identifies the entity field a synthesis job writes back to.
type NarrationTarget struct {
	Kind        string `json:"kind"` // section, question, option, explanation, correct-explanation, incorrect-explanation
	EntityID    string `json:"entity_id"`
	OptionIndex int    `json:"option_index,omitempty"`
}
