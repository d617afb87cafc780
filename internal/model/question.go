package model

import "fmt"

// Skill identifies which practice surface a question belongs to.
// Listening and reading share one engine implementation and one storage
// backend; question identities are namespaced by skill.
type Skill string

const (
	SkillListening Skill = "listening"
	SkillReading   Skill = "reading"
)

// ParseSkill validates a raw skill string.
func ParseSkill(raw string) (Skill, bool) {
	switch Skill(raw) {
	case SkillListening, SkillReading:
		return Skill(raw), true
	default:
		return "", false
	}
}

// Alternative is one labeled answer option. Exactly one alternative per
// question carries Correct=true.
type Alternative struct {
	Label   string `json:"label"`
	Correct bool   `json:"correct"`
}

// Question is an immutable catalog entry. The catalog is loaded once at
// startup and never mutated afterwards.
type Question struct {
	ID           string        `json:"id"`
	Skill        Skill         `json:"skill"`
	Weight       int           `json:"weight"`
	Alternatives []Alternative `json:"alternatives"`
	MediaRef     string        `json:"media_ref,omitempty"`
	Passage      string        `json:"passage,omitempty"`
	SourceTest   string        `json:"source_test,omitempty"`
	Ordinal      int           `json:"ordinal"`
}

// DeriveID builds a stable identity for questions that carry no explicit
// id, from their source test and ordinal position.
func DeriveID(sourceTest string, ordinal int) string {
	return fmt.Sprintf("%s-%02d", sourceTest, ordinal)
}

// CorrectIndex returns the index of the correct alternative, or -1 if
// the question is malformed.
func (q *Question) CorrectIndex() int {
	for i, alt := range q.Alternatives {
		if alt.Correct {
			return i
		}
	}
	return -1
}

// Validate checks the one-correct-alternative invariant.
func (q *Question) Validate() error {
	correct := 0
	for _, alt := range q.Alternatives {
		if alt.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("question %s: expected exactly 1 correct alternative, got %d", q.ID, correct)
	}
	if q.Weight <= 0 {
		return fmt.Errorf("question %s: non-positive weight %d", q.ID, q.Weight)
	}
	return nil
}

// QuestionForClient is a question with the correct-answer flags stripped,
// safe to ship to the UI layer.
type QuestionForClient struct {
	ID       string   `json:"id"`
	Weight   int      `json:"weight"`
	Labels   []string `json:"labels"`
	MediaRef string   `json:"media_ref,omitempty"`
	Passage  string   `json:"passage,omitempty"`
}

// Sanitize converts a Question into its client-facing form.
func (q *Question) Sanitize() QuestionForClient {
	labels := make([]string, len(q.Alternatives))
	for i, alt := range q.Alternatives {
		labels[i] = alt.Label
	}
	return QuestionForClient{
		ID:       q.ID,
		Weight:   q.Weight,
		Labels:   labels,
		MediaRef: q.MediaRef,
		Passage:  q.Passage,
	}
}
