package model

import "time"

// AnswerRecord is the per-question lifetime performance aggregate. The
// zero value is the valid "never answered" state; records are created
// lazily on first answer and the counters only ever increase.
type AnswerRecord struct {
	Correct        int       `json:"correct"`
	Wrong          int       `json:"wrong"`
	LastAnsweredAt time.Time `json:"last_answered_at"`
}

// Attempts returns the total number of recorded answers.
func (r AnswerRecord) Attempts() int {
	return r.Correct + r.Wrong
}
