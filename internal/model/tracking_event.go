package model

// TrackingEvent is one queued answer-tracking increment. Events are
// pushed fire-and-forget onto the persistence queue at submit time and
// drained into PostgreSQL by the tracking worker.
type TrackingEvent struct {
	UserID     int    `json:"user_id"`
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
}
