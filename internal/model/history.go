package model

import "time"

// HistoryEntry is one appended record in the test history ledger.
// Entries are numbered 1,2,3... per user and skill, and are never
// edited or removed after append.
type HistoryEntry struct {
	Number int       `json:"number"`
	Date   time.Time `json:"date"`
	ScoreReport
}
