package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tcfprep/backend/internal/model"
)

// HistoryStore is the narrow persistence contract the ledger needs.
// The Postgres implementation makes Insert atomic with the sequence
// assignment; the ledger itself does no distributed locking.
type HistoryStore interface {
	Count(ctx context.Context, userID int, skill model.Skill) (int, error)
	Insert(ctx context.Context, userID int, skill model.Skill, entry model.HistoryEntry) error
	List(ctx context.Context, userID int, skill model.Skill) ([]model.HistoryEntry, error)
}

// Ledger is the append-only record of completed real tests. Entries are
// numbered sequentially per user and skill and never edited or removed.
type Ledger struct {
	store HistoryStore
}

// NewLedger creates a ledger over the given store.
func NewLedger(store HistoryStore) *Ledger {
	return &Ledger{store: store}
}

// Append records a score report as the next numbered history entry.
func (l *Ledger) Append(ctx context.Context, userID int, skill model.Skill, report model.ScoreReport, now time.Time) (model.HistoryEntry, error) {
	count, err := l.store.Count(ctx, userID, skill)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("read ledger count: %w", err)
	}

	entry := model.HistoryEntry{
		Number:      count + 1,
		Date:        now,
		ScoreReport: report,
	}
	if err := l.store.Insert(ctx, userID, skill, entry); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("append ledger entry: %w", err)
	}
	return entry, nil
}

// List returns all entries in append order.
func (l *Ledger) List(ctx context.Context, userID int, skill model.Skill) ([]model.HistoryEntry, error) {
	return l.store.List(ctx, userID, skill)
}
