package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tcfprep/backend/internal/model"
)

// HistoryRepository is the Postgres backing store for the test history
// ledger. The primary key on (user_id, skill, number) guarantees the
// ledger can never hold two entries with the same sequence number.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Count returns the number of ledger entries for a user and skill.
func (r *HistoryRepository) Count(ctx context.Context, userID int, skill model.Skill) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_history WHERE user_id = $1 AND skill = $2`,
		userID, skill,
	).Scan(&count)
	return count, err
}

// Insert appends one ledger entry. Entries are never updated or deleted.
func (r *HistoryRepository) Insert(ctx context.Context, userID int, skill model.Skill, entry model.HistoryEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_history
		 (user_id, skill, number, date, total_correct, weighted_score, percentage, clb_level, cefr_band, not_reached)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		userID, skill, entry.Number, entry.Date,
		entry.TotalCorrect, entry.WeightedScore, entry.Percentage,
		entry.CLBLevel, entry.CEFRBand, entry.NotReached,
	)
	return err
}

// List returns all ledger entries in append order.
func (r *HistoryRepository) List(ctx context.Context, userID int, skill model.Skill) ([]model.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT number, date, total_correct, weighted_score, percentage, clb_level, cefr_band, not_reached
		 FROM test_history
		 WHERE user_id = $1 AND skill = $2
		 ORDER BY number`, userID, skill,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.Number, &e.Date, &e.TotalCorrect, &e.WeightedScore, &e.Percentage, &e.CLBLevel, &e.CEFRBand, &e.NotReached); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
