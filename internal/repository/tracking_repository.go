package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tcfprep/backend/internal/model"
)

// TrackingRepository handles per-question answer statistics. Writes are
// increments, never overwrites, so queue completions that land out of
// program order still sum correctly.
type TrackingRepository struct {
	pool *pgxpool.Pool
}

// NewTrackingRepository creates a new TrackingRepository.
func NewTrackingRepository(pool *pgxpool.Pool) *TrackingRepository {
	return &TrackingRepository{pool: pool}
}

// Increment bumps the matching counter and stamps the answer time,
// creating the record lazily on first answer.
func (r *TrackingRepository) Increment(ctx context.Context, userID int, questionID string, correct bool) error {
	correctDelta, wrongDelta := 0, 1
	if correct {
		correctDelta, wrongDelta = 1, 0
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO answer_stats (user_id, question_id, correct, wrong, last_answered_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id, question_id) DO UPDATE
		 SET correct = answer_stats.correct + EXCLUDED.correct,
		     wrong = answer_stats.wrong + EXCLUDED.wrong,
		     last_answered_at = NOW()`,
		userID, questionID, correctDelta, wrongDelta,
	)
	return err
}

// Get returns the record for one question. Absence is a valid state and
// reads as the zero record, not an error.
func (r *TrackingRepository) Get(ctx context.Context, userID int, questionID string) (model.AnswerRecord, error) {
	var rec model.AnswerRecord
	err := r.pool.QueryRow(ctx,
		`SELECT correct, wrong, last_answered_at
		 FROM answer_stats
		 WHERE user_id = $1 AND question_id = $2`, userID, questionID,
	).Scan(&rec.Correct, &rec.Wrong, &rec.LastAnsweredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AnswerRecord{}, nil
	}
	if err != nil {
		return model.AnswerRecord{}, err
	}
	return rec, nil
}

// MapForSkill returns the user's records for every question of a skill,
// keyed by question id. Questions never answered are simply absent.
func (r *TrackingRepository) MapForSkill(ctx context.Context, userID int, skill model.Skill) (map[string]model.AnswerRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.question_id, s.correct, s.wrong, s.last_answered_at
		 FROM answer_stats s
		 JOIN questions q ON q.id = s.question_id
		 WHERE s.user_id = $1 AND q.skill = $2`, userID, skill,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]model.AnswerRecord)
	for rows.Next() {
		var id string
		var rec model.AnswerRecord
		if err := rows.Scan(&id, &rec.Correct, &rec.Wrong, &rec.LastAnsweredAt); err != nil {
			return nil, err
		}
		records[id] = rec
	}
	return records, rows.Err()
}
