package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tcfprep/backend/internal/model"
)

// CatalogRepository handles question catalog data access. The catalog
// is read-only at runtime; writes happen through the seed tool.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListBySkill retrieves the full catalog for a skill, ordered by source
// test and ordinal.
func (r *CatalogRepository) ListBySkill(ctx context.Context, skill model.Skill) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, skill, weight, alternatives, media_ref, passage, source_test, ordinal
		 FROM questions WHERE skill = $1
		 ORDER BY source_test, ordinal`, skill,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var alternatives []byte
		if err := rows.Scan(&q.ID, &q.Skill, &q.Weight, &alternatives, &q.MediaRef, &q.Passage, &q.SourceTest, &q.Ordinal); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(alternatives, &q.Alternatives); err != nil {
			return nil, fmt.Errorf("question %s: decode alternatives: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Insert stores one catalog question. Used by the seed tool; re-seeding
// the same id replaces the entry.
func (r *CatalogRepository) Insert(ctx context.Context, q *model.Question) error {
	alternatives, err := json.Marshal(q.Alternatives)
	if err != nil {
		return fmt.Errorf("encode alternatives: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO questions (id, skill, weight, alternatives, media_ref, passage, source_test, ordinal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET skill = EXCLUDED.skill, weight = EXCLUDED.weight,
		     alternatives = EXCLUDED.alternatives, media_ref = EXCLUDED.media_ref,
		     passage = EXCLUDED.passage, source_test = EXCLUDED.source_test,
		     ordinal = EXCLUDED.ordinal`,
		q.ID, q.Skill, q.Weight, alternatives, q.MediaRef, q.Passage, q.SourceTest, q.Ordinal,
	)
	return err
}
