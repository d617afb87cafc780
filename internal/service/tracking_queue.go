package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/model"
)

// TrackingQueue is the fire-and-forget path for answer-tracking
// increments. Both practice and real-test submissions feed the same
// queue: a question answered during a timed test counts toward the same
// lifetime statistics as one answered in free practice.
type TrackingQueue struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewTrackingQueue creates a new TrackingQueue.
func NewTrackingQueue(rdb *redis.Client, log zerolog.Logger) *TrackingQueue {
	return &TrackingQueue{
		rdb: rdb,
		log: log.With().Str("component", "tracking_queue").Logger(),
	}
}

// Enqueue pushes one increment onto the persistence queue. A push
// failure is reported as a warning and never rolls back the
// already-applied UI state.
func (q *TrackingQueue) Enqueue(ctx context.Context, event model.TrackingEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		q.log.Error().Err(err).Msg("Encode tracking event failed")
		return
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.PersistTrackingQueue, raw).Err(); err != nil {
		q.log.Warn().Err(err).
			Int("user_id", event.UserID).
			Str("question_id", event.QuestionID).
			Msg("Tracking enqueue failed, answer feedback unaffected")
	}
}
