package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/repository"
)

// TrackingWorker consumes the tracking queue and applies increment
// upserts to PostgreSQL. Because every write is an increment rather
// than a last-write-wins overwrite, queue items completing out of the
// order they were issued still sum correctly.
type TrackingWorker struct {
	trackingRepo *repository.TrackingRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewTrackingWorker creates a new TrackingWorker.
func NewTrackingWorker(trackingRepo *repository.TrackingRepository, rdb *redis.Client, log zerolog.Logger) *TrackingWorker {
	return &TrackingWorker{
		trackingRepo: trackingRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "tracking_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *TrackingWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *TrackingWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistTrackingQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var event model.TrackingEvent
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.trackingRepo.Increment(ctx, event.UserID, event.QuestionID, event.Correct); err != nil {
		w.log.Error().Err(err).
			Int("user_id", event.UserID).
			Str("question_id", event.QuestionID).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.PersistTrackingQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

// drain processes all remaining items in the queue before shutdown.
func (w *TrackingWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.PersistTrackingQueue).Result()
		if err != nil {
			break
		}

		var event model.TrackingEvent
		if err := json.Unmarshal([]byte(result), &event); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.trackingRepo.Increment(ctx, event.UserID, event.QuestionID, event.Correct); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.PersistTrackingQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
