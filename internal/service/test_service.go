package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/model"
)

// SessionEvent is published on the user's session channel after every
// mutation and forwarded to the WebSocket stream for navigation-dot
// rendering.
type SessionEvent struct {
	Type        string              `json:"type"`
	State       engine.SessionState `json:"state,omitempty"`
	Position    int                 `json:"position,omitempty"`
	AnsweredSet []bool              `json:"answered_set,omitempty"`
	Unanswered  int                 `json:"unanswered,omitempty"`
}

// SessionView is the render-tick state of the real-test surface.
type SessionView struct {
	ID             string                   `json:"id"`
	State          engine.SessionState      `json:"state"`
	Position       int                      `json:"position"`
	Total          int                      `json:"total"`
	AnsweredSet    []bool                   `json:"answered_set"`
	Unanswered     int                      `json:"unanswered"`
	ReadyInSeconds float64                  `json:"ready_in_seconds,omitempty"`
	Question       *model.QuestionForClient `json:"question,omitempty"`
	MediaURL       string                   `json:"media_url,omitempty"`
	Report         *model.ScoreReport       `json:"report,omitempty"`
}

// SubmitResult is the immediate feedback for one real-test answer.
type SubmitResult struct {
	Correct bool `json:"correct"`
	// Session reflects the forced advance to the next unanswered question.
	Session *SessionView `json:"session"`
}

// FinishResult pairs the score report with its ledger entry. Entry is
// nil when the ledger write failed; the report itself is never withheld.
type FinishResult struct {
	Report model.ScoreReport   `json:"report"`
	Entry  *model.HistoryEntry `json:"entry,omitempty"`
}

// TestService drives the timed real-test session lifecycle. In-memory
// session state is the source of truth; Redis holds a crash snapshot
// and PostgreSQL the completed history — both eventually consistent
// mirrors that the UI never waits on.
type TestService struct {
	engines map[model.Skill]*engine.Engine
	ledger  *engine.Ledger
	queue   *TrackingQueue
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(
	engines map[model.Skill]*engine.Engine,
	ledger *engine.Ledger,
	queue *TrackingQueue,
	rdb *redis.Client,
	log zerolog.Logger,
) *TestService {
	return &TestService{
		engines: engines,
		ledger:  ledger,
		queue:   queue,
		rdb:     rdb,
		log:     log.With().Str("component", "test_service").Logger(),
	}
}

// Start assembles a new session pool and enters PREPARING. Starting
// over a finished session whose results are still on screen requires
// the explicit discard flag.
func (s *TestService) Start(ctx context.Context, userID int, skill model.Skill, discardPrevious bool) (*SessionView, error) {
	eng := s.engines[skill]
	if eng.Catalog().Empty() {
		return nil, ErrCatalogUnavailable
	}

	session, err := eng.StartSession(userID, discardPrevious, time.Now())
	if err != nil {
		return nil, err
	}

	s.snapshot(ctx, userID, skill, session)
	s.publish(ctx, userID, skill, SessionEvent{Type: "prepared", State: session.State})
	return s.view(eng, session), nil
}

// Confirm commits the prepared session once the pacing delay elapsed.
func (s *TestService) Confirm(ctx context.Context, userID int, skill model.Skill) (*SessionView, error) {
	eng := s.engines[skill]
	session, err := eng.ConfirmStart(userID, time.Now())
	if err != nil {
		return nil, err
	}

	s.snapshot(ctx, userID, skill, session)
	s.publish(ctx, userID, skill, SessionEvent{Type: "started", State: session.State})
	return s.view(eng, session), nil
}

// State returns the live session, recovering it from the Redis snapshot
// after a process restart so in-progress work survives a crash.
func (s *TestService) State(ctx context.Context, userID int, skill model.Skill) (*SessionView, error) {
	eng := s.engines[skill]
	session, err := eng.Session(userID)
	if errors.Is(err, engine.ErrNoSession) {
		session, err = s.restore(ctx, userID, skill)
	}
	if err != nil {
		return nil, err
	}
	return s.view(eng, session), nil
}

// Submit records the answer on the current question. The in-memory
// state change and the response are synchronous; the tracking increment
// and snapshot are fire-and-forget behind them.
func (s *TestService) Submit(ctx context.Context, userID int, skill model.Skill, alternative int) (*SubmitResult, error) {
	eng := s.engines[skill]
	answered, correct, session, err := eng.SubmitAnswer(userID, alternative)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(ctx, model.TrackingEvent{UserID: userID, QuestionID: answered.ID, Correct: correct})
	s.snapshot(ctx, userID, skill, session)
	s.publish(ctx, userID, skill, SessionEvent{
		Type:        "answered",
		State:       session.State,
		Position:    session.Cursor + 1,
		AnsweredSet: session.AnsweredSet(),
		Unanswered:  session.Unanswered(),
	})

	return &SubmitResult{Correct: correct, Session: s.view(eng, session)}, nil
}

// Jump moves the cursor to an arbitrary position without changing state.
func (s *TestService) Jump(ctx context.Context, userID int, skill model.Skill, position int) (*SessionView, error) {
	eng := s.engines[skill]
	session, err := eng.Jump(userID, position)
	if err != nil {
		return nil, err
	}
	s.snapshot(ctx, userID, skill, session)
	return s.view(eng, session), nil
}

// Finish freezes and scores the session, then appends the report to the
// history ledger. A ledger write failure is surfaced as a warning with
// the report intact — scoring is never rolled back.
func (s *TestService) Finish(ctx context.Context, userID int, skill model.Skill, acknowledgeUnanswered bool) (*FinishResult, error) {
	eng := s.engines[skill]
	report, session, err := eng.FinishSession(userID, acknowledgeUnanswered, time.Now())
	if err != nil {
		return nil, err
	}

	result := &FinishResult{Report: report}
	entry, err := s.ledger.Append(ctx, userID, skill, report, session.FinishedAt)
	if err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("History append failed")
	} else {
		result.Entry = &entry
	}

	s.snapshot(ctx, userID, skill, session)
	s.publish(ctx, userID, skill, SessionEvent{Type: "finished", State: session.State})
	return result, nil
}

// Abandon drops the session in any state. The snapshot is cleared and
// nothing reaches the ledger.
func (s *TestService) Abandon(ctx context.Context, userID int, skill model.Skill) error {
	eng := s.engines[skill]
	if err := eng.Abandon(userID); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SessionSnapshotKey(string(skill), userID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Snapshot delete failed")
	}
	s.publish(ctx, userID, skill, SessionEvent{Type: "abandoned"})
	return nil
}

// publish pushes a session event onto the user's channel for the
// WebSocket stream. Best-effort: a failed publish only costs a push
// update, the state endpoint stays authoritative.
func (s *TestService) publish(ctx context.Context, userID int, skill model.Skill, event SessionEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("Encode session event failed")
		return
	}
	channel := config.CacheKey.SessionChannel(string(skill), userID)
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("Session event publish failed")
	}
}

// snapshot mirrors the session to Redis. Failures are logged and never
// block or roll back the in-memory state.
func (s *TestService) snapshot(ctx context.Context, userID int, skill model.Skill, session *engine.TestSession) {
	raw, err := json.Marshal(session)
	if err != nil {
		s.log.Error().Err(err).Msg("Encode session snapshot failed")
		return
	}
	key := config.CacheKey.SessionSnapshotKey(string(skill), userID)
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Session snapshot write failed")
	}
}

// restore rebuilds an in-memory session from the crash snapshot.
func (s *TestService) restore(ctx context.Context, userID int, skill model.Skill) (*engine.TestSession, error) {
	key := config.CacheKey.SessionSnapshotKey(string(skill), userID)
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, engine.ErrNoSession
	}
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Snapshot read failed")
		return nil, engine.ErrNoSession
	}

	var session engine.TestSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.log.Error().Err(err).Msg("Decode session snapshot failed")
		return nil, engine.ErrNoSession
	}

	eng := s.engines[skill]
	eng.Restore(userID, &session)
	s.log.Info().Int("user_id", userID).Str("skill", string(skill)).Msg("Session restored from snapshot")
	return eng.Session(userID)
}

func (s *TestService) view(eng *engine.Engine, session *engine.TestSession) *SessionView {
	view := &SessionView{
		ID:          session.ID.String(),
		State:       session.State,
		Position:    session.Cursor + 1,
		Total:       len(session.Questions),
		AnsweredSet: session.AnsweredSet(),
		Unanswered:  session.Unanswered(),
		Report:      session.Report,
	}

	if session.State == engine.StatePreparing {
		if remaining := time.Until(session.ReadyAt); remaining > 0 {
			view.ReadyInSeconds = remaining.Seconds()
		}
		// Questions are withheld until the start is confirmed.
		return view
	}

	if current := session.Current(); current != nil {
		sanitized := current.Question.Sanitize()
		view.Question = &sanitized
		view.MediaURL = eng.Adapter().MediaURL(&current.Question)
	}
	return view
}
