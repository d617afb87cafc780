package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/repository"
)

// PracticeService drives free (non-timed) practice: filter composition,
// navigation, and answer feedback.
type PracticeService struct {
	engines      map[model.Skill]*engine.Engine
	trackingRepo *repository.TrackingRepository
	queue        *TrackingQueue
	log          zerolog.Logger
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	engines map[model.Skill]*engine.Engine,
	trackingRepo *repository.TrackingRepository,
	queue *TrackingQueue,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		engines:      engines,
		trackingRepo: trackingRepo,
		queue:        queue,
		log:          log.With().Str("component", "practice_service").Logger(),
	}
}

// PracticeView is the render-tick state of the practice surface.
type PracticeView struct {
	Weight   int                      `json:"weight"`
	Mode     engine.PracticeMode      `json:"mode"`
	Position int                      `json:"position"`
	Total    int                      `json:"total"`
	Question *model.QuestionForClient `json:"question,omitempty"`
	MediaURL string                   `json:"media_url,omitempty"`
}

// PracticeAnswerResult is the immediate feedback for one practice answer.
type PracticeAnswerResult struct {
	Correct           bool               `json:"correct"`
	CorrectIndex      int                `json:"correct_index"`
	SupportText       string             `json:"support_text,omitempty"`
	Record            model.AnswerRecord `json:"record"`
	DeservesAttention bool               `json:"deserves_attention"`
}

// SetFilter rebuilds the user's active practice list. The answer
// history snapshot is read synchronously; a read failure degrades to an
// empty snapshot rather than blocking the filter change.
func (s *PracticeService) SetFilter(ctx context.Context, userID int, skill model.Skill, weight int, mode engine.PracticeMode) (*PracticeView, error) {
	eng := s.engines[skill]
	if eng.Catalog().Empty() {
		return nil, ErrCatalogUnavailable
	}

	records, err := s.trackingRepo.MapForSkill(ctx, userID, skill)
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Tracking snapshot read failed, filtering without history")
		records = map[string]model.AnswerRecord{}
	}

	filter := eng.SetFilter(userID, weight, mode, records)
	return s.view(eng, filter), nil
}

// Current returns the question under the practice cursor.
func (s *PracticeService) Current(userID int, skill model.Skill) (*PracticeView, error) {
	eng := s.engines[skill]
	filter, err := eng.Filter(userID)
	if err != nil {
		return nil, err
	}
	return s.view(eng, filter), nil
}

// Navigate moves the practice cursor forward or backward.
func (s *PracticeService) Navigate(userID int, skill model.Skill, forward bool) (*PracticeView, error) {
	eng := s.engines[skill]
	if _, err := eng.Navigate(userID, forward); err != nil {
		return nil, err
	}
	filter, err := eng.Filter(userID)
	if err != nil {
		return nil, err
	}
	return s.view(eng, filter), nil
}

// SubmitAnswer checks the selection, enqueues the tracking increment
// fire-and-forget, and returns feedback with an optimistically updated
// record — the UI never waits on storage.
func (s *PracticeService) SubmitAnswer(ctx context.Context, userID int, skill model.Skill, alternative int) (*PracticeAnswerResult, error) {
	eng := s.engines[skill]
	question, correct, err := eng.PracticeAnswer(userID, alternative)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(ctx, model.TrackingEvent{UserID: userID, QuestionID: question.ID, Correct: correct})

	// Optimistic record: the stored counters plus the increment that is
	// still in flight on the queue.
	record, err := s.trackingRepo.Get(ctx, userID, question.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("question_id", question.ID).Msg("Tracking read failed")
		record = model.AnswerRecord{}
	}
	if correct {
		record.Correct++
	} else {
		record.Wrong++
	}
	record.LastAnsweredAt = time.Now()

	return &PracticeAnswerResult{
		Correct:           correct,
		CorrectIndex:      question.CorrectIndex(),
		SupportText:       eng.Adapter().SupportText(&question),
		Record:            record,
		DeservesAttention: engine.DeservesAttention(record),
	}, nil
}

func (s *PracticeService) view(eng *engine.Engine, filter *engine.PracticeFilter) *PracticeView {
	view := &PracticeView{
		Weight:   filter.Weight,
		Mode:     filter.Mode,
		Position: filter.Position(),
		Total:    filter.Len(),
	}
	if current := filter.Current(); current != nil {
		sanitized := current.Sanitize()
		view.Question = &sanitized
		view.MediaURL = eng.Adapter().MediaURL(current)
	}
	return view
}
