package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/tcfprep/backend/internal/model"
)

// SessionState enumerates real-test session states. Idle is the absence
// of a session and has no representation here.
type SessionState string

const (
	StatePreparing  SessionState = "PREPARING"
	StateInProgress SessionState = "IN_PROGRESS"
	StateFinished   SessionState = "FINISHED"
)

// NoSelection marks an unanswered session question.
const NoSelection = -1

// SessionQuestion annotates a catalog question for the duration of one
// session. It is discarded with the session unless the session finishes
// and its report is recorded.
type SessionQuestion struct {
	model.Question
	Position int `json:"position"`
	Selected int `json:"selected"`
}

// Answered reports whether a selection has been recorded.
func (sq *SessionQuestion) Answered() bool {
	return sq.Selected != NoSelection
}

// CorrectlyAnswered reports whether the recorded selection matches the
// correct alternative.
func (sq *SessionQuestion) CorrectlyAnswered() bool {
	return sq.Answered() && sq.Selected == sq.CorrectIndex()
}

// TestSession is the live real-test attempt. Exactly one exists per
// user and skill at a time. All fields are exported so the session can
// round-trip through the JSON crash snapshot.
type TestSession struct {
	ID        uuid.UUID         `json:"id"`
	Skill     model.Skill       `json:"skill"`
	State     SessionState      `json:"state"`
	Questions []SessionQuestion `json:"questions"`
	// Cursor is a 0-based index into Questions.
	Cursor     int                `json:"cursor"`
	ReadyAt    time.Time          `json:"ready_at"`
	StartedAt  time.Time          `json:"started_at,omitzero"`
	FinishedAt time.Time          `json:"finished_at,omitzero"`
	Report     *model.ScoreReport `json:"report,omitempty"`
}

// NewTestSession creates a session in PREPARING over the given pool.
// ReadyAt gates the start confirmation: the pacing delay gives the UI
// its "preparing" affordance before the first question is shown.
func NewTestSession(skill model.Skill, pool []SessionQuestion, readyAt time.Time) *TestSession {
	return &TestSession{
		ID:        uuid.New(),
		Skill:     skill,
		State:     StatePreparing,
		Questions: pool,
		ReadyAt:   readyAt,
	}
}

// Current returns the question under the cursor, or nil for an empty pool.
func (s *TestSession) Current() *SessionQuestion {
	if len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[s.Cursor]
}

// ConfirmStart moves PREPARING → IN_PROGRESS. The transition never
// happens implicitly: a user who walks away from the preparation view
// has committed nothing.
func (s *TestSession) ConfirmStart(now time.Time) error {
	switch s.State {
	case StateInProgress:
		return ErrSessionNotInProgress
	case StateFinished:
		return ErrSessionFinished
	}
	if now.Before(s.ReadyAt) {
		return ErrSessionNotReady
	}
	s.State = StateInProgress
	s.StartedAt = now
	return nil
}

// Submit records the selected alternative on the current question and
// advances the cursor to the next unanswered question in circular scan
// order starting just after the current position. Returns whether the
// selection was correct.
//
// Re-answering an already answered question overwrites the selection;
// the forced advance still applies.
func (s *TestSession) Submit(alternative int) (bool, error) {
	if s.State == StateFinished {
		return false, ErrSessionFinished
	}
	if s.State != StateInProgress {
		return false, ErrSessionNotInProgress
	}
	current := s.Current()
	if current == nil {
		return false, ErrNoSession
	}
	if alternative < 0 || alternative >= len(current.Alternatives) {
		return false, ErrInvalidAlternative
	}

	current.Selected = alternative
	s.advance()
	return current.CorrectlyAnswered(), nil
}

// advance scans (cursor+1) mod N, (cursor+2) mod N, ... for the next
// unanswered question. With none left the cursor stays put and the
// session is eligible to finish.
func (s *TestSession) advance() {
	n := len(s.Questions)
	for step := 1; step <= n; step++ {
		idx := (s.Cursor + step) % n
		if !s.Questions[idx].Answered() {
			s.Cursor = idx
			return
		}
	}
}

// JumpTo moves the cursor to an arbitrary 1-based position. Free
// navigation is always allowed in progress and does not change state.
func (s *TestSession) JumpTo(position int) error {
	if s.State == StateFinished {
		return ErrSessionFinished
	}
	if s.State != StateInProgress {
		return ErrSessionNotInProgress
	}
	if position < 1 || position > len(s.Questions) {
		return ErrInvalidPosition
	}
	s.Cursor = position - 1
	return nil
}

// AnsweredSet returns one flag per question for navigation-dot rendering.
func (s *TestSession) AnsweredSet() []bool {
	set := make([]bool, len(s.Questions))
	for i := range s.Questions {
		set[i] = s.Questions[i].Answered()
	}
	return set
}

// Unanswered returns the number of questions without a selection.
func (s *TestSession) Unanswered() int {
	count := 0
	for i := range s.Questions {
		if !s.Questions[i].Answered() {
			count++
		}
	}
	return count
}

// Finish moves IN_PROGRESS → FINISHED. Finishing with gaps is allowed —
// they score as incorrect — but never silently: without acknowledgement
// the call fails with an UnansweredError naming the gap count. After
// this the session is frozen read-only for review.
func (s *TestSession) Finish(acknowledgeUnanswered bool, now time.Time) error {
	if s.State == StateFinished {
		return ErrSessionFinished
	}
	if s.State != StateInProgress {
		return ErrSessionNotInProgress
	}
	if gaps := s.Unanswered(); gaps > 0 && !acknowledgeUnanswered {
		return &UnansweredError{Count: gaps}
	}
	s.State = StateFinished
	s.FinishedAt = now
	return nil
}
