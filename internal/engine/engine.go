package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/tcfprep/backend/internal/model"
)

// SubjectAdapter abstracts the differences between the listening and
// reading surfaces so one engine serves both. Media resolution and
// supplementary text are presentation inputs the engine passes through
// untouched.
type SubjectAdapter interface {
	Skill() model.Skill
	// MediaURL resolves a question's media reference to a client URL,
	// or "" when the question carries none.
	MediaURL(q *model.Question) string
	// SupportText returns the transcript or passage shown alongside a
	// question in review.
	SupportText(q *model.Question) string
}

// Options tunes an engine instance.
type Options struct {
	// Composition is the real-test pool recipe, weight → count.
	Composition map[int]int
	// TestLength is the fixed percentage denominator.
	TestLength int
	// PrepareDelay gates the PREPARING → IN_PROGRESS confirmation.
	PrepareDelay time.Duration
	// Table is the banding table; nil selects the default.
	Table BandingTable
	// Rand lets tests inject a deterministic source.
	Rand *rand.Rand
}

// Engine is one constructed practice/test instance for a single skill.
// Multiple instances (listening and reading) run concurrently over the
// same storage backend without cross-talk; all per-user state lives
// here, never in package globals.
//
// A mutex serializes every operation, standing in for the event-loop
// serialization the browser runtime provided: two submissions from one
// user can never race in-process.
type Engine struct {
	adapter      SubjectAdapter
	catalog      *Catalog
	sampler      *Sampler
	table        BandingTable
	composition  map[int]int
	testLength   int
	prepareDelay time.Duration
	rng          *rand.Rand

	mu       sync.Mutex
	sessions map[int]*TestSession
	filters  map[int]*PracticeFilter
}

// New constructs an engine. The banding table is validated here so a
// defective configuration fails before any session is accepted.
func New(adapter SubjectAdapter, catalog *Catalog, opts Options) (*Engine, error) {
	table := opts.Table
	if table == nil {
		table = DefaultBandingTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		adapter:      adapter,
		catalog:      catalog,
		sampler:      NewSampler(catalog, rng),
		table:        table,
		composition:  opts.Composition,
		testLength:   opts.TestLength,
		prepareDelay: opts.PrepareDelay,
		rng:          rng,
		sessions:     make(map[int]*TestSession),
		filters:      make(map[int]*PracticeFilter),
	}, nil
}

// Adapter returns the subject adapter.
func (e *Engine) Adapter() SubjectAdapter {
	return e.adapter
}

// Catalog returns the read-only catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// TestLength returns the fixed percentage denominator.
func (e *Engine) TestLength() int {
	return e.testLength
}

// ─── Real-test session operations ──────────────────────────────────

// StartSession assembles a pool and enters PREPARING. A finished
// session whose results are still viewable, or a still-active one, is
// destroyed only with the explicit discard flag.
func (e *Engine) StartSession(userID int, discardPrevious bool, now time.Time) (*TestSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prev, ok := e.sessions[userID]; ok && !discardPrevious {
		if prev.State == StateFinished {
			return nil, ErrResultsPending
		}
		if prev.State == StateInProgress {
			return nil, ErrSessionActive
		}
		// A PREPARING session was never committed; replace it freely.
	}

	pool, err := e.sampler.BuildPool(e.composition)
	if err != nil {
		return nil, err
	}

	session := NewTestSession(e.adapter.Skill(), pool, now.Add(e.prepareDelay))
	e.sessions[userID] = session
	return session, nil
}

// ConfirmStart commits the prepared session once the pacing delay has
// elapsed.
func (e *Engine) ConfirmStart(userID int, now time.Time) (*TestSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	if err := session.ConfirmStart(now); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns the user's live session.
func (e *Engine) Session(userID int) (*TestSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

// SubmitAnswer records a selection on the current question and advances
// the cursor. It returns the answered question and whether the
// selection was correct, for tracking and immediate UI feedback.
func (e *Engine) SubmitAnswer(userID, alternative int) (answered SessionQuestion, correct bool, session *TestSession, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[userID]
	if !ok {
		return SessionQuestion{}, false, nil, ErrNoSession
	}
	current := session.Current()
	correct, err = session.Submit(alternative)
	if err != nil {
		return SessionQuestion{}, false, nil, err
	}
	return *current, correct, session, nil
}

// Jump moves the session cursor to a 1-based position.
func (e *Engine) Jump(userID, position int) (*TestSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	if err := session.JumpTo(position); err != nil {
		return nil, err
	}
	return session, nil
}

// FinishSession freezes the session and scores it. The report is stored
// on the session for review until the session is discarded.
func (e *Engine) FinishSession(userID int, acknowledgeUnanswered bool, now time.Time) (model.ScoreReport, *TestSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[userID]
	if !ok {
		return model.ScoreReport{}, nil, ErrNoSession
	}
	if err := session.Finish(acknowledgeUnanswered, now); err != nil {
		return model.ScoreReport{}, nil, err
	}

	report, err := Score(session, e.testLength, e.table)
	if err != nil {
		return model.ScoreReport{}, nil, err
	}
	session.Report = &report
	return report, session, nil
}

// Abandon drops the user's session in any state. Nothing is scored and
// nothing reaches the history ledger.
func (e *Engine) Abandon(userID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.sessions[userID]; !ok {
		return ErrNoSession
	}
	delete(e.sessions, userID)
	return nil
}

// Restore reinstates a session recovered from the crash snapshot. A
// live in-memory session wins over the snapshot.
func (e *Engine) Restore(userID int, session *TestSession) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.sessions[userID]; !ok {
		e.sessions[userID] = session
	}
}

// ─── Practice operations ───────────────────────────────────────────

// SetFilter rebuilds the user's practice list. records is the current
// answer-history snapshot; the list is shuffled once here and stays
// stable until the next filter change.
func (e *Engine) SetFilter(userID, weight int, mode PracticeMode, records map[string]model.AnswerRecord) *PracticeFilter {
	e.mu.Lock()
	defer e.mu.Unlock()

	filter := NewPracticeFilter(e.catalog, weight, mode, records, e.rng)
	e.filters[userID] = filter
	return filter
}

// Filter returns the user's active practice filter.
func (e *Engine) Filter(userID int) (*PracticeFilter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	filter, ok := e.filters[userID]
	if !ok {
		return nil, ErrNoFilter
	}
	return filter, nil
}

// Navigate moves the practice cursor and returns the new current question.
func (e *Engine) Navigate(userID int, forward bool) (*model.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	filter, ok := e.filters[userID]
	if !ok {
		return nil, ErrNoFilter
	}
	if filter.Len() == 0 {
		return nil, ErrEmptyFilter
	}
	if forward {
		filter.Next()
	} else {
		filter.Prev()
	}
	return filter.Current(), nil
}

// PracticeAnswer checks a selection against the current practice
// question. Correctness feedback is immediate; persistence of the
// tracking increment is the caller's fire-and-forget concern.
func (e *Engine) PracticeAnswer(userID, alternative int) (question model.Question, correct bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	filter, ok := e.filters[userID]
	if !ok {
		return model.Question{}, false, ErrNoFilter
	}
	current := filter.Current()
	if current == nil {
		return model.Question{}, false, ErrEmptyFilter
	}
	if alternative < 0 || alternative >= len(current.Alternatives) {
		return model.Question{}, false, ErrInvalidAlternative
	}
	return *current, alternative == current.CorrectIndex(), nil
}
