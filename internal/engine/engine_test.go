package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tcfprep/backend/internal/model"
)

type testAdapter struct{}

func (testAdapter) Skill() model.Skill                   { return model.SkillReading }
func (testAdapter) MediaURL(q *model.Question) string    { return "" }
func (testAdapter) SupportText(q *model.Question) string { return q.Passage }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	catalog := testCatalog(map[int]int{3: 8, 9: 8})
	eng, err := New(testAdapter{}, catalog, Options{
		Composition:  map[int]int{3: 2, 9: 3},
		TestLength:   5,
		PrepareDelay: 0,
		Rand:         rand.New(rand.NewSource(11)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return eng
}

func TestNewRejectsInvalidTable(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 2})
	_, err := New(testAdapter{}, catalog, Options{
		Table: BandingTable{{CLB: 4, Min: 400, Max: 300}},
	})
	if !errors.Is(err, ErrBandingTableInvalid) {
		t.Fatalf("expected ErrBandingTableInvalid, got %v", err)
	}
}

func TestStartSessionLifecycle(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()

	session, err := eng.StartSession(1, false, now)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if session.State != StatePreparing {
		t.Fatalf("state = %s, want %s", session.State, StatePreparing)
	}
	if len(session.Questions) != 5 {
		t.Fatalf("pool size = %d, want 5", len(session.Questions))
	}

	// A PREPARING session is replaced freely.
	replaced, err := eng.StartSession(1, false, now)
	if err != nil {
		t.Fatalf("StartSession over PREPARING failed: %v", err)
	}
	if replaced.ID == session.ID {
		t.Errorf("restart did not replace the prepared session")
	}

	if _, err := eng.ConfirmStart(1, now); err != nil {
		t.Fatalf("ConfirmStart failed: %v", err)
	}

	// An IN_PROGRESS session blocks a plain restart.
	if _, err := eng.StartSession(1, false, now); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}

	if _, _, err := eng.FinishSession(1, true, now); err != nil {
		t.Fatalf("FinishSession failed: %v", err)
	}

	// A FINISHED session with its results pending blocks too.
	if _, err := eng.StartSession(1, false, now); !errors.Is(err, ErrResultsPending) {
		t.Fatalf("expected ErrResultsPending, got %v", err)
	}

	// The discard flag overrides both.
	fresh, err := eng.StartSession(1, true, now)
	if err != nil {
		t.Fatalf("StartSession with discard failed: %v", err)
	}
	if fresh.State != StatePreparing {
		t.Errorf("discarded restart state = %s, want %s", fresh.State, StatePreparing)
	}
}

func TestFinishStoresReport(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()

	if _, err := eng.StartSession(1, false, now); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := eng.ConfirmStart(1, now); err != nil {
		t.Fatalf("ConfirmStart failed: %v", err)
	}

	// Answer everything correctly; alternative 0 is the correct one.
	for i := 0; i < 5; i++ {
		if _, _, _, err := eng.SubmitAnswer(1, 0); err != nil {
			t.Fatalf("SubmitAnswer %d failed: %v", i+1, err)
		}
	}

	report, session, err := eng.FinishSession(1, false, now)
	if err != nil {
		t.Fatalf("FinishSession failed: %v", err)
	}
	if report.TotalCorrect != 5 {
		t.Errorf("TotalCorrect = %d, want 5", report.TotalCorrect)
	}
	// Weighted: 2*3 + 3*9 = 33.
	if report.WeightedScore != 33 {
		t.Errorf("WeightedScore = %d, want 33", report.WeightedScore)
	}
	if report.Percentage != 100.0 {
		t.Errorf("Percentage = %v, want 100", report.Percentage)
	}
	if session.Report == nil || *session.Report != report {
		t.Errorf("session does not carry the stored report")
	}
}

func TestAbandonDropsSession(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()

	if _, err := eng.StartSession(1, false, now); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := eng.Abandon(1); err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if _, err := eng.Session(1); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after abandon, got %v", err)
	}
	if err := eng.Abandon(1); !errors.Is(err, ErrNoSession) {
		t.Errorf("double abandon: expected ErrNoSession, got %v", err)
	}
}

func TestRestorePrefersLiveSession(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()

	live, err := eng.StartSession(1, false, now)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	snapshot := NewTestSession(model.SkillReading, nil, now)
	eng.Restore(1, snapshot)

	got, err := eng.Session(1)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got.ID != live.ID {
		t.Errorf("restore replaced the live session")
	}

	// With no live session the snapshot is reinstated.
	eng2 := newTestEngine(t)
	eng2.Restore(2, snapshot)
	got, err = eng2.Session(2)
	if err != nil {
		t.Fatalf("Session after restore failed: %v", err)
	}
	if got.ID != snapshot.ID {
		t.Errorf("snapshot was not reinstated")
	}
}

func TestSessionsIsolatedByUser(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()

	a, err := eng.StartSession(1, false, now)
	if err != nil {
		t.Fatalf("StartSession user 1 failed: %v", err)
	}
	b, err := eng.StartSession(2, false, now)
	if err != nil {
		t.Fatalf("StartSession user 2 failed: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("users share a session")
	}

	if err := eng.Abandon(1); err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if _, err := eng.Session(2); err != nil {
		t.Errorf("abandoning user 1 dropped user 2's session: %v", err)
	}
}

func TestPracticeFlow(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Filter(1); !errors.Is(err, ErrNoFilter) {
		t.Fatalf("expected ErrNoFilter before SetFilter, got %v", err)
	}

	filter := eng.SetFilter(1, 9, ModeNormal, nil)
	if filter.Len() != 8 {
		t.Fatalf("filter length = %d, want 8", filter.Len())
	}

	q, correct, err := eng.PracticeAnswer(1, 0)
	if err != nil {
		t.Fatalf("PracticeAnswer failed: %v", err)
	}
	if !correct {
		t.Errorf("alternative 0 should be correct for %s", q.ID)
	}

	if _, _, err := eng.PracticeAnswer(1, 9); !errors.Is(err, ErrInvalidAlternative) {
		t.Errorf("expected ErrInvalidAlternative, got %v", err)
	}

	next, err := eng.Navigate(1, true)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	prev, err := eng.Navigate(1, false)
	if err != nil {
		t.Fatalf("Navigate back failed: %v", err)
	}
	if next.ID == "" || prev.ID == "" {
		t.Errorf("navigation returned empty questions")
	}
	if prev.ID != q.ID {
		t.Errorf("forward then back landed on %s, want %s", prev.ID, q.ID)
	}
}
