package engine

import (
	"errors"
	"testing"
)

func TestDefaultBandingTableValid(t *testing.T) {
	if err := DefaultBandingTable().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestBandingTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		table BandingTable
	}{
		{"empty", BandingTable{}},
		{"min above max", BandingTable{
			{CLB: 4, Min: 400, Max: 300, CEFR: "B1"},
		}},
		{"gap between ranges", BandingTable{
			{CLB: 4, Min: 331, Max: 368, CEFR: "B1"},
			{CLB: 5, Min: 370, Max: 397, CEFR: "B1"},
		}},
		{"overlapping ranges", BandingTable{
			{CLB: 4, Min: 331, Max: 368, CEFR: "B1"},
			{CLB: 5, Min: 368, Max: 397, CEFR: "B1"},
		}},
		{"non-ascending levels", BandingTable{
			{CLB: 5, Min: 331, Max: 368, CEFR: "B1"},
			{CLB: 5, Min: 369, Max: 397, CEFR: "B1"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if !errors.Is(err, ErrBandingTableInvalid) {
				t.Fatalf("expected ErrBandingTableInvalid, got %v", err)
			}
		})
	}
}

func TestBandingTableLookup(t *testing.T) {
	table := DefaultBandingTable()

	tests := []struct {
		score          int
		wantCLB        int
		wantCEFR       string
		wantNotReached bool
	}{
		{0, 4, "B1", true},
		{330, 4, "B1", true},
		{331, 4, "B1", false},
		{368, 4, "B1", false},
		{369, 5, "B1", false},
		{457, 6, "B1+", false},
		{458, 7, "B2", false},
		{548, 9, "C1", false},
		{549, 10, "C1+", false},
		{699, 10, "C1+", false},
		{1000, 10, "C1+", false},
	}

	for _, tt := range tests {
		band, notReached := table.Lookup(tt.score)
		if band.CLB != tt.wantCLB || band.CEFR != tt.wantCEFR || notReached != tt.wantNotReached {
			t.Errorf("Lookup(%d) = CLB %d %s notReached=%v, want CLB %d %s notReached=%v",
				tt.score, band.CLB, band.CEFR, notReached, tt.wantCLB, tt.wantCEFR, tt.wantNotReached)
		}
	}
}

func TestScoreRequiresFinishedSession(t *testing.T) {
	session := &TestSession{State: StateInProgress}
	if _, err := Score(session, 39, DefaultBandingTable()); !errors.Is(err, ErrSessionNotFinished) {
		t.Fatalf("expected ErrSessionNotFinished, got %v", err)
	}
}

func TestScoreWeightedSumAndPercentage(t *testing.T) {
	// 4 questions answered correctly (weights 15+21+26+33 = 95), one
	// wrong, one left unanswered. Denominator is the paper length, so
	// the unanswered question counts against the percentage.
	pool := []SessionQuestion{
		{Question: makeBucket(15, 1)[0], Position: 1, Selected: 0},
		{Question: makeBucket(21, 1)[0], Position: 2, Selected: 0},
		{Question: makeBucket(26, 1)[0], Position: 3, Selected: 0},
		{Question: makeBucket(33, 1)[0], Position: 4, Selected: 0},
		{Question: makeBucket(9, 1)[0], Position: 5, Selected: 2},
		{Question: makeBucket(3, 1)[0], Position: 6, Selected: NoSelection},
	}
	session := &TestSession{State: StateFinished, Questions: pool}

	report, err := Score(session, 8, DefaultBandingTable())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if report.TotalCorrect != 4 {
		t.Errorf("TotalCorrect = %d, want 4", report.TotalCorrect)
	}
	if report.WeightedScore != 95 {
		t.Errorf("WeightedScore = %d, want 95", report.WeightedScore)
	}
	if report.Percentage != 50.0 {
		t.Errorf("Percentage = %v, want 50.0", report.Percentage)
	}
	if !report.NotReached {
		t.Errorf("expected NotReached for weighted score %d", report.WeightedScore)
	}
	if report.CLBLevel != 4 {
		t.Errorf("CLBLevel = %d, want 4", report.CLBLevel)
	}
}

func TestScoreEmptySession(t *testing.T) {
	session := &TestSession{State: StateFinished}
	report, err := Score(session, 39, DefaultBandingTable())
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if report.TotalCorrect != 0 || report.WeightedScore != 0 {
		t.Errorf("zero session scored %d correct, %d weighted", report.TotalCorrect, report.WeightedScore)
	}
	if !report.NotReached || report.CLBLevel != 4 {
		t.Errorf("zero score should band at lowest level with NotReached, got CLB %d notReached=%v",
			report.CLBLevel, report.NotReached)
	}
}
