package engine

import (
	"fmt"

	"github.com/tcfprep/backend/internal/model"
)

// BandRange maps an inclusive weighted-score interval to a CLB level
// and CEFR band.
type BandRange struct {
	CLB  int
	Min  int
	Max  int
	CEFR string
}

// BandingTable is an ascending, contiguous list of band ranges over the
// weighted score.
type BandingTable []BandRange

// DefaultBandingTable is the TCF Canada score → CLB equivalence for the
// listening and reading papers.
func DefaultBandingTable() BandingTable {
	return BandingTable{
		{CLB: 4, Min: 331, Max: 368, CEFR: "B1"},
		{CLB: 5, Min: 369, Max: 397, CEFR: "B1"},
		{CLB: 6, Min: 398, Max: 457, CEFR: "B1+"},
		{CLB: 7, Min: 458, Max: 502, CEFR: "B2"},
		{CLB: 8, Min: 503, Max: 522, CEFR: "B2+"},
		{CLB: 9, Min: 523, Max: 548, CEFR: "C1"},
		{CLB: 10, Min: 549, Max: 699, CEFR: "C1+"},
	}
}

// Validate checks the table is non-empty, each range well-formed, and
// consecutive ranges contiguous and ascending. Runs at startup so a
// defective table fails loudly before any session is accepted.
func (t BandingTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty table", ErrBandingTableInvalid)
	}
	for i, r := range t {
		if r.Min > r.Max {
			return fmt.Errorf("%w: range %d has min %d > max %d", ErrBandingTableInvalid, i, r.Min, r.Max)
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if r.Min != prev.Max+1 {
			return fmt.Errorf("%w: range %d starts at %d, expected %d", ErrBandingTableInvalid, i, r.Min, prev.Max+1)
		}
		if r.CLB <= prev.CLB {
			return fmt.Errorf("%w: range %d level %d not above %d", ErrBandingTableInvalid, i, r.CLB, prev.CLB)
		}
	}
	return nil
}

// Lookup resolves a weighted score to its band by linear scan. A score
// below the lowest minimum maps to the lowest level with notReached set
// — a real scoring-domain case, not an out-of-range error. A score
// above the highest maximum clamps to the top band.
func (t BandingTable) Lookup(score int) (band BandRange, notReached bool) {
	if score < t[0].Min {
		return t[0], true
	}
	for _, r := range t {
		if score >= r.Min && score <= r.Max {
			return r, false
		}
	}
	return t[len(t)-1], false
}

// Score converts a finished session into a ScoreReport. The percentage
// denominator is the standard paper length, not the answered count:
// unanswered questions count against the percentage. Idempotent — the
// finished session is read-only.
func Score(s *TestSession, testLength int, table BandingTable) (model.ScoreReport, error) {
	if s.State != StateFinished {
		return model.ScoreReport{}, ErrSessionNotFinished
	}

	totalCorrect := 0
	weightedScore := 0
	for i := range s.Questions {
		if s.Questions[i].CorrectlyAnswered() {
			totalCorrect++
			weightedScore += s.Questions[i].Weight
		}
	}

	band, notReached := table.Lookup(weightedScore)

	return model.ScoreReport{
		TotalCorrect:  totalCorrect,
		WeightedScore: weightedScore,
		Percentage:    float64(totalCorrect) / float64(testLength) * 100,
		CLBLevel:      band.CLB,
		CEFRBand:      band.CEFR,
		NotReached:    notReached,
	}, nil
}
