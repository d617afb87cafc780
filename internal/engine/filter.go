package engine

import (
	"math/rand"
	"time"

	"github.com/tcfprep/backend/internal/model"
)

// PracticeMode narrows the practice list after weight selection.
// The modes are mutually exclusive; selecting one replaces the other.
type PracticeMode string

const (
	ModeNormal     PracticeMode = "normal"
	ModeAttention  PracticeMode = "attention"
	ModeUnanswered PracticeMode = "unanswered"
)

// WeightAll selects every weight bucket.
const WeightAll = 0

// PracticeFilter is the active question list for free practice. The
// list is shuffled once when the filter is built, not on every render,
// so forward/backward navigation is stable within one filter session.
type PracticeFilter struct {
	Weight    int
	Mode      PracticeMode
	questions []model.Question
	cursor    int
}

// NewPracticeFilter composes weight selection and mode filtering over
// the catalog. records is a snapshot of the user's answer history used
// by the attention and never-answered modes; missing keys read as the
// zero record.
func NewPracticeFilter(
	catalog *Catalog,
	weight int,
	mode PracticeMode,
	records map[string]model.AnswerRecord,
	rng *rand.Rand,
) *PracticeFilter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Weight selection narrows first.
	base := catalog.Questions()
	if weight != WeightAll {
		base = catalog.ByWeight(weight)
	}

	var selected []model.Question
	for _, q := range base {
		rec := records[q.ID]
		switch mode {
		case ModeAttention:
			if !DeservesAttention(rec) {
				continue
			}
		case ModeUnanswered:
			if rec.Attempts() > 0 {
				continue
			}
		}
		selected = append(selected, q)
	}

	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return &PracticeFilter{
		Weight:    weight,
		Mode:      mode,
		questions: selected,
	}
}

// Len returns the size of the active list.
func (f *PracticeFilter) Len() int {
	return len(f.questions)
}

// Position returns the 1-based cursor position.
func (f *PracticeFilter) Position() int {
	return f.cursor + 1
}

// Current returns the question under the cursor, or nil for an empty list.
func (f *PracticeFilter) Current() *model.Question {
	if len(f.questions) == 0 {
		return nil
	}
	return &f.questions[f.cursor]
}

// Next advances the cursor, wrapping at the end of the list.
func (f *PracticeFilter) Next() {
	if len(f.questions) == 0 {
		return
	}
	f.cursor = (f.cursor + 1) % len(f.questions)
}

// Prev moves the cursor back, wrapping at the start of the list.
func (f *PracticeFilter) Prev() {
	if len(f.questions) == 0 {
		return
	}
	f.cursor = (f.cursor - 1 + len(f.questions)) % len(f.questions)
}
