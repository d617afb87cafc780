package engine

import (
	"math/rand"
	"testing"

	"github.com/tcfprep/backend/internal/model"
)

func TestFilterWeightSelection(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 5, 9: 7, 15: 2})

	f := NewPracticeFilter(catalog, 9, ModeNormal, nil, rand.New(rand.NewSource(1)))
	if f.Len() != 7 {
		t.Fatalf("weight 9 filter has %d questions, want 7", f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		if q := f.Current(); q.Weight != 9 {
			t.Errorf("filter contains weight %d question %s", q.Weight, q.ID)
		}
		f.Next()
	}

	all := NewPracticeFilter(catalog, WeightAll, ModeNormal, nil, rand.New(rand.NewSource(1)))
	if all.Len() != 14 {
		t.Fatalf("all-weights filter has %d questions, want 14", all.Len())
	}
}

func TestFilterAttentionMode(t *testing.T) {
	catalog := testCatalog(map[int]int{9: 4})
	ids := make([]string, 0, 4)
	for _, q := range catalog.Questions() {
		ids = append(ids, q.ID)
	}

	records := map[string]model.AnswerRecord{
		ids[0]: {Correct: 3, Wrong: 2}, // contested
		ids[1]: {Correct: 5, Wrong: 0}, // mastered
		ids[2]: {Correct: 1, Wrong: 1}, // contested
		// ids[3] never attempted
	}

	f := NewPracticeFilter(catalog, WeightAll, ModeAttention, records, rand.New(rand.NewSource(1)))
	if f.Len() != 2 {
		t.Fatalf("attention filter has %d questions, want 2", f.Len())
	}
	seen := map[string]bool{}
	for i := 0; i < f.Len(); i++ {
		seen[f.Current().ID] = true
		f.Next()
	}
	if !seen[ids[0]] || !seen[ids[2]] {
		t.Errorf("attention filter selected %v, want %s and %s", seen, ids[0], ids[2])
	}
}

func TestFilterUnansweredMode(t *testing.T) {
	catalog := testCatalog(map[int]int{9: 4})
	ids := make([]string, 0, 4)
	for _, q := range catalog.Questions() {
		ids = append(ids, q.ID)
	}

	records := map[string]model.AnswerRecord{
		ids[0]: {Correct: 1},
		ids[2]: {Wrong: 2},
	}

	f := NewPracticeFilter(catalog, WeightAll, ModeUnanswered, records, rand.New(rand.NewSource(1)))
	if f.Len() != 2 {
		t.Fatalf("unanswered filter has %d questions, want 2", f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		id := f.Current().ID
		if id == ids[0] || id == ids[2] {
			t.Errorf("unanswered filter includes answered question %s", id)
		}
		f.Next()
	}
}

func TestFilterOrderStableAcrossNavigation(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 6})

	f := NewPracticeFilter(catalog, WeightAll, ModeNormal, nil, rand.New(rand.NewSource(3)))

	order := make([]string, f.Len())
	for i := range order {
		order[i] = f.Current().ID
		f.Next()
	}

	// A full forward pass wraps to the start; the order must not change.
	if f.Position() != 1 {
		t.Fatalf("after full pass, position = %d, want 1", f.Position())
	}
	for i := range order {
		if got := f.Current().ID; got != order[i] {
			t.Errorf("second pass position %d: %s, want %s", i+1, got, order[i])
		}
		f.Next()
	}

	// Backward from the start wraps to the end.
	f.Prev()
	if got := f.Current().ID; got != order[len(order)-1] {
		t.Errorf("Prev from start: %s, want %s", got, order[len(order)-1])
	}
}

func TestFilterEmptyList(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 2})

	f := NewPracticeFilter(catalog, 21, ModeNormal, nil, rand.New(rand.NewSource(1)))
	if f.Len() != 0 {
		t.Fatalf("expected empty filter, got %d", f.Len())
	}
	if f.Current() != nil {
		t.Errorf("Current on empty filter returned a question")
	}
	// Navigation on an empty list is a no-op, not a panic.
	f.Next()
	f.Prev()
}
