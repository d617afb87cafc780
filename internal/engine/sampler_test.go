package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/tcfprep/backend/internal/model"
)

// makeBucket builds n questions of the given weight with stable ids.
func makeBucket(weight, n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:     fmt.Sprintf("w%d-q%02d", weight, i+1),
			Skill:  model.SkillReading,
			Weight: weight,
			Alternatives: []model.Alternative{
				{Label: "A", Correct: true},
				{Label: "B"},
				{Label: "C"},
				{Label: "D"},
			},
		}
	}
	return questions
}

func testCatalog(buckets map[int]int) *Catalog {
	var all []model.Question
	for weight, n := range buckets {
		all = append(all, makeBucket(weight, n)...)
	}
	return NewCatalog(all)
}

func TestSampleDistinctWithinBucket(t *testing.T) {
	catalog := testCatalog(map[int]int{9: 10})
	sampler := NewSampler(catalog, rand.New(rand.NewSource(1)))

	drawn, err := sampler.Sample(9, 6)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(drawn) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(drawn))
	}

	seen := make(map[string]bool)
	for _, q := range drawn {
		if seen[q.ID] {
			t.Errorf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSampleNoStarvation(t *testing.T) {
	// 10 draws from a 4-question bucket: every question must appear,
	// and no question more than one time above any other.
	catalog := testCatalog(map[int]int{3: 4})
	sampler := NewSampler(catalog, rand.New(rand.NewSource(7)))

	drawn, err := sampler.Sample(3, 10)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	counts := make(map[string]int)
	for _, q := range drawn {
		counts[q.ID]++
	}
	if len(counts) != 4 {
		t.Fatalf("expected all 4 questions drawn, got %d distinct", len(counts))
	}
	for id, n := range counts {
		// floor(10/4)=2, ceil(10/4)=3
		if n < 2 || n > 3 {
			t.Errorf("question %s drawn %d times, want 2 or 3", id, n)
		}
	}
}

func TestSampleEmptyBucket(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 4})
	sampler := NewSampler(catalog, rand.New(rand.NewSource(1)))

	_, err := sampler.Sample(21, 2)
	if !errors.Is(err, ErrEmptyBucket) {
		t.Fatalf("expected ErrEmptyBucket, got %v", err)
	}
}

func TestBuildPoolOrderAndPositions(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 6, 9: 8, 15: 8})
	sampler := NewSampler(catalog, rand.New(rand.NewSource(42)))

	pool, err := sampler.BuildPool(map[int]int{15: 3, 3: 4, 9: 6})
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	if len(pool) != 13 {
		t.Fatalf("expected pool of 13, got %d", len(pool))
	}

	// Ascending weight blocks regardless of composition map order.
	wantWeights := []int{3, 3, 3, 3, 9, 9, 9, 9, 9, 9, 15, 15, 15}
	for i, sq := range pool {
		if sq.Weight != wantWeights[i] {
			t.Errorf("pool[%d] weight = %d, want %d", i, sq.Weight, wantWeights[i])
		}
		if sq.Position != i+1 {
			t.Errorf("pool[%d] position = %d, want %d", i, sq.Position, i+1)
		}
		if sq.Selected != NoSelection {
			t.Errorf("pool[%d] starts with selection %d", i, sq.Selected)
		}
	}
}

func TestBuildPoolStructureReproduces(t *testing.T) {
	catalog := testCatalog(map[int]int{3: 8, 9: 8})
	composition := map[int]int{3: 4, 9: 5}

	a, err := NewSampler(catalog, rand.New(rand.NewSource(1))).BuildPool(composition)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	b, err := NewSampler(catalog, rand.New(rand.NewSource(2))).BuildPool(composition)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("pool lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Weight != b[i].Weight {
			t.Errorf("position %d: weight %d vs %d", i+1, a[i].Weight, b[i].Weight)
		}
	}
}
