package engine

import (
	"sort"

	"github.com/tcfprep/backend/internal/model"
)

// Catalog holds the full question set for one skill. It is built once
// at startup and read-only afterwards, so it may be shared freely.
//
// An empty catalog is a valid, degraded state: when the backing store
// cannot be reached the engine still comes up and serves empty question
// lists instead of crashing.
type Catalog struct {
	questions []model.Question
	byWeight  map[int][]model.Question
	weights   []int
}

// NewCatalog indexes the given questions by weight.
func NewCatalog(questions []model.Question) *Catalog {
	c := &Catalog{
		questions: questions,
		byWeight:  make(map[int][]model.Question),
	}
	for _, q := range questions {
		c.byWeight[q.Weight] = append(c.byWeight[q.Weight], q)
	}
	for w := range c.byWeight {
		c.weights = append(c.weights, w)
	}
	sort.Ints(c.weights)
	return c
}

// Len returns the total number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Empty reports whether the catalog holds no questions.
func (c *Catalog) Empty() bool {
	return len(c.questions) == 0
}

// Questions returns the full catalog in load order.
func (c *Catalog) Questions() []model.Question {
	return c.questions
}

// ByWeight returns all questions with the given weight. Order is the
// load order; callers that need randomness shuffle their own copy.
func (c *Catalog) ByWeight(weight int) []model.Question {
	return c.byWeight[weight]
}

// Weights returns the distinct weights present, ascending. This is the
// canonical bucket order used for pool assembly.
func (c *Catalog) Weights() []int {
	return c.weights
}
