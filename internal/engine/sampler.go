package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tcfprep/backend/internal/model"
)

// Sampler draws duplicate-avoiding random subsets per weight bucket.
//
// Each weight keeps a shuffled "bag" that is drawn from without
// replacement. When a bag runs dry before the requested count is
// reached, the full bucket is reshuffled into a fresh bag and drawing
// continues. For counts larger than the bucket this guarantees every
// question appears at least once before any repeats.
type Sampler struct {
	catalog *Catalog
	rng     *rand.Rand
	bags    map[int][]model.Question
}

// NewSampler creates a sampler over the catalog. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func NewSampler(catalog *Catalog, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{
		catalog: catalog,
		rng:     rng,
		bags:    make(map[int][]model.Question),
	}
}

// Sample returns exactly count questions of the given weight.
// Fails with ErrEmptyBucket if the catalog has no questions of that
// weight; a validated composition never triggers this.
func (s *Sampler) Sample(weight, count int) ([]model.Question, error) {
	bucket := s.catalog.ByWeight(weight)
	if len(bucket) == 0 {
		return nil, fmt.Errorf("%w: weight %d", ErrEmptyBucket, weight)
	}

	drawn := make([]model.Question, 0, count)
	for len(drawn) < count {
		if len(s.bags[weight]) == 0 {
			s.bags[weight] = s.shuffled(bucket)
		}
		bag := s.bags[weight]
		drawn = append(drawn, bag[len(bag)-1])
		s.bags[weight] = bag[:len(bag)-1]
	}
	return drawn, nil
}

// BuildPool assembles a session pool from a weight→count composition.
// Buckets are concatenated in ascending weight order regardless of map
// iteration order, so total length and per-bucket structure reproduce
// across runs; only the question identities inside each bucket vary.
func (s *Sampler) BuildPool(composition map[int]int) ([]SessionQuestion, error) {
	weights := make([]int, 0, len(composition))
	for w := range composition {
		weights = append(weights, w)
	}
	sort.Ints(weights)

	var pool []SessionQuestion
	for _, w := range weights {
		questions, err := s.Sample(w, composition[w])
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			pool = append(pool, SessionQuestion{
				Question: q,
				Position: len(pool) + 1,
				Selected: NoSelection,
			})
		}
	}
	return pool, nil
}

func (s *Sampler) shuffled(bucket []model.Question) []model.Question {
	bag := make([]model.Question, len(bucket))
	copy(bag, bucket)
	s.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}
