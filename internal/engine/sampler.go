package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Sampler picks uniformly random subsets of question ids without replacement.
// It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSampler creates a sampler over src. A fixed-seed source makes sampling reproducible.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rnd: rand.New(src)}
}

// NewTimeSeededSampler creates a sampler seeded from the wall clock.
func NewTimeSeededSampler() *Sampler {
	return NewSampler(rand.NewSource(time.Now().UnixNano()))
}

// Sample returns min(count, |pool|) distinct ids from pool in random order.
// Duplicate ids in pool are treated as one. A count below 1 yields nil.
func (s *Sampler) Sample(pool []string, count int) []string {
	if count < 1 || len(pool) == 0 {
		return nil
	}

	type keyed struct {
		id  string
		key float64
	}
	seen := make(map[string]struct{}, len(pool))
	items := make([]keyed, 0, len(pool))

	s.mu.Lock()
	for _, id := range pool {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, keyed{id: id, key: s.rnd.Float64()})
	}
	s.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })

	if count > len(items) {
		count = len(items)
	}
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = items[i].id
	}
	return out
}
