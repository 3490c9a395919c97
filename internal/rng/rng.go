package rng

import (
	"math/rand"
	"sync"
)

// Generator provides a simple random number
// Generators are shared by every dealer, so implementations must be safe for concurrent use
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

type seeded struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSeeded returns a deterministic generator. Only tests and replays should use this
func NewSeeded(seed int64) Generator {
	return &seeded{rand: rand.New(rand.NewSource(seed))} // nolint:gosec
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rand.Intn(n)
}
