package control

import (
	"context"
	"sync"
)

// MemorySequence keeps sequences in process memory. Suitable for tests and
// single-instance deployments only: counters reset on restart.
type MemorySequence struct {
	mu   sync.Mutex
	next map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{next: make(map[string]int64)}
}

func (s *MemorySequence) Next(_ context.Context, point IssuingPoint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[point.key()]++
	return s.next[point.key()], nil
}
