package contingency

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps the queue in process memory. Suited to tests and
// single-instance deployments that accept losing the buffer on restart.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]*QueuedDocument
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*QueuedDocument), now: time.Now}
}

func (s *MemoryStore) Enqueue(_ context.Context, doc *QueuedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

func (s *MemoryStore) Dequeue(_ context.Context, limit int) ([]*QueuedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var queued []*QueuedDocument
	for _, d := range s.docs {
		if d.State == StateQueued {
			queued = append(queued, d)
		}
	}
	sort.Slice(queued, func(i, j int) bool {
		return queued[i].EnqueuedAt.Before(queued[j].EnqueuedAt)
	})
	if limit > 0 && len(queued) > limit {
		queued = queued[:limit]
	}

	out := make([]*QueuedDocument, 0, len(queued))
	for _, d := range queued {
		d.State = StateProcessing
		d.UpdatedAt = s.now()
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, doc *QueuedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		return notFound(doc.ID)
	}
	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*QueuedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, notFound(id)
	}
	copied := *d
	return &copied, nil
}

func (s *MemoryStore) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return notFound(id)
	}
	if d.State != StateQueued {
		return notCancelable(id, d.State)
	}
	d.State = StateCancelled
	d.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Retry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return notFound(id)
	}
	if d.State != StateFailed && d.State != StateCancelled {
		return notRetryable(id, d.State)
	}
	d.resetForRetry(s.now())
	return nil
}

func (s *MemoryStore) List(_ context.Context, state State, limit int) ([]*QueuedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*QueuedDocument
	for _, d := range s.docs {
		if state == "" || d.State == state {
			matched = append(matched, d)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EnqueuedAt.Before(matched[j].EnqueuedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*QueuedDocument, 0, len(matched))
	for _, d := range matched {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st Stats
	for _, d := range s.docs {
		switch d.State {
		case StateQueued:
			st.Queued++
		case StateProcessing:
			st.Processing++
		case StateCompleted:
			st.Completed++
		case StateFailed:
			st.Failed++
		case StateCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}
