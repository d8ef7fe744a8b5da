package contingency

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) enqueue(code string, at time.Time) *QueuedDocument {
	doc := NewQueuedDocument("0614-123456-001-2", dte.KindFactura, code,
		"DTE-01-M001-P001-000000000000001", json.RawMessage(`{"doc":"`+code+`"}`), at)
	require.NoError(s.T(), s.store.Enqueue(s.ctx, doc))
	return doc
}

func (s *MemoryStoreSuite) TestDequeueOldestFirst() {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	s.enqueue("C", base.Add(2*time.Minute))
	s.enqueue("A", base)
	s.enqueue("B", base.Add(time.Minute))

	docs, err := s.store.Dequeue(s.ctx, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 2)
	assert.Equal(s.T(), "A", docs[0].CodigoGeneracion)
	assert.Equal(s.T(), "B", docs[1].CodigoGeneracion)
	assert.Equal(s.T(), StateProcessing, docs[0].State)

	// The claimed documents stay out of the queue.
	rest, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), rest, 1)
	assert.Equal(s.T(), "C", rest[0].CodigoGeneracion)
}

func (s *MemoryStoreSuite) TestUpdatePersistsRetryBookkeeping() {
	doc := s.enqueue("A", time.Now())

	doc.State = StateFailed
	doc.Attempts = 5
	doc.LastError = "timeout"
	require.NoError(s.T(), s.store.Update(s.ctx, doc))

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateFailed, got.State)
	assert.Equal(s.T(), 5, got.Attempts)
	assert.Equal(s.T(), "timeout", got.LastError)
}

func (s *MemoryStoreSuite) TestGetUnknown() {
	_, err := s.store.Get(s.ctx, "nope")
	assert.True(s.T(), domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *MemoryStoreSuite) TestCancelOnlyFromQueued() {
	doc := s.enqueue("A", time.Now())
	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateCancelled, got.State)

	// A claimed document cannot be cancelled anymore.
	other := s.enqueue("B", time.Now())
	_, err = s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	err = s.store.Cancel(s.ctx, other.ID)
	assert.True(s.T(), domainerrors.Is(err, domainerrors.CodeNotCancelable))
}

func (s *MemoryStoreSuite) TestRetryResetsBookkeeping() {
	doc := s.enqueue("A", time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	doc.State = StateFailed
	doc.Attempts = 5
	doc.LastError = "timeout"
	require.NoError(s.T(), s.store.Update(s.ctx, doc))

	require.NoError(s.T(), s.store.Retry(s.ctx, doc.ID))

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateQueued, got.State)
	assert.Zero(s.T(), got.Attempts)
	assert.Empty(s.T(), got.LastError)
	assert.True(s.T(), got.EnqueuedAt.After(doc.EnqueuedAt))
}

func (s *MemoryStoreSuite) TestRetryOnlyFromDeadStates() {
	doc := s.enqueue("A", time.Now())

	err := s.store.Retry(s.ctx, doc.ID)
	assert.True(s.T(), domainerrors.Is(err, domainerrors.CodeNotRetryable))

	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))
	require.NoError(s.T(), s.store.Retry(s.ctx, doc.ID))

	// The retried document is claimable again.
	docs, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 1)
	assert.Equal(s.T(), doc.ID, docs[0].ID)
}

func (s *MemoryStoreSuite) TestListFiltersByState() {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	s.enqueue("B", base.Add(time.Minute))
	s.enqueue("A", base)
	cancelled := s.enqueue("C", base.Add(2*time.Minute))
	require.NoError(s.T(), s.store.Cancel(s.ctx, cancelled.ID))

	queued, err := s.store.List(s.ctx, StateQueued, 0)
	require.NoError(s.T(), err)
	require.Len(s.T(), queued, 2)
	assert.Equal(s.T(), "A", queued[0].CodigoGeneracion)
	assert.Equal(s.T(), "B", queued[1].CodigoGeneracion)

	all, err := s.store.List(s.ctx, "", 2)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 2)
}

func (s *MemoryStoreSuite) TestStats() {
	base := time.Now()
	s.enqueue("A", base)
	s.enqueue("B", base)
	doc := s.enqueue("C", base)

	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))
	claimed, err := s.store.Dequeue(s.ctx, 1)
	require.NoError(s.T(), err)
	claimed[0].State = StateCompleted
	require.NoError(s.T(), s.store.Update(s.ctx, claimed[0]))

	st, err := s.store.Stats(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), Stats{Queued: 1, Completed: 1, Cancelled: 1}, st)
	assert.Equal(s.T(), 3, st.Total())
}
