//go:build integration

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
	"facturador/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.ctx = context.Background()
	s.store = NewPostgresStore(s.pg.DB)
	require.NoError(s.T(), s.store.EnsureSchema(s.ctx))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.ExecContext(s.ctx, `TRUNCATE contingency_queue`)
	require.NoError(s.T(), err)
}

func (s *PostgresStoreSuite) enqueue(code string, at time.Time) *QueuedDocument {
	doc := NewQueuedDocument("0614-123456-001-2", dte.KindFactura, code,
		"DTE-01-M001-P001-000000000000001", json.RawMessage(`{"doc":"`+code+`"}`), at)
	require.NoError(s.T(), s.store.Enqueue(s.ctx, doc))
	return doc
}

func (s *PostgresStoreSuite) TestDequeueReturnsBatchOldestFirst() {
	base := time.Now().UTC().Truncate(time.Second)
	s.enqueue("C", base.Add(2*time.Minute))
	s.enqueue("A", base)
	s.enqueue("B", base.Add(time.Minute))

	docs, err := s.store.Dequeue(s.ctx, 3)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 3)
	assert.Equal(s.T(), "A", docs[0].CodigoGeneracion)
	assert.Equal(s.T(), "B", docs[1].CodigoGeneracion)
	assert.Equal(s.T(), "C", docs[2].CodigoGeneracion)
	for _, d := range docs {
		assert.Equal(s.T(), StateProcessing, d.State)
	}

	// Claimed documents are gone from the queue.
	rest, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), rest)
}

func (s *PostgresStoreSuite) TestUpdateAndGetRoundTrip() {
	doc := s.enqueue("A", time.Now().UTC().Truncate(time.Second))

	claimed, err := s.store.Dequeue(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), claimed, 1)
	claimed[0].State = StateFailed
	claimed[0].Attempts = 5
	claimed[0].LastError = "timeout"
	claimed[0].UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), s.store.Update(s.ctx, claimed[0]))

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateFailed, got.State)
	assert.Equal(s.T(), 5, got.Attempts)
	assert.Equal(s.T(), "timeout", got.LastError)
	assert.JSONEq(s.T(), `{"doc":"A"}`, string(got.Document))
}

func (s *PostgresStoreSuite) TestCancelOnlyFromQueued() {
	doc := s.enqueue("A", time.Now().UTC())
	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))

	other := s.enqueue("B", time.Now().UTC())
	_, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	err = s.store.Cancel(s.ctx, other.ID)
	assert.True(s.T(), domainerrors.Is(err, domainerrors.CodeNotCancelable))
}

func (s *PostgresStoreSuite) TestRetryRequeuesDeadDocument() {
	doc := s.enqueue("A", time.Now().UTC().Truncate(time.Second))
	claimed, err := s.store.Dequeue(s.ctx, 1)
	require.NoError(s.T(), err)
	claimed[0].State = StateFailed
	claimed[0].Attempts = 5
	claimed[0].LastError = "timeout"
	claimed[0].UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), s.store.Update(s.ctx, claimed[0]))

	require.NoError(s.T(), s.store.Retry(s.ctx, doc.ID))

	docs, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 1)
	assert.Equal(s.T(), doc.ID, docs[0].ID)
	assert.Zero(s.T(), docs[0].Attempts)
	assert.Empty(s.T(), docs[0].LastError)
}

func (s *PostgresStoreSuite) TestStats() {
	base := time.Now().UTC()
	s.enqueue("A", base)
	s.enqueue("B", base)
	doc := s.enqueue("C", base)
	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))

	st, err := s.store.Stats(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), Stats{Queued: 2, Cancelled: 1}, st)
}
