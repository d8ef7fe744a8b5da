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

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) SetupTest() {
	require.NoError(s.T(), s.redis.FlushAll(s.ctx))
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) enqueue(code string, at time.Time) *QueuedDocument {
	doc := NewQueuedDocument("0614-123456-001-2", dte.KindFactura, code,
		"DTE-01-M001-P001-000000000000001", json.RawMessage(`{"doc":"`+code+`"}`), at)
	require.NoError(s.T(), s.store.Enqueue(s.ctx, doc))
	return doc
}

func (s *RedisStoreSuite) TestRoundTrip() {
	doc := s.enqueue("A", time.Now().UTC().Truncate(time.Second))

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateQueued, got.State)
	assert.Equal(s.T(), "A", got.CodigoGeneracion)
	assert.JSONEq(s.T(), `{"doc":"A"}`, string(got.Document))
}

func (s *RedisStoreSuite) TestDequeueOldestFirstAndClaims() {
	base := time.Now().UTC()
	s.enqueue("B", base.Add(time.Minute))
	s.enqueue("A", base)

	docs, err := s.store.Dequeue(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 1)
	assert.Equal(s.T(), "A", docs[0].CodigoGeneracion)
	assert.Equal(s.T(), StateProcessing, docs[0].State)

	rest, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), rest, 1)
	assert.Equal(s.T(), "B", rest[0].CodigoGeneracion)
}

func (s *RedisStoreSuite) TestCancelRaceWithDequeue() {
	doc := s.enqueue("A", time.Now().UTC())

	// Claiming first means the cancel must lose.
	_, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)

	err = s.store.Cancel(s.ctx, doc.ID)
	assert.True(s.T(), domainerrors.Is(err, domainerrors.CodeNotCancelable))
}

func (s *RedisStoreSuite) TestRetryRequeues() {
	doc := s.enqueue("A", time.Now().UTC())

	claimed, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), claimed, 1)
	claimed[0].State = StateFailed
	claimed[0].Attempts = 5
	claimed[0].LastError = "timeout"
	require.NoError(s.T(), s.store.Update(s.ctx, claimed[0]))

	require.NoError(s.T(), s.store.Retry(s.ctx, doc.ID))

	docs, err := s.store.Dequeue(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), docs, 1)
	assert.Equal(s.T(), doc.ID, docs[0].ID)
	assert.Zero(s.T(), docs[0].Attempts)
}

func (s *RedisStoreSuite) TestListFiltersByState() {
	base := time.Now().UTC()
	s.enqueue("A", base)
	doc := s.enqueue("B", base.Add(time.Minute))
	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))

	queued, err := s.store.List(s.ctx, StateQueued, 0)
	require.NoError(s.T(), err)
	require.Len(s.T(), queued, 1)
	assert.Equal(s.T(), "A", queued[0].CodigoGeneracion)

	all, err := s.store.List(s.ctx, "", 0)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 2)
}

func (s *RedisStoreSuite) TestStats() {
	base := time.Now().UTC()
	s.enqueue("A", base)
	doc := s.enqueue("B", base)
	require.NoError(s.T(), s.store.Cancel(s.ctx, doc.ID))

	st, err := s.store.Stats(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), Stats{Queued: 1, Cancelled: 1}, st)
}
