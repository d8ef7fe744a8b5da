package contingency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	domainerrors "facturador/pkg/domain-errors"
)

const (
	redisDocPrefix = "contingency:doc:"
	redisQueuedKey = "contingency:queued"
	redisAllKey    = "contingency:all"
)

// RedisStore shares the queue across instances. Claiming documents rides on
// ZPOPMIN / ZREM atomicity: whichever of Dequeue and Cancel removes the
// member from the queued set wins the document.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Enqueue(ctx context.Context, doc *QueuedDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling queued document: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisDocPrefix+doc.ID, raw, 0)
	pipe.SAdd(ctx, redisAllKey, doc.ID)
	pipe.ZAdd(ctx, redisQueuedKey, redis.Z{
		Score:  float64(doc.EnqueuedAt.UnixNano()),
		Member: doc.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("enqueueing document %s: %w", doc.ID, err)
	}
	return nil
}

func (s *RedisStore) Dequeue(ctx context.Context, limit int) ([]*QueuedDocument, error) {
	if limit <= 0 {
		limit = 10
	}
	claimed, err := s.client.ZPopMin(ctx, redisQueuedKey, int64(limit)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("claiming queued documents: %w", err)
	}

	out := make([]*QueuedDocument, 0, len(claimed))
	for _, z := range claimed {
		id, _ := z.Member.(string)
		doc, err := s.load(ctx, id)
		if err != nil {
			return out, err
		}
		doc.State = StateProcessing
		doc.UpdatedAt = s.now()
		if err := s.save(ctx, doc); err != nil {
			return out, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *RedisStore) Update(ctx context.Context, doc *QueuedDocument) error {
	if _, err := s.load(ctx, doc.ID); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*QueuedDocument, error) {
	return s.load(ctx, id)
}

func (s *RedisStore) Cancel(ctx context.Context, id string) error {
	doc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	removed, err := s.client.ZRem(ctx, redisQueuedKey, id).Result()
	if err != nil {
		return fmt.Errorf("cancelling document %s: %w", id, err)
	}
	if removed == 0 {
		// Already claimed or never queued; report its current state.
		return notCancelable(id, doc.State)
	}
	doc.State = StateCancelled
	doc.UpdatedAt = s.now()
	return s.save(ctx, doc)
}

func (s *RedisStore) Retry(ctx context.Context, id string) error {
	doc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if doc.State != StateFailed && doc.State != StateCancelled {
		return notRetryable(id, doc.State)
	}
	doc.resetForRetry(s.now())
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling queued document: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisDocPrefix+doc.ID, raw, 0)
	pipe.ZAdd(ctx, redisQueuedKey, redis.Z{
		Score:  float64(doc.EnqueuedAt.UnixNano()),
		Member: doc.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("requeueing document %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, state State, limit int) ([]*QueuedDocument, error) {
	ids, err := s.client.SMembers(ctx, redisAllKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing queued documents: %w", err)
	}
	var matched []*QueuedDocument
	for _, id := range ids {
		doc, err := s.load(ctx, id)
		if err != nil {
			if domainerrors.Is(err, domainerrors.CodeNotFound) {
				continue
			}
			return nil, err
		}
		if state == "" || doc.State == state {
			matched = append(matched, doc)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EnqueuedAt.Before(matched[j].EnqueuedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	ids, err := s.client.SMembers(ctx, redisAllKey).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("listing queued documents: %w", err)
	}
	var st Stats
	for _, id := range ids {
		doc, err := s.load(ctx, id)
		if err != nil {
			if domainerrors.Is(err, domainerrors.CodeNotFound) {
				continue
			}
			return Stats{}, err
		}
		switch doc.State {
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

func (s *RedisStore) load(ctx context.Context, id string) (*QueuedDocument, error) {
	raw, err := s.client.Get(ctx, redisDocPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}
	var doc QueuedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *RedisStore) save(ctx context.Context, doc *QueuedDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling queued document: %w", err)
	}
	if err := s.client.Set(ctx, redisDocPrefix+doc.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("saving document %s: %w", doc.ID, err)
	}
	return nil
}
