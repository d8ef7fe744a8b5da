package control

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisSeqPrefix = "control:seq:"

// RedisSequence allocates correlatives with INCR, which serializes the
// sequence across all application instances sharing the Redis.
type RedisSequence struct {
	client *redis.Client
}

func NewRedisSequence(client *redis.Client) *RedisSequence {
	return &RedisSequence{client: client}
}

func (s *RedisSequence) Next(ctx context.Context, point IssuingPoint) (int64, error) {
	n, err := s.client.Incr(ctx, redisSeqPrefix+point.key()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}
