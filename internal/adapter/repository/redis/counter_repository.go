package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/seamline/internal/domain"
)

const counterKeyPrefix = "order_count:"

// CounterRepository implements domain.SpeedStore against Redis. The stream
// processor writes one counter per bucket under "order_count:<unix start>";
// this repository only ever reads them. TTL and eviction are managed by the
// writer, so any key may be absent at any time.
type CounterRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCounterRepository creates a new Redis-backed speed store repository.
func NewCounterRepository(client *redis.Client, logger *slog.Logger) *CounterRepository {
	return &CounterRepository{
		client: client,
		logger: logger.With("component", "redis_repository"),
	}
}

// OrderCount looks up the counter for one bucket. A missing key is a miss
// (ok=false, no error); a malformed value is reported as a store error since
// it means the writer and reader disagree on the format.
func (r *CounterRepository) OrderCount(ctx context.Context, bucket time.Time) (int64, bool, error) {
	key := counterKey(bucket)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, &domain.SpeedStoreError{Op: "get " + key, Err: err}
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, &domain.SpeedStoreError{Op: "parse " + key, Err: err}
	}
	return count, true, nil
}

// counterKey derives the speed-layer key from the bucket's start instant.
func counterKey(bucket time.Time) string {
	return counterKeyPrefix + strconv.FormatInt(bucket.Unix(), 10)
}
