package article

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// articleVisitHash is the redis hash holding per-article visit counts.
const articleVisitHash = "blog:article:visit"

// VisitCounter tracks how often front-end readers open an article.
type VisitCounter interface {
	Incr(ctx context.Context, articleID int64) (int64, error)
	Counts(ctx context.Context, articleIDs []int64) ([]int64, error)
	Forget(ctx context.Context, articleID int64) error
}

type RedisVisitCounter struct {
	client *redis.Client
}

func NewRedisVisitCounter(client *redis.Client) *RedisVisitCounter {
	return &RedisVisitCounter{client: client}
}

func (c *RedisVisitCounter) Incr(ctx context.Context, articleID int64) (int64, error) {
	return c.client.HIncrBy(ctx, articleVisitHash, field(articleID), 1).Result()
}

func (c *RedisVisitCounter) Counts(ctx context.Context, articleIDs []int64) ([]int64, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}

	fields := make([]string, len(articleIDs))
	for i, id := range articleIDs {
		fields[i] = field(id)
	}

	raw, err := c.client.HMGet(ctx, articleVisitHash, fields...).Result()
	if err != nil {
		return nil, err
	}

	counts := make([]int64, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			counts[i], _ = strconv.ParseInt(s, 10, 64)
		}
	}
	return counts, nil
}

func (c *RedisVisitCounter) Forget(ctx context.Context, articleID int64) error {
	return c.client.HDel(ctx, articleVisitHash, field(articleID)).Err()
}

func field(articleID int64) string {
	return strconv.FormatInt(articleID, 10)
}

// NoopVisitCounter keeps the blog functional when redis is disabled.
type NoopVisitCounter struct{}

func (NoopVisitCounter) Incr(ctx context.Context, articleID int64) (int64, error) {
	return 0, nil
}

func (NoopVisitCounter) Counts(ctx context.Context, articleIDs []int64) ([]int64, error) {
	return make([]int64, len(articleIDs)), nil
}

func (NoopVisitCounter) Forget(ctx context.Context, articleID int64) error {
	return nil
}
