package redis

import (
	"RecipeHub/internal/pkg/counter"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	_ counter.Store = (*CounterStore)(nil)
	_ counter.Cache = (*Cache)(nil)
)

// CounterStore counter.Store 的 Redis 实现
type CounterStore struct {
	rdb *redis.Client
}

func NewCounterStore(rdb *redis.Client) *CounterStore {
	return &CounterStore{rdb: rdb}
}

func (s *CounterStore) Get(ctx context.Context, key string) (int64, error) {
	v, err := s.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (s *CounterStore) Set(ctx context.Context, key string, value int64) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *CounterStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *CounterStore) SetNX(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s *CounterStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	return s.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (s *CounterStore) ZRem(ctx context.Context, key, member string) error {
	return s.rdb.ZRem(ctx, key, member).Err()
}

func (s *CounterStore) ZRevRange(ctx context.Context, key string, n int64) ([]string, error) {
	if n == 0 {
		return []string{}, nil
	}
	stop := n - 1
	if n < 0 {
		stop = -1
	}
	return s.rdb.ZRevRange(ctx, key, 0, stop).Result()
}

// ZReplace 在一个事务里先删后写，读者不会看到半成品
func (s *CounterStore) ZReplace(ctx context.Context, key string, scores map[string]float64) error {
	members := make([]redis.Z, 0, len(scores))
	for m, score := range scores {
		members = append(members, redis.Z{Score: score, Member: m})
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(members) > 0 {
			pipe.ZAdd(ctx, key, members...)
		}
		return nil
	})
	return err
}

// Cache counter.Cache 的 Redis 实现
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
