package counter

import (
	"RecipeHub/internal/api/config"
	"RecipeHub/internal/pkg/metrics"
	"context"
	"errors"
	log "log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "counter-store"

// NewBreaker 按配置构造计数层共用的熔断器
func NewBreaker(cfg config.BreakerConfig) *gobreaker.CircuitBreaker[any] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		var zero T
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	v, _ := res.(T)
	return v, nil
}

func executeErr(cb *gobreaker.CircuitBreaker[any], fn func() error) error {
	_, err := execute(cb, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// BreakerStore 为 Store 加上熔断，后端不可用时快速失败
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next Store, cb *gobreaker.CircuitBreaker[any]) *BreakerStore {
	return &BreakerStore{next: next, cb: cb}
}

func (s *BreakerStore) Get(ctx context.Context, key string) (int64, error) {
	return execute(s.cb, func() (int64, error) { return s.next.Get(ctx, key) })
}

func (s *BreakerStore) Set(ctx context.Context, key string, value int64) error {
	return executeErr(s.cb, func() error { return s.next.Set(ctx, key, value) })
}

func (s *BreakerStore) Incr(ctx context.Context, key string) (int64, error) {
	return execute(s.cb, func() (int64, error) { return s.next.Incr(ctx, key) })
}

func (s *BreakerStore) SetNX(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return execute(s.cb, func() (bool, error) { return s.next.SetNX(ctx, key, value, ttl) })
}

func (s *BreakerStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	return executeErr(s.cb, func() error { return s.next.ZAdd(ctx, key, member, score) })
}

func (s *BreakerStore) ZRem(ctx context.Context, key, member string) error {
	return executeErr(s.cb, func() error { return s.next.ZRem(ctx, key, member) })
}

func (s *BreakerStore) ZRevRange(ctx context.Context, key string, n int64) ([]string, error) {
	return execute(s.cb, func() ([]string, error) { return s.next.ZRevRange(ctx, key, n) })
}

func (s *BreakerStore) ZReplace(ctx context.Context, key string, scores map[string]float64) error {
	return executeErr(s.cb, func() error { return s.next.ZReplace(ctx, key, scores) })
}

// BreakerCache 为 Cache 加上熔断
type BreakerCache struct {
	next Cache
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerCache(next Cache, cb *gobreaker.CircuitBreaker[any]) *BreakerCache {
	return &BreakerCache{next: next, cb: cb}
}

func (c *BreakerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	type hit struct {
		value []byte
		ok    bool
	}
	r, err := execute(c.cb, func() (hit, error) {
		v, ok, err := c.next.Get(ctx, key)
		return hit{v, ok}, err
	})
	return r.value, r.ok, err
}

func (c *BreakerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return executeErr(c.cb, func() error { return c.next.Set(ctx, key, value, ttl) })
}

func (c *BreakerCache) Delete(ctx context.Context, key string) error {
	return executeErr(c.cb, func() error { return c.next.Delete(ctx, key) })
}
