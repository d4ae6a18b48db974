// Package counter 定义业务层访问计数与缓存存储的窄接口，
// 服务层只依赖这里的接口，不直接接触 Redis 客户端。
package counter

import (
	"context"
	"time"
)

// Store 计数器 + 有序集合
type Store interface {
	// Get 读取计数，key 不存在时返回 0
	Get(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, key string, value int64) error
	Incr(ctx context.Context, key string) (int64, error)
	// SetNX key 不存在时写入并返回 true，ttl 为 0 表示永不过期
	SetNX(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error)

	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRem(ctx context.Context, key, member string) error
	// ZRevRange 按分数从高到低返回前 n 个成员
	ZRevRange(ctx context.Context, key string, n int64) ([]string, error)
	// ZReplace 用给定的分数表整体替换有序集合
	ZReplace(ctx context.Context, key string, scores map[string]float64) error
}

// Cache 通用 KV 缓存
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
