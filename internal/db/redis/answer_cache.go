package redisdb

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/tutor"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// AnswerCache 答案 Redis 缓存。key 取问题归一化后的哈希，
// 相同问题不重复调在线模型。缓存失败只记日志，不影响答题。
type AnswerCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
}

// NewClient 连接 Redis 并确认可达。
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	applog.Info("[Cache] ✅ Connected to Redis")
	return rdb, nil
}

// NewAnswerCache 创建答案缓存。
func NewAnswerCache(rdb *redis.Client, ttlSeconds int) *AnswerCache {
	ttl := 15 * time.Minute
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &AnswerCache{
		redis:  rdb,
		ttl:    ttl,
		prefix: "tutor:answer:",
	}
}

var _ tutor.AnswerCache = (*AnswerCache)(nil)

// Get 查缓存。任何错误按未命中处理。
func (c *AnswerCache) Get(ctx context.Context, question string) (*tutor.RouterResult, bool) {
	key := c.cacheKey(question)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var result tutor.RouterResult
	if err := json.Unmarshal(data, &result); err != nil {
		applog.Warn("[Cache] Failed to unmarshal cached answer", "error", err)
		return nil, false
	}

	applog.Debug("[Cache] Hit", "key", key)
	return &result, true
}

// Set 写缓存。
func (c *AnswerCache) Set(ctx context.Context, question string, result *tutor.RouterResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	key := c.cacheKey(question)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		applog.Warn("[Cache] Failed to set answer cache", "key", key, "error", err)
	}
}

// InvalidateAll 清除全部答案缓存（语料重载后调用）。
func (c *AnswerCache) InvalidateAll(ctx context.Context) {
	iter := c.redis.Scan(ctx, 0, c.prefix+"*", 500).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		c.redis.Del(ctx, keys...)
		applog.Info("[Cache] Answer cache invalidated", "keys_deleted", len(keys))
	}
}

// cacheKey = prefix + hash(归一化问题)。大小写与首尾空白不参与区分。
func (c *AnswerCache) cacheKey(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	hash := sha256.Sum256([]byte(normalized))
	return c.prefix + fmt.Sprintf("%x", hash[:12])
}
