/*
 * @module service/cache/view_cache
 * @description 派生视图缓存，按快照版本、看板、选择和焦点缓存计算结果
 * @architecture 缓存旁路 - 未命中时由调用方计算并回填
 * @documentReference DESIGN.md
 * @stateFlow 构建键 -> 查询缓存 -> 未命中计算 -> 写入缓存(TTL)
 * @rules 键包含快照版本，快照切换后旧键自然失效；缓存失败不影响计算结果
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/controllers/dashboard_controller.go
 */

package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"hrdash-service/service/analytics"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache miss")

// DefaultTTL 默认缓存时间
const DefaultTTL = 5 * time.Minute

const keyPrefix = "hrdash:views:"

// ViewCache 派生视图缓存
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ViewKey 由快照版本、看板名、选择和焦点生成缓存键；选择按维度排序后参与摘要
func ViewKey(version, profile, kind string, selection analytics.FilterSelection, focus string) string {
	var b strings.Builder
	for _, dim := range selection.Dimensions() {
		fmt.Fprintf(&b, "%s=%q;", dim, selection[dim])
	}
	fmt.Fprintf(&b, "focus=%q", focus)
	sum := sha1.Sum([]byte(b.String()))
	return keyPrefix + version + ":" + profile + ":" + kind + ":" + hex.EncodeToString(sum[:])
}

// RedisViewCache 基于Redis的视图缓存
type RedisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions Redis连接参数
type RedisOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisViewCache 创建Redis视图缓存并检查连接
func NewRedisViewCache(ctx context.Context, opts RedisOptions) (*RedisViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	slog.Info("Redis视图缓存初始化成功", "redis_host", opts.Host, "redis_port", opts.Port)
	return NewRedisViewCacheWithClient(client, opts.TTL), nil
}

// NewRedisViewCacheWithClient 使用已有客户端创建缓存
func NewRedisViewCacheWithClient(client *redis.Client, ttl time.Duration) *RedisViewCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisViewCache{client: client, ttl: ttl}
}

// Get 实现 ViewCache
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("读取缓存失败: %w", err)
	}
	return val, nil
}

// Set 实现 ViewCache
func (c *RedisViewCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Client 底层客户端，供分布式锁复用连接
func (c *RedisViewCache) Client() *redis.Client {
	return c.client
}

// Close 关闭客户端
func (c *RedisViewCache) Close() error {
	return c.client.Close()
}

// NopViewCache 未配置Redis时使用，总是未命中
type NopViewCache struct{}

// Get 实现 ViewCache
func (NopViewCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrMiss }

// Set 实现 ViewCache
func (NopViewCache) Set(ctx context.Context, key string, value []byte) error { return nil }
