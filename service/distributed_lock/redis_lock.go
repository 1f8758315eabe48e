/*
 * @module service/distributed_lock/redis_lock
 * @description 分布式锁，多实例部署时保证同一时刻只有一个实例执行数据导入
 * @architecture 工具层 - 提供分布式锁能力
 * @documentReference DESIGN.md
 * @stateFlow 获取锁 -> 执行任务 -> 释放锁/自动过期
 * @rules 使用Redis SET NX实现，仅持有者可释放；未配置Redis时退化为进程内锁
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/dataset/importer.go, service/init.go
 */

package distributed_lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLocked 锁已被其他持有者占用
var ErrLocked = errors.New("lock held by another owner")

const keyPrefix = "hrdash:lock:"

// Locker 锁接口
type Locker interface {
	// TryLock 尝试获取锁，已被占用时返回 false
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Unlock 释放锁
	Unlock(ctx context.Context, key string) error
}

// InstanceID 主机名+进程ID，标识锁的持有者
func InstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s:%d", hostname, os.Getpid())
}

// RedisLock Redis分布式锁实现
type RedisLock struct {
	client     *redis.Client
	instanceID string
}

// NewRedisLock 使用已有客户端创建分布式锁
func NewRedisLock(client *redis.Client, instanceID string) *RedisLock {
	if instanceID == "" {
		instanceID = InstanceID()
	}
	return &RedisLock{client: client, instanceID: instanceID}
}

// TryLock 使用SET NX，只有当key不存在时才会设置成功
func (r *RedisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, keyPrefix+key, r.instanceID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("获取锁失败: %w", err)
	}
	if ok {
		slog.Debug("分布式锁: 成功获取锁", "key", key, "ttl", ttl, "instance", r.instanceID)
	}
	return ok, nil
}

var unlockScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Unlock 仅当前实例持有时删除
func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	n, err := unlockScript.Run(ctx, r.client, []string{keyPrefix + key}, r.instanceID).Int64()
	if err != nil {
		return fmt.Errorf("释放锁失败: %w", err)
	}
	if n == 0 {
		slog.Warn("分布式锁: 锁不存在或已被其他实例持有", "key", key, "instance", r.instanceID)
	}
	return nil
}

// LocalLock 进程内锁，单实例部署使用
type LocalLock struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewLocalLock 创建进程内锁
func NewLocalLock() *LocalLock {
	return &LocalLock{held: map[string]time.Time{}}
}

// TryLock 实现 Locker，过期的锁视为已释放
func (l *LocalLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if expires, ok := l.held[key]; ok && time.Now().Before(expires) {
		return false, nil
	}
	l.held[key] = time.Now().Add(ttl)
	return true, nil
}

// Unlock 实现 Locker
func (l *LocalLock) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// WithLock 在锁保护下执行函数，锁被占用时返回 ErrLocked
func WithLock(ctx context.Context, locker Locker, key string, ttl time.Duration, fn func() error) error {
	locked, err := locker.TryLock(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}

	defer func() {
		if err := locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
			slog.Error("分布式锁: 释放锁失败", "key", key, "error", err)
		}
	}()

	return fn()
}
