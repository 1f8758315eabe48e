package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"hrdash-service/service/analytics"
)

func TestViewKey(t *testing.T) {
	sel := analytics.FilterSelection{
		analytics.DimensionPosition:   {"Developer"},
		analytics.DimensionDepartment: {"IT", "HR"},
	}
	key := ViewKey("v1", "insights", "views", sel, "")
	assert.True(t, strings.HasPrefix(key, "hrdash:views:v1:insights:views:"))

	// 维度遍历顺序不影响键
	same := analytics.FilterSelection{
		analytics.DimensionDepartment: {"IT", "HR"},
		analytics.DimensionPosition:   {"Developer"},
	}
	assert.Equal(t, key, ViewKey("v1", "insights", "views", same, ""))

	assert.NotEqual(t, key, ViewKey("v2", "insights", "views", sel, ""))
	assert.NotEqual(t, key, ViewKey("v1", "insights", "views", sel, "Alice"))
	assert.NotEqual(t, key, ViewKey("v1", "insights", "records", sel, ""))

	empty := analytics.FilterSelection{analytics.DimensionDepartment: {}}
	assert.NotEqual(t, ViewKey("v1", "insights", "views", nil, ""), ViewKey("v1", "insights", "views", empty, ""))
}

func TestNopViewCache(t *testing.T) {
	var c ViewCache = NopViewCache{}
	assert.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisViewCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	c := NewRedisViewCacheWithClient(client, 0)
	defer c.Close()
	assert.Equal(t, DefaultTTL, c.ttl)

	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Error(t, c.Set(context.Background(), "k", []byte("v")))

	_, err = NewRedisViewCache(context.Background(), RedisOptions{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
}
