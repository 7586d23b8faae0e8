// Package cache 提供基于 Redis 的短码查找缓存。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shorturl-platform/internal/model"
)

const keyPrefix = "shortlink:"

// LinkCache 缓存短码到链接记录的映射。
// 核心内链接只有 click_count 和 updated_at 会变化, 解析不依赖这两个字段, 缓存无需失效。
type LinkCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewLinkCache 创建缓存
func NewLinkCache(rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *LinkCache {
	return &LinkCache{rdb: rdb, ttl: ttl, logger: logger.Named("link_cache")}
}

// Get 读取缓存, 任何错误都视为未命中
func (c *LinkCache) Get(ctx context.Context, code string) (model.Link, bool) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	val, err := c.rdb.Get(ctx, keyPrefix+code).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("读取缓存失败", "short_code", code, "error", err)
		}
		return model.Link{}, false
	}

	var row model.Row
	if err := json.Unmarshal(val, &row); err != nil {
		c.logger.Warnw("缓存内容无法解析", "short_code", code, "error", err)
		return model.Link{}, false
	}
	l, err := model.LinkFromRow(row)
	if err != nil {
		c.logger.Warnw("缓存内容无法解析", "short_code", code, "error", err)
		return model.Link{}, false
	}
	return l, true
}

// Set 写入缓存, 失败只记录日志
func (c *LinkCache) Set(ctx context.Context, l model.Link) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	// 按行编码存储, 保留 JSON 输出中隐藏的字段
	data, err := json.Marshal(l.Row())
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+l.ShortCode, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("写入缓存失败", "short_code", l.ShortCode, "error", err)
	}
}
