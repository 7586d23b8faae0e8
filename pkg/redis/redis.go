package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Options Redis 连接参数, Host 为空表示不启用
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient 创建客户端并 Ping 一次确认可用。未配置 Host 时返回 nil, nil
func NewRedisClient(ctx context.Context, opts *Options) (*redis.Client, error) {
	const op = "redis.NewRedisClient"

	if opts == nil || opts.Host == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: Redis连接失败: %w", op, err)
	}
	return client, nil
}
