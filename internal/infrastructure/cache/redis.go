package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"provider-directory/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 3 * time.Second

// NewRedisClient returns nil, nil when no Redis host is configured. The
// catalog cache then degrades to a no-op and token revocation is not
// checked.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	logrus.WithFields(logrus.Fields{"addr": addr, "db": cfg.DB}).Info("Redis connection established")
	return client, nil
}
