package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	CatalogKeyInsurances  = "catalog:insurances"
	CatalogKeySpecialties = "catalog:specialties"
	CatalogKeyProcedures  = "catalog:procedures"

	redisCacheTimeout = 2 * time.Second
)

// CatalogCache caches the reference collections, which are read on every
// provider detail view and written rarely.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewCatalogCache returns a Redis backed cache, or a no-op one when client
// is nil. Cache failures are logged and treated as misses.
func NewCatalogCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) CatalogCache {
	if client == nil {
		return noopCatalogCache{}
	}
	return &redisCatalogCache{client: client, ttl: ttl, log: log}
}

func (c *redisCatalogCache) Get(ctx context.Context, key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read catalog cache %s: %+v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Failed to decode catalog cache %s: %+v", key, err)
		return false
	}
	return true
}

func (c *redisCatalogCache) Set(ctx context.Context, key string, value interface{}) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode catalog cache %s: %+v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write catalog cache %s: %+v", key, err)
	}
}

func (c *redisCatalogCache) Invalidate(ctx context.Context, keys ...string) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate catalog cache: %+v", err)
	}
}

type noopCatalogCache struct{}

func (noopCatalogCache) Get(context.Context, string, interface{}) bool { return false }
func (noopCatalogCache) Set(context.Context, string, interface{})      {}
func (noopCatalogCache) Invalidate(context.Context, ...string)         {}
