package repository

import (
	"context"

	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
)

// objectCache is the read-through cache of single aggregates. Reads inside a
// transaction always go to the database.
type objectCache struct {
	redisClient xredis.Client
}

func (c objectCache) get(ctx context.Context, key string, v any) bool {
	if c.redisClient == nil || xcontext.InTransaction(ctx) {
		return false
	}

	if err := c.redisClient.GetObj(ctx, key, v); err != nil {
		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot get %s from redis: %v", key, err)
		}

		return false
	}

	return true
}

func (c objectCache) set(ctx context.Context, key string, v any) {
	if c.redisClient == nil || xcontext.InTransaction(ctx) {
		return
	}

	ttl := xcontext.Configs(ctx).Cache.TTL
	if err := c.redisClient.SetObj(ctx, key, v, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set %s to redis: %v", key, err)
	}
}

func (c objectCache) invalidate(ctx context.Context, keys ...string) {
	if c.redisClient == nil || len(keys) == 0 {
		return
	}

	if err := c.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate redis keys %v: %v", keys, err)
	}
}
