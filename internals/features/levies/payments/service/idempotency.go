package service

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const idemKeyPrefix = "levy:idem:"

// RedisIdempotencyGuard reserves idempotency keys with SET NX so duplicate
// submissions are rejected before touching the database. The ledger's unique
// index remains the source of truth when redis is unavailable.
type RedisIdempotencyGuard struct {
	Client *goredis.Client
}

func NewRedisIdempotencyGuard(client *goredis.Client) *RedisIdempotencyGuard {
	if client == nil {
		return nil
	}
	return &RedisIdempotencyGuard{Client: client}
}

func (g *RedisIdempotencyGuard) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.Client.SetNX(ctx, idemKeyPrefix+key, 1, ttl).Result()
}
