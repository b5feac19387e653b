package database

import (
	"context"
	"log"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"sabimarket_backend/internals/configs"
)

// Redis is optional: the collection idempotency check degrades to the ledger's
// unique index when it is nil.
var Redis *goredis.Client

func ConnectRedis() {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("[WARN] REDIS_ADDR not set, idempotency fast path disabled")
		return
	}

	db := 0
	if v := configs.GetEnv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     configs.GetEnv("REDIS_PASSWORD"),
		DB:           db,
		MaxRetries:   2,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis ping failed (%v), continuing without it", err)
		_ = rdb.Close()
		return
	}

	Redis = rdb
	log.Println("[INFO] Redis connected.")
}

func CloseRedis() {
	if Redis == nil {
		return
	}
	_ = Redis.Close()
}
