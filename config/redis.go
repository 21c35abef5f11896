package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the per-job daily analytics counters. It stays nil when no
// REDIS_URL is configured; callers fall back to a no-op counter.
var Redis *redis.Client

func InitRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, analytics counters disabled")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL: %v", err)
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis ping failed: %v", err)
		return
	}

	Redis = client
	log.Println("Redis connected successfully")
}
