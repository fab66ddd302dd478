package database

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient initializes and returns a Redis client. Returns nil if
// redisURL is empty: callers treat the cache as optional.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid Redis URL, running without cache: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to connect to Redis, running without cache: %v", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
