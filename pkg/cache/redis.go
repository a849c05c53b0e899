package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init wires the package to an existing Redis client
func Init(c *redis.Client) {
	client = c
}

// Client returns the shared Redis client
func Client() *redis.Client {
	return client
}

// Ping verifies the cache connection
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("cache not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
