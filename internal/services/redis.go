package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelbook/travelbook-backend/internal/models"
)

var RedisClient *redis.Client

const travelOptionsKey = "cache:travel_options"

// How long the unfiltered catalog listing stays warm. Availability changes
// invalidate it early, so this only bounds staleness for admin-side edits.
const travelOptionsTTL = 5 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// GetCachedTravelOptions returns the cached catalog listing, or nil on a miss
func GetCachedTravelOptions(ctx context.Context) ([]models.TravelOption, error) {
	if RedisClient == nil {
		return nil, redis.Nil
	}

	data, err := RedisClient.Get(ctx, travelOptionsKey).Result()
	if err != nil {
		return nil, err
	}

	var travels []models.TravelOption
	if err := json.Unmarshal([]byte(data), &travels); err != nil {
		return nil, err
	}

	return travels, nil
}

// CacheTravelOptions stores the catalog listing in Redis
func CacheTravelOptions(ctx context.Context, travels []models.TravelOption) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(travels)
	if err != nil {
		return err
	}

	return RedisClient.Set(ctx, travelOptionsKey, data, travelOptionsTTL).Err()
}

// InvalidateTravelOptions drops the cached catalog listing after a
// booking or cancellation changes seat availability
func InvalidateTravelOptions(ctx context.Context) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, travelOptionsKey).Err()
}
