package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleet-docs-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fleet:vehicle_list:"

// RedisCacheManager implements CacheManager on a Redis client.
type RedisCacheManager struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCacheManager(client *redis.Client) *RedisCacheManager {
	return &RedisCacheManager{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *RedisCacheManager) GetVehicleList(key string) ([]*models.Vehicle, error) {
	data, err := r.client.Get(r.ctx, keyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle list from cache: %w", err)
	}

	var vehicles []*models.Vehicle
	if err := json.Unmarshal([]byte(data), &vehicles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached vehicle list: %w", err)
	}
	return vehicles, nil
}

func (r *RedisCacheManager) SetVehicleList(key string, vehicles []*models.Vehicle, ttl time.Duration) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle list: %w", err)
	}
	if err := r.client.Set(r.ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set vehicle list in cache: %w", err)
	}
	return nil
}

func (r *RedisCacheManager) Delete(key string) error {
	if err := r.client.Del(r.ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCacheManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(r.ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheManager) Close() error {
	return r.client.Close()
}
