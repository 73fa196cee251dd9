// Package cache provides a read-side cache for vehicle snapshots. Only raw
// entities are cached; expiration statuses are derived from the clock on
// every read and must never be stored here.
package cache

import (
	"time"

	"fleet-docs-backend/internal/models"
)

// CacheManager is the interface the fleet service caches vehicle lists
// through.
type CacheManager interface {
	// GetVehicleList returns the cached list for key, or (nil, nil) on a
	// cache miss.
	GetVehicleList(key string) ([]*models.Vehicle, error)
	SetVehicleList(key string, vehicles []*models.Vehicle, ttl time.Duration) error
	Delete(key string) error

	HealthCheck() error
	Close() error
}
