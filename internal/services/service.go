package services

import (
	"time"

	"fleet-docs-backend/internal/repository"
	"fleet-docs-backend/pkg/cache"

	"github.com/sirupsen/logrus"
)

const vehicleListCacheKey = "all_vehicles"

// FleetService implements the fleet domain operations over a persistence
// adapter. Any repository.Store implementation works; the service never
// assumes a particular backing store.
type FleetService struct {
	store        repository.Store
	cacheManager cache.CacheManager
	cacheTTL     time.Duration
	log          *logrus.Logger
}

func NewFleetService(store repository.Store) *FleetService {
	return &FleetService{
		store:    store,
		cacheTTL: 2 * time.Minute,
		log:      logrus.StandardLogger(),
	}
}

// SetCacheManager enables read-side caching of the vehicle list. The cache
// holds raw entities only; statuses are always recomputed from the clock.
func (s *FleetService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

// SetCacheTTL overrides the vehicle list cache TTL.
func (s *FleetService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// SetLogger overrides the logger used for cache degradation reporting.
func (s *FleetService) SetLogger(log *logrus.Logger) {
	s.log = log
}

// invalidateVehicleList drops the cached vehicle list after a mutation.
// Cache failures degrade silently; the store remains the source of truth.
func (s *FleetService) invalidateVehicleList() {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.Delete(vehicleListCacheKey); err != nil {
		s.log.WithError(err).Warn("failed to invalidate vehicle list cache")
	}
}
