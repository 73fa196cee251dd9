package handlers

import (
	"net/http"

	"fleet-docs-backend/pkg/cache"
	"fleet-docs-backend/pkg/database"
	"fleet-docs-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	db           *mongo.Database
	cacheManager cache.CacheManager
}

func NewHealthHandler(db *mongo.Database, cacheManager cache.CacheManager) *HealthHandler {
	return &HealthHandler{db: db, cacheManager: cacheManager}
}

// Health reports service liveness plus the state of the backing store and
// cache. The cache being down degrades the report but not the status code.
func (h *HealthHandler) Health(c *gin.Context) {
	report := gin.H{"status": "ok"}

	if h.db != nil {
		if err := database.Health(h.db); err != nil {
			report["database"] = "unreachable"
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "Database unreachable", err)
			return
		}
		report["database"] = "ok"
	}

	if h.cacheManager != nil {
		if err := h.cacheManager.HealthCheck(); err != nil {
			report["cache"] = "unreachable"
		} else {
			report["cache"] = "ok"
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Service healthy", report)
}
