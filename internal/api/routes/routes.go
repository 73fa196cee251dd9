package routes

import (
	"fleet-docs-backend/internal/api/handlers"
	"fleet-docs-backend/internal/api/middleware"
	"fleet-docs-backend/internal/services"
	"fleet-docs-backend/pkg/cache"
	"fleet-docs-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes wires the fleet service and handlers onto the router. db and
// cacheManager may be nil (health checks skip them); the service itself only
// sees the store it was built with.
func SetupRoutes(router *gin.Engine, fleetService *services.FleetService, db *mongo.Database, cacheManager cache.CacheManager) {
	vehicleHandler := handlers.NewVehicleHandler(fleetService)
	documentHandler := handlers.NewDocumentHandler(fleetService)
	historyHandler := handlers.NewHistoryHandler(fleetService)
	healthHandler := handlers.NewHealthHandler(db, cacheManager)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(ratelimit.NewMemoryLimiter(ratelimit.DefaultConfig())))

	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.GetVehicles)
		vehicles.POST("", vehicleHandler.CreateVehicle)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
		vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)

		vehicles.POST("/:id/documents", documentHandler.AddDocument)
		vehicles.PATCH("/:id/documents/:documentId", documentHandler.UpdateDocument)
		vehicles.DELETE("/:id/documents/:documentId", documentHandler.DeleteDocument)
	}

	documents := api.Group("/documents")
	{
		documents.GET("/expiring", documentHandler.GetExpiringDocuments)
	}

	history := api.Group("/history")
	{
		history.GET("", historyHandler.GetHistory)
	}
}
