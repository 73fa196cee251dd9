package main

import (
	"fleet-docs-backend/internal/api/routes"
	"fleet-docs-backend/internal/config"
	"fleet-docs-backend/internal/repository"
	"fleet-docs-backend/internal/services"
	"fleet-docs-backend/pkg/cache"
	"fleet-docs-backend/pkg/database"
	"fleet-docs-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Disconnect(db.Client())
	log.Info("connected to MongoDB")

	fleetService := services.NewFleetService(repository.NewMongoStore(db))

	// The cache is optional: without REDIS_ADDR every read goes straight to
	// the store.
	var cacheManager cache.CacheManager
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without cache")
		} else {
			cacheManager = cache.NewRedisCacheManager(redisClient)
			fleetService.SetCacheManager(cacheManager)
			defer cacheManager.Close()
			log.WithField("addr", cfg.RedisAddr).Info("vehicle list cache enabled")
		}
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	routes.SetupRoutes(router, fleetService, db, cacheManager)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
