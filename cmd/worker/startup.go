// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/pkg/container"
)

// startServices checks dependencies then exposes /health and /ready
func startServices(c *container.Container) error {
	log.Info().Msg("Library worker starting")

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis Connection", c.RedisCache.Ping},
		{"PostgreSQL Connection", c.DB.Ping},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check OK")
	}

	go startHealthCheckServer(config.GetEnv("WORKER_HEALTH_PORT", "9999"))

	return nil
}

func startHealthCheckServer(port string) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "library-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := router.Run(":" + port); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
