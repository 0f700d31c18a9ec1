package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/sharpfade/booking-api/internal/config"
	dbpkg "github.com/sharpfade/booking-api/internal/db"
	"github.com/sharpfade/booking-api/internal/logging"
	"github.com/sharpfade/booking-api/internal/metrics"
	"github.com/sharpfade/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	metrics.Register()

	db := dbpkg.NewDB(cfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redisClient, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
