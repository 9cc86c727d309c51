package main

import (
	"pompa-press/internal/app"
	"pompa-press/pkg/cache"
	"pompa-press/pkg/config"
	"pompa-press/pkg/database"
	"pompa-press/pkg/logger"
	"pompa-press/pkg/queue"
)

// @title           Pompa Press API
// @version         1.0
// @description     Content publication backend for Revista Pompa: editorial content in five categories, media hosting, visit analytics and newsletter fan-out.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// The service runs without a broker; publish events then fan out in-process.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, newsletter dispatch falls back to in-process: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, queueClient, redisClient)
}
