package main

import (
	"context"
	"log"
	"time"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/routes"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalw("Error initializing database", "error", err)
	}

	// Optional redis for the leaderboard cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnw("Redis unavailable, leaderboard cache disabled", "error", err)
			rdb = nil
		}
		cancel()
	}

	// Daily platform snapshot job
	scheduler := services.NewScheduler(services.NewAnalyticsService(db), logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, rdb, logger, cfg)

	// Start server
	logger.Fatalw("server stopped", "error", app.Listen(":"+cfg.ServerPort))
}
