package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/refresh", authController.Refresh)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Delete("/api/user/profile", authMiddleware, userController.DeleteAccount)

	// Public curriculum reads
	topicsController := controllers.NewTopicsController(db, cfg)
	app.Get("/api/topics", topicsController.GetTopics)
	app.Get("/api/topics/:slug", topicsController.GetTopicBySlug)

	problemsController := controllers.NewProblemsController(db, cfg)
	app.Get("/api/problems/:slug", problemsController.GetProblem)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/user", progressController.GetUserProgress)
	progress.Put("/problem/:problemId", progressController.UpdateProblemProgress)
	progress.Get("/streak", progressController.GetStreak)
	progress.Get("/topic/:slug/detailed", progressController.GetTopicDetailed)
	progress.Get("/bookmarks", progressController.GetBookmarks)

	// Public leaderboard
	leaderboardController := controllers.NewLeaderboardController(db, rdb, log, cfg)
	app.Get("/api/leaderboard", leaderboardController.GetLeaderboard)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", adminMiddleware)
	admin.Get("/dashboard", adminController.GetDashboard)
	admin.Get("/analytics", adminController.GetAnalytics)
	admin.Get("/analytics/export", adminController.ExportAnalytics)

	admin.Post("/topics", topicsController.CreateTopic)
	admin.Put("/topics/:id", topicsController.UpdateTopic)
	admin.Delete("/topics/:id", topicsController.DeleteTopic)

	admin.Post("/problems", problemsController.CreateProblem)
	admin.Put("/problems/:id", problemsController.UpdateProblem)
	admin.Delete("/problems/:id", problemsController.DeleteProblem)
}
