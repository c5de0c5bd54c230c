package controllers

import (
	"project/backend/config"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	Cfg     *config.Config
	Service *services.LeaderboardService
}

func NewLeaderboardController(db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{
		Cfg:     cfg,
		Service: services.NewLeaderboardService(db, rdb, log),
	}
}

// GetLeaderboard is a public read: users ranked by a selected stat
// field (?sort=totalSolved|streak|longestStreak|totalTimeSpent),
// paginated with ?page= and ?pageSize=.
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	sortBy := c.Query("sort", "totalSolved")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)

	entries, total, err := lc.Service.Top(c.Context(), sortBy, page, pageSize)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch leaderboard")
	}

	return utils.Paginate(c, entries, total, page, pageSize)
}
