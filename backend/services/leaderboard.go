package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"project/backend/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 60 * time.Second

// leaderboardColumns whitelists sortable stat fields against their
// actual column names.
var leaderboardColumns = map[string]string{
	"totalSolved":    "stats_total_solved",
	"streak":         "stats_streak",
	"longestStreak":  "stats_longest_streak",
	"totalTimeSpent": "stats_total_time_spent",
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"userId"`
	Username      string `json:"username"`
	TotalSolved   int    `json:"totalSolved"`
	EasySolved    int    `json:"easySolved"`
	MediumSolved  int    `json:"mediumSolved"`
	HardSolved    int    `json:"hardSolved"`
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longestStreak"`
}

type leaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int64              `json:"total"`
}

type LeaderboardService struct {
	DB    *gorm.DB
	Redis *redis.Client // nil disables caching
	Log   *zap.SugaredLogger
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *LeaderboardService {
	return &LeaderboardService{DB: db, Redis: rdb, Log: log}
}

// Top returns one page of users ranked by the given stat field. Reads
// go through a best-effort redis cache; a missing or unreachable redis
// falls through to the database.
func (s *LeaderboardService) Top(ctx context.Context, sortBy string, page, pageSize int) ([]LeaderboardEntry, int64, error) {
	column, ok := leaderboardColumns[sortBy]
	if !ok {
		column = leaderboardColumns["totalSolved"]
		sortBy = "totalSolved"
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	key := fmt.Sprintf("leaderboard:%s:%d:%d", sortBy, page, pageSize)
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var cached leaderboardPage
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached.Entries, cached.Total, nil
			}
		}
	}

	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := s.DB.
		Order(column + " DESC, username ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:          (page-1)*pageSize + i + 1,
			UserID:        u.ID,
			Username:      u.Username,
			TotalSolved:   u.Stats.TotalSolved,
			EasySolved:    u.Stats.EasySolved,
			MediumSolved:  u.Stats.MediumSolved,
			HardSolved:    u.Stats.HardSolved,
			Streak:        u.Stats.Streak,
			LongestStreak: u.Stats.LongestStreak,
		})
	}

	if s.Redis != nil {
		raw, err := json.Marshal(leaderboardPage{Entries: entries, Total: total})
		if err == nil {
			if err := s.Redis.Set(ctx, key, raw, leaderboardCacheTTL).Err(); err != nil && s.Log != nil {
				s.Log.Debugw("leaderboard cache write failed", "error", err)
			}
		}
	}

	return entries, total, nil
}
