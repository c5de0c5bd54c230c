package services

import (
	"time"

	"project/backend/models"

	"gorm.io/gorm"
)

// currentStreakWindowDays bounds the activity scan used for the
// current-streak estimate. Longest streak always scans full history.
const currentStreakWindowDays = 30

type StatsWriter struct {
	DB *gorm.DB
}

func NewStatsWriter(db *gorm.DB) *StatsWriter {
	return &StatsWriter{DB: db}
}

// RecomputeUserStats rebuilds the denormalized User.Stats snapshot from
// the user's full progress history and overwrites it. This is an eager
// full recompute, O(n) in the user's progress rows per call, chosen
// over incremental counters for the simpler correctness argument. The
// read-aggregate-write sequence runs in one transaction so concurrent
// writebacks for the same user cannot interleave.
func (w *StatsWriter) RecomputeUserStats(userID uint) error {
	return w.DB.Transaction(func(tx *gorm.DB) error {
		stats, err := computeStats(tx, userID, time.Now())
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"stats_total_solved":     stats.TotalSolved,
				"stats_easy_solved":      stats.EasySolved,
				"stats_medium_solved":    stats.MediumSolved,
				"stats_hard_solved":      stats.HardSolved,
				"stats_streak":           stats.Streak,
				"stats_longest_streak":   stats.LongestStreak,
				"stats_total_time_spent": stats.TotalTimeSpent,
				"stats_last_active_date": stats.LastActiveDate,
			}).Error
	})
}

func computeStats(tx *gorm.DB, userID uint, now time.Time) (models.UserStats, error) {
	var stats models.UserStats

	// Solved counts bucketed by problem difficulty.
	var buckets []struct {
		Difficulty string
		Count      int
	}
	err := tx.Model(&models.Progress{}).
		Select("problems.difficulty AS difficulty, COUNT(*) AS count").
		Joins("JOIN problems ON problems.id = progresses.problem_id AND problems.deleted_at IS NULL").
		Where("progresses.user_id = ? AND progresses.status = ?", userID, models.StatusCompleted).
		Group("problems.difficulty").
		Scan(&buckets).Error
	if err != nil {
		return stats, err
	}
	for _, b := range buckets {
		switch b.Difficulty {
		case models.DifficultyEasy:
			stats.EasySolved = b.Count
		case models.DifficultyMedium:
			stats.MediumSolved = b.Count
		case models.DifficultyHard:
			stats.HardSolved = b.Count
		}
	}

	// TotalSolved counts every completed row, orphans included, so the
	// completion invariant holds even when a problem was deleted.
	var totalSolved int64
	err = tx.Model(&models.Progress{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&totalSolved).Error
	if err != nil {
		return stats, err
	}
	stats.TotalSolved = int(totalSolved)

	var totalTime int64
	err = tx.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(time_spent), 0)").
		Scan(&totalTime).Error
	if err != nil {
		return stats, err
	}
	stats.TotalTimeSpent = int(totalTime)

	var history []time.Time
	err = tx.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Order("last_attempt_date DESC").
		Pluck("last_attempt_date", &history).Error
	if err != nil {
		return stats, err
	}

	stats.LongestStreak = ComputeStreaks(history, now).LongestStreak

	windowStart := now.AddDate(0, 0, -currentStreakWindowDays)
	var recent []time.Time
	for _, t := range history {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	stats.Streak = ComputeStreaks(recent, now).CurrentStreak

	stats.LastActiveDate = &now
	return stats, nil
}

// UserStreaks reads streaks fresh from the progress history rather
// than the denormalized snapshot.
func (w *StatsWriter) UserStreaks(userID uint, now time.Time) (StreakResult, error) {
	var history []time.Time
	err := w.DB.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Order("last_attempt_date DESC").
		Pluck("last_attempt_date", &history).Error
	if err != nil {
		return StreakResult{}, err
	}

	full := ComputeStreaks(history, now)

	windowStart := now.AddDate(0, 0, -currentStreakWindowDays)
	var recent []time.Time
	for _, t := range history {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	return StreakResult{
		CurrentStreak: ComputeStreaks(recent, now).CurrentStreak,
		LongestStreak: full.LongestStreak,
	}, nil
}
