package services

import (
	"math"
	"time"

	"project/backend/models"

	"gorm.io/gorm"
)

// DeletedPlaceholder is substituted for the title of a problem or topic
// that was removed underneath an existing progress record. Orphaned
// rows stay in the aggregation so completion totals keep matching the
// raw progress counts.
const DeletedPlaceholder = "(deleted)"

type CompletionStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Attempted  int64 `json:"attempted"`
	Percentage int   `json:"percentage"`
}

type TopicRollup struct {
	TopicID    uint   `json:"topicId"`
	TopicName  string `json:"topicName"`
	TopicSlug  string `json:"topicSlug"`
	Total      int64  `json:"total"`
	Completed  int64  `json:"completed"`
	Attempted  int64  `json:"attempted"`
	Percentage int    `json:"percentage"`
}

type ActivityEntry struct {
	ProblemTitle string    `json:"problemTitle"`
	Topic        string    `json:"topic"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	TimeSpent    int       `json:"timeSpent"`
}

type UserProgressSummary struct {
	CompletionStats CompletionStats `json:"completionStats"`
	TopicProgress   []TopicRollup   `json:"topicProgress"`
	RecentActivity  []ActivityEntry `json:"recentActivity"`
}

type ProgressAggregator struct {
	DB *gorm.DB
}

func NewProgressAggregator(db *gorm.DB) *ProgressAggregator {
	return &ProgressAggregator{DB: db}
}

// Aggregate produces the full per-user progress view in one pass:
// completion stats, per-topic rollups and the most recent activity.
// Deterministic and idempotent against an unchanged progress table.
func (a *ProgressAggregator) Aggregate(userID uint, recentLimit int) (*UserProgressSummary, error) {
	stats, err := a.CompletionStats(userID)
	if err != nil {
		return nil, err
	}

	rollups, err := a.TopicRollups(userID)
	if err != nil {
		return nil, err
	}

	recent, err := a.RecentActivity(userID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &UserProgressSummary{
		CompletionStats: stats,
		TopicProgress:   rollups,
		RecentActivity:  recent,
	}, nil
}

// CompletionStats counts the user's progress rows by status. Total is
// the count of rows the user has, not the size of the problem catalog:
// a user with no interactions has total 0 and percentage 0.
func (a *ProgressAggregator) CompletionStats(userID uint) (CompletionStats, error) {
	var stats CompletionStats

	base := a.DB.Model(&models.Progress{}).Where("user_id = ?", userID)
	if err := base.Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := a.DB.Model(&models.Progress{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := a.DB.Model(&models.Progress{}).
		Where("user_id = ? AND status = ?", userID, models.StatusAttempted).
		Count(&stats.Attempted).Error; err != nil {
		return stats, err
	}

	stats.Percentage = percentage(stats.Completed, stats.Total)
	return stats, nil
}

// TopicRollups groups the user's progress rows by topic. Only topics
// the user has at least one progress record in appear; untouched
// topics are absent, not present with zeros.
func (a *ProgressAggregator) TopicRollups(userID uint) ([]TopicRollup, error) {
	var rollups []TopicRollup

	err := a.DB.Raw(`
		SELECT
			COALESCE(t.id, 0) AS topic_id,
			COALESCE(t.title, ?) AS topic_name,
			COALESCE(t.slug, '') AS topic_slug,
			COUNT(pr.id) AS total,
			SUM(CASE WHEN pr.status = ? THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN pr.status = ? THEN 1 ELSE 0 END) AS attempted
		FROM progresses pr
		LEFT JOIN problems p ON p.id = pr.problem_id AND p.deleted_at IS NULL
		LEFT JOIN topics t ON t.id = p.topic_id AND t.deleted_at IS NULL
		WHERE pr.user_id = ? AND pr.deleted_at IS NULL
		GROUP BY t.id, t.title, t.slug
		ORDER BY topic_name
	`, DeletedPlaceholder, models.StatusCompleted, models.StatusAttempted, userID).
		Scan(&rollups).Error
	if err != nil {
		return nil, err
	}

	for i := range rollups {
		rollups[i].Percentage = percentage(rollups[i].Completed, rollups[i].Total)
	}
	return rollups, nil
}

// RecentActivity returns the user's most recently updated progress
// rows, newest first.
func (a *ProgressAggregator) RecentActivity(userID uint, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []ActivityEntry
	err := a.DB.Raw(`
		SELECT
			COALESCE(p.title, ?) AS problem_title,
			COALESCE(t.title, ?) AS topic,
			pr.status AS status,
			pr.updated_at AS date,
			pr.time_spent AS time_spent
		FROM progresses pr
		LEFT JOIN problems p ON p.id = pr.problem_id AND p.deleted_at IS NULL
		LEFT JOIN topics t ON t.id = p.topic_id AND t.deleted_at IS NULL
		WHERE pr.user_id = ? AND pr.deleted_at IS NULL
		ORDER BY pr.updated_at DESC
		LIMIT ?
	`, DeletedPlaceholder, DeletedPlaceholder, userID, limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func percentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
