package services

import (
	"time"

	"project/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlatformMetrics struct {
	TotalUsers     int64   `json:"totalUsers"`
	ActiveUsers    int64   `json:"activeUsers"`
	NewUsers       int64   `json:"newUsers"`
	TotalTopics    int64   `json:"totalTopics"`
	TotalProblems  int64   `json:"totalProblems"`
	TotalProgress  int64   `json:"totalProgress"`
	TotalCompleted int64   `json:"totalCompleted"`
	AvgCompletion  float64 `json:"avgCompletion"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int64  `json:"count"`
}

type TopicCompletion struct {
	TopicID   uint   `json:"topicId"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
}

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// PlatformMetrics collects the headline numbers for the admin
// dashboard. Same grouping pattern as the per-user aggregation, scoped
// to all users.
func (s *AnalyticsService) PlatformMetrics() (PlatformMetrics, error) {
	var m PlatformMetrics

	if err := s.DB.Model(&models.User{}).Count(&m.TotalUsers).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("stats_last_active_date > ?", time.Now().AddDate(0, 0, -30)).
		Count(&m.ActiveUsers).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
		Count(&m.NewUsers).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.Topic{}).Count(&m.TotalTopics).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.Problem{}).Count(&m.TotalProblems).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.Progress{}).Count(&m.TotalProgress).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.Progress{}).
		Where("status = ?", models.StatusCompleted).
		Count(&m.TotalCompleted).Error; err != nil {
		return m, err
	}
	if m.TotalProgress > 0 {
		m.AvgCompletion = float64(m.TotalCompleted) / float64(m.TotalProgress) * 100
	}
	return m, nil
}

// StatusBreakdown groups all progress rows by status.
func (s *AnalyticsService) StatusBreakdown() ([]StatusCount, error) {
	var out []StatusCount
	err := s.DB.Model(&models.Progress{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

// DifficultyBreakdown groups completed progress rows by problem
// difficulty.
func (s *AnalyticsService) DifficultyBreakdown() ([]DifficultyCount, error) {
	var out []DifficultyCount
	err := s.DB.Model(&models.Progress{}).
		Select("problems.difficulty AS difficulty, COUNT(*) AS count").
		Joins("JOIN problems ON problems.id = progresses.problem_id AND problems.deleted_at IS NULL").
		Where("progresses.status = ?", models.StatusCompleted).
		Group("problems.difficulty").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

// TopicBreakdown reports per-topic totals and completions across all
// users.
func (s *AnalyticsService) TopicBreakdown() ([]TopicCompletion, error) {
	var out []TopicCompletion
	err := s.DB.Raw(`
		SELECT
			t.id AS topic_id,
			t.title AS title,
			t.slug AS slug,
			COUNT(pr.id) AS total,
			SUM(CASE WHEN pr.status = ? THEN 1 ELSE 0 END) AS completed
		FROM topics t
		LEFT JOIN problems p ON p.topic_id = t.id AND p.deleted_at IS NULL
		LEFT JOIN progresses pr ON pr.problem_id = p.id AND pr.deleted_at IS NULL
		WHERE t.deleted_at IS NULL
		GROUP BY t.id, t.title, t.slug
		ORDER BY total DESC
	`, models.StatusCompleted).Scan(&out).Error
	return out, err
}

// SnapshotPlatform persists today's platform metrics, overwriting a
// snapshot already taken today.
func (s *AnalyticsService) SnapshotPlatform() error {
	m, err := s.PlatformMetrics()
	if err != nil {
		return err
	}

	snapshot := models.PlatformSnapshot{
		TotalUsers:     m.TotalUsers,
		ActiveUsers:    m.ActiveUsers,
		TotalProblems:  m.TotalProblems,
		TotalCompleted: m.TotalCompleted,
		AvgCompletion:  m.AvgCompletion,
		Date:           time.Now().Format("2006-01-02"),
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_users", "active_users", "total_problems",
			"total_completed", "avg_completion", "updated_at",
		}),
	}).Create(&snapshot).Error
}
