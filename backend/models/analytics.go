package models

import "gorm.io/gorm"

// PlatformSnapshot is a daily platform-wide analytics row written by
// the scheduler.
type PlatformSnapshot struct {
	gorm.Model
	TotalUsers     int64   `json:"totalUsers"`
	ActiveUsers    int64   `json:"activeUsers"` // activity within the last 30 days
	TotalProblems  int64   `json:"totalProblems"`
	TotalCompleted int64   `json:"totalCompleted"`
	AvgCompletion  float64 `json:"avgCompletion"`
	Date           string  `gorm:"uniqueIndex" json:"date"` // YYYY-MM-DD
}
