package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusAttempted = "attempted"
	StatusCompleted = "completed"
	StatusRevisit   = "revisit"
)

// Progress is the fact table: at most one row per (user, problem) pair,
// enforced by the composite unique index. Re-attempting a problem
// mutates the existing row and bumps Attempts.
type Progress struct {
	gorm.Model
	UserID          uint       `gorm:"uniqueIndex:idx_user_problem;not null" json:"userId"`
	ProblemID       uint       `gorm:"uniqueIndex:idx_user_problem;not null" json:"problemId"`
	Status          string     `gorm:"default:pending" json:"status"` // pending, attempted, completed, revisit
	TimeSpent       int        `gorm:"default:0" json:"timeSpent"`    // cumulative minutes
	Attempts        int        `gorm:"default:0" json:"attempts"`
	LastAttemptDate time.Time  `json:"lastAttemptDate"`
	CompletedDate   *time.Time `json:"completedDate"` // set once, on first transition into completed
	Confidence      int        `gorm:"default:0" json:"confidence"` // 1-5 self rating
	IsBookmarked    bool       `gorm:"default:false" json:"isBookmarked"`
	Notes           string     `json:"notes"`
	Code            string     `gorm:"type:text" json:"code"`
	Language        string     `json:"language"`
}
