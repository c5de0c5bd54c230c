package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string     `gorm:"unique;not null" json:"username"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"default:user" json:"role"` // user, admin
	RefreshToken string     `json:"-"`
	Stats        UserStats  `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Progress     []Progress `json:"-"`
}

// UserStats is a denormalized snapshot derived from the user's progress
// records. It is a cache, not a source of truth: the stats writeback
// overwrites it in full after every progress mutation, and nothing else
// may write these fields.
type UserStats struct {
	TotalSolved    int        `gorm:"default:0" json:"totalSolved"`
	EasySolved     int        `gorm:"default:0" json:"easySolved"`
	MediumSolved   int        `gorm:"default:0" json:"mediumSolved"`
	HardSolved     int        `gorm:"default:0" json:"hardSolved"`
	Streak         int        `gorm:"default:0" json:"streak"`
	LongestStreak  int        `gorm:"default:0" json:"longestStreak"`
	TotalTimeSpent int        `gorm:"default:0" json:"totalTimeSpent"` // minutes
	LastActiveDate *time.Time `json:"lastActiveDate"`
}
