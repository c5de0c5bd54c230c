package models

import "gorm.io/gorm"

type Topic struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	Slug          string `gorm:"unique;not null" json:"slug"`
	Description   string `json:"description"`
	Difficulty    string `gorm:"default:beginner" json:"difficulty"` // beginner, intermediate, advanced
	SequenceOrder int    `json:"sequenceOrder"`
	TotalProblems int    `gorm:"default:0" json:"totalProblems"` // cached counter, maintained on problem create/delete
	Problems      []Problem `json:"problems,omitempty"`
}
