package models

import "gorm.io/gorm"

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Problem is static curriculum content. Progress tracking never
// modifies a problem.
type Problem struct {
	gorm.Model
	TopicID       uint   `gorm:"index;not null" json:"topicId"`
	Title         string `gorm:"not null" json:"title"`
	Slug          string `gorm:"unique;not null" json:"slug"`
	Difficulty    string `gorm:"default:Medium" json:"difficulty"` // Easy, Medium, Hard
	Description   string `json:"description"`
	Hints         string `json:"hints"`
	ResourceLink  string `json:"resourceLink"`
	PracticeLink  string `json:"practiceLink"`
	SequenceOrder int    `json:"sequenceOrder"`
}
