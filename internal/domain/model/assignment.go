package model

import "time"

// Difficulty scales grading and prediction. Values outside the known set
// are representable; consumers treat them as neutral.
type Difficulty string

// Known difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Known reports whether d is one of easy, medium or hard.
func (d Difficulty) Known() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Assignment is a piece of work handed out in a course.
type Assignment struct {
	ID          string `validate:"required"`
	CourseID    string `validate:"required"`
	Title       string `validate:"required"`
	Description string
	DueDate     time.Time  `validate:"required"`
	Points      int        `validate:"gte=0"`
	Difficulty  Difficulty `validate:"required,oneof=easy medium hard"`
}
