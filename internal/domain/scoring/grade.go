package scoring

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/okian/k12lms/internal/domain/model"
)

const (
	maxScore          = 100
	charsPerPoint     = 3
	currentWeight     = 0.9
	historicalWeight  = 0.1
	outstandingCutoff = 90
	goodCutoff        = 80
	satisfactoryCut   = 70
)

// Band is the feedback tier a grade falls into.
type Band string

// Feedback bands, best first.
const (
	BandOutstanding      Band = "outstanding"
	BandGood             Band = "good"
	BandSatisfactory     Band = "satisfactory"
	BandNeedsImprovement Band = "needs_improvement"
)

// GradeResult is the outcome of AutoGrade.
type GradeResult struct {
	Score       float64
	Band        Band
	Feedback    string
	Suggestions []string
}

type bandText struct {
	feedback    string
	suggestions []string
}

var bandTexts = map[Band]bandText{
	BandOutstanding: {
		feedback:    "Outstanding work! Demonstrates deep understanding.",
		suggestions: []string{"Consider exploring advanced applications of these concepts."},
	},
	BandGood: {
		feedback: "Good work! Shows solid grasp of the material.",
		suggestions: []string{
			"Review key concepts again to strengthen understanding.",
			"Add more examples to support your points.",
		},
	},
	BandSatisfactory: {
		feedback: "Satisfactory effort. Room for improvement.",
		suggestions: []string{
			"Focus on completing all parts of the assignment.",
			"Seek help during office hours for clarification.",
		},
	},
	BandNeedsImprovement: {
		feedback: "Needs significant improvement.",
		suggestions: []string{
			"Schedule one-on-one tutoring session.",
			"Review foundational concepts before attempting similar work.",
		},
	},
}

// gradeMultiplier scales the length-based quality score.
func gradeMultiplier(d model.Difficulty) float64 {
	switch d {
	case model.DifficultyEasy:
		return 1.1
	case model.DifficultyMedium:
		return 1.0
	case model.DifficultyHard:
		return 0.95
	default:
		return 1.0
	}
}

// AutoGrade scores a submission by its length: one point per three
// characters, capped at 100, scaled by difficulty. When perf holds any
// scores the result is blended 90/10 with the student's overall average.
// The final score is clamped to [0, 100].
func AutoGrade(content string, difficulty model.Difficulty, perf *model.PerformanceRecord) GradeResult {
	quality := math.Min(maxScore, float64(utf8.RuneCountInString(content))/charsPerPoint)
	score := quality * gradeMultiplier(difficulty)

	if history := perf.AllScores(); len(history) > 0 {
		score = score*currentWeight + mean(history)*historicalWeight
	}
	score = math.Max(0, math.Min(maxScore, score))

	band := BandFor(score)
	text := bandTexts[band]
	return GradeResult{
		Score:       score,
		Band:        band,
		Feedback:    text.feedback,
		Suggestions: slices.Clone(text.suggestions),
	}
}

// BandFor maps a score to its feedback band.
func BandFor(score float64) Band {
	switch {
	case score >= outstandingCutoff:
		return BandOutstanding
	case score >= goodCutoff:
		return BandGood
	case score >= satisfactoryCut:
		return BandSatisfactory
	default:
		return BandNeedsImprovement
	}
}
