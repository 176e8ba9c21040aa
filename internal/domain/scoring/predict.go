package scoring

import (
	"fmt"

	"github.com/okian/k12lms/internal/domain/model"
)

const (
	// NoHistoryScore is predicted for students without any scores.
	NoHistoryScore = 75
	// NoHistoryExplanation accompanies NoHistoryScore.
	NoHistoryExplanation = "No historical data available"

	trendWindow = 3
)

// Trend describes how the most recent scores compare with earlier ones.
type Trend string

// Trends.
const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Prediction is the outcome of Predict.
type Prediction struct {
	Score       float64
	Explanation string
	Trend       Trend
	HasHistory  bool
}

func predictionAdjustment(d model.Difficulty) float64 {
	switch d {
	case model.DifficultyEasy:
		return 5
	case model.DifficultyMedium:
		return 0
	case model.DifficultyHard:
		return -5
	default:
		return 0
	}
}

// Predict estimates a student's score from the mean of every historical score
// shifted by difficulty. The estimate is not clamped.
func Predict(studentID string, difficulty model.Difficulty, book model.PerformanceBook) Prediction {
	all := book.Lookup(studentID).AllScores()
	if len(all) == 0 {
		return Prediction{
			Score:       NoHistoryScore,
			Explanation: NoHistoryExplanation,
			Trend:       TrendStable,
		}
	}

	avg := mean(all)
	predicted := avg + predictionAdjustment(difficulty)
	trend := trendOf(all, avg)

	return Prediction{
		Score:       predicted,
		Explanation: fmt.Sprintf("Predicted score: %.1f%% (Performance trend: %s)", predicted, trend),
		Trend:       trend,
		HasHistory:  true,
	}
}

// trendOf compares the mean of the last three scores with the mean of the
// rest. With exactly three scores the overall average stands in for "the rest".
func trendOf(all []float64, avg float64) Trend {
	if len(all) < trendWindow {
		return TrendStable
	}
	recent := mean(all[len(all)-trendWindow:])
	older := avg
	if len(all) > trendWindow {
		older = mean(all[:len(all)-trendWindow])
	}
	switch {
	case recent > older:
		return TrendImproving
	case recent < older:
		return TrendDeclining
	default:
		return TrendStable
	}
}
