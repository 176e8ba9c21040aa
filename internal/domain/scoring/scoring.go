// Package scoring implements the rule-based grading, prediction and
// recommendation heuristics used by the dashboards.
//
// Every function here is deterministic and reads its inputs only; nothing
// is cached between calls and no performance record is ever mutated, so the
// functions are safe for concurrent use without locking.
package scoring

import "github.com/okian/k12lms/internal/domain/model"

// Assistant is the engine contract consumed by the dashboard layer.
type Assistant interface {
	// AutoGrade scores submission content. perf may be nil.
	AutoGrade(content string, difficulty model.Difficulty, perf *model.PerformanceRecord) GradeResult
	// Predict estimates the student's score on an assignment of the given difficulty.
	Predict(studentID string, difficulty model.Difficulty, book model.PerformanceBook) Prediction
	// RecommendPath builds a learning path from the student's strength and weakness tags.
	RecommendPath(studentID string, book model.PerformanceBook) []Recommendation
	// RecommendContent lists study materials for a course subject.
	RecommendContent(studentID, subject string, book model.PerformanceBook) []string
}

// RuleBased implements Assistant with the package-level heuristics.
type RuleBased struct{}

// NewRuleBased returns the rule-based assistant.
func NewRuleBased() *RuleBased { return &RuleBased{} }

// AutoGrade implements Assistant.
func (RuleBased) AutoGrade(content string, difficulty model.Difficulty, perf *model.PerformanceRecord) GradeResult {
	return AutoGrade(content, difficulty, perf)
}

// Predict implements Assistant.
func (RuleBased) Predict(studentID string, difficulty model.Difficulty, book model.PerformanceBook) Prediction {
	return Predict(studentID, difficulty, book)
}

// RecommendPath implements Assistant.
func (RuleBased) RecommendPath(studentID string, book model.PerformanceBook) []Recommendation {
	return RecommendPath(studentID, book)
}

// RecommendContent implements Assistant.
func (RuleBased) RecommendContent(studentID, subject string, book model.PerformanceBook) []string {
	return RecommendContent(studentID, subject, book)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
