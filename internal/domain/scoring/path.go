package scoring

import "github.com/okian/k12lms/internal/domain/model"

// Priority ranks a recommendation.
type Priority string

// Priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// RecommendationType categorises a recommendation.
type RecommendationType string

// Recommendation types.
const (
	TypePractice   RecommendationType = "Practice"
	TypeResource   RecommendationType = "Resource"
	TypeEnrichment RecommendationType = "Enrichment"
	TypeSocial     RecommendationType = "Social"
)

// Recommendation is one step on a learning path.
type Recommendation struct {
	Type        RecommendationType
	Title       string
	Description string
	Priority    Priority
}

var (
	mathFoundations = Recommendation{TypePractice, "Math Foundations Workshop", "Extra practice on fractions and decimals", PriorityHigh}
	mathVideos      = Recommendation{TypeResource, "Khan Academy Math Videos", "Visual learning for mathematical concepts", PriorityMedium}
	writingLab      = Recommendation{TypePractice, "Writing Skills Lab", "Improve essay structure and grammar", PriorityHigh}
	mathChallenge   = Recommendation{TypeEnrichment, "Advanced Math Challenge", "Algebra preview and problem-solving", PriorityMedium}
	scienceFair     = Recommendation{TypeEnrichment, "Science Fair Project", "Apply scientific method to real research", PriorityMedium}
	studyGroup      = Recommendation{TypeSocial, "Study Group", "Collaborate with peers on challenging topics", PriorityLow}
)

// RecommendPath builds a learning path from the student's weakness and
// strength tags only; score history is ignored. Weakness entries come first,
// then strength entries, and the study group always closes the list.
func RecommendPath(studentID string, book model.PerformanceBook) []Recommendation {
	rec := book.Lookup(studentID)
	var strength, weakness string
	if rec != nil {
		strength, weakness = rec.Strength, rec.Weakness
	}

	path := make([]Recommendation, 0, 4)
	switch weakness {
	case "math":
		path = append(path, mathFoundations, mathVideos)
	case "writing":
		path = append(path, writingLab)
	}
	switch strength {
	case "math":
		path = append(path, mathChallenge)
	case "science":
		path = append(path, scienceFair)
	}
	return append(path, studyGroup)
}
