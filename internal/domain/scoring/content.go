package scoring

import (
	"slices"
	"strings"

	"github.com/okian/k12lms/internal/domain/model"
)

// Level selects a tier of study material.
type Level string

// Material levels. LevelMedium is what a student without scores gets; no
// bucket defines it, so lookups fall back to LevelIntermediate.
const (
	LevelFoundational Level = "foundational"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelMedium       Level = "medium"

	advancedCutoff     = 90
	intermediateCutoff = 75
)

type contentBucket struct {
	name   string
	levels map[Level][]string
}

// contentLibrary is searched in order; the first bucket whose name occurs in
// the normalised subject wins.
var contentLibrary = []contentBucket{
	{name: "mathematics", levels: map[Level][]string{
		LevelFoundational: {"Fractions Basics", "Introduction to Decimals", "Number Line Practice"},
		LevelIntermediate: {"Algebraic Expressions", "Geometry Foundations", "Data Analysis"},
		LevelAdvanced:     {"Pre-Algebra Concepts", "Advanced Problem Solving", "Mathematical Proofs"},
	}},
	{name: "science", levels: map[Level][]string{
		LevelFoundational: {"Scientific Method", "Basic Chemistry", "Simple Machines"},
		LevelIntermediate: {"Ecosystems Study", "Physics Principles", "Cell Biology"},
		LevelAdvanced:     {"Advanced Experiments", "Research Methods", "Environmental Science"},
	}},
	{name: "english", levels: map[Level][]string{
		LevelFoundational: {"Grammar Essentials", "Reading Comprehension", "Paragraph Structure"},
		LevelIntermediate: {"Literary Analysis", "Essay Writing", "Vocabulary Building"},
		LevelAdvanced:     {"Critical Thinking", "Research Papers", "Creative Writing"},
	}},
	{name: "history", levels: map[Level][]string{
		LevelFoundational: {"Timeline Skills", "Map Reading", "Historical Figures"},
		LevelIntermediate: {"Cause and Effect", "Primary Sources", "Cultural Studies"},
		LevelAdvanced:     {"Historical Analysis", "Debate Topics", "Research Projects"},
	}},
}

var fallbackMaterials = []string{"General Study Materials", "Practice Exercises", "Review Sessions"}

// subjectKeyStrips are removed from the lowercased subject one after another,
// so "gra de" loses its space first and then "grade".
var subjectKeyStrips = []string{" ", "grade", "7", "8"}

// LevelFor picks the material level from a subject score history.
func LevelFor(scores []float64) Level {
	if len(scores) == 0 {
		return LevelMedium
	}
	switch avg := mean(scores); {
	case avg >= advancedCutoff:
		return LevelAdvanced
	case avg >= intermediateCutoff:
		return LevelIntermediate
	default:
		return LevelFoundational
	}
}

// SubjectKey normalises a course subject for bucket matching.
func SubjectKey(subject string) string {
	key := strings.ToLower(subject)
	for _, strip := range subjectKeyStrips {
		key = strings.ReplaceAll(key, strip, "")
	}
	return key
}

// RecommendContent lists three study materials for subject. The level comes
// from the student's scores under the exact lowercased subject key; the
// bucket is chosen by substring containment on SubjectKey(subject).
func RecommendContent(studentID, subject string, book model.PerformanceBook) []string {
	level := LevelFor(book.Lookup(studentID).Scores(strings.ToLower(subject)))

	key := SubjectKey(subject)
	for _, bucket := range contentLibrary {
		if !strings.Contains(key, bucket.name) {
			continue
		}
		materials, ok := bucket.levels[level]
		if !ok {
			materials = bucket.levels[LevelIntermediate]
		}
		return slices.Clone(materials)
	}
	return slices.Clone(fallbackMaterials)
}
