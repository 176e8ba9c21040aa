// Package roster loads the people, courses and history an LMS process starts
// with, either from YAML or from the built-in demo data.
package roster

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Roster is the YAML shape of a school's starting state. Relative times are
// resolved against the moment the roster is seeded.
type Roster struct {
	Users       []User        `yaml:"users"`
	Courses     []Course      `yaml:"courses"`
	Assignments []Assignment  `yaml:"assignments"`
	Submissions []Submission  `yaml:"submissions,omitempty"`
	Performance []Performance `yaml:"performance,omitempty"`
}

// User is a teacher or student.
type User struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	GradeLevel int    `yaml:"grade_level,omitempty"`
}

// Course lists its teacher and enrolled students by ID.
type Course struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Teacher    string   `yaml:"teacher"`
	GradeLevel int      `yaml:"grade_level"`
	Subject    string   `yaml:"subject"`
	Students   []string `yaml:"students,omitempty"`
}

// Assignment is due DueIn after seeding. Assignments join their course in
// file order.
type Assignment struct {
	ID          string        `yaml:"id"`
	Course      string        `yaml:"course"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description,omitempty"`
	DueIn       time.Duration `yaml:"due_in"`
	Points      int           `yaml:"points"`
	Difficulty  string        `yaml:"difficulty"`
}

// Submission was handed in SubmittedAgo before seeding, optionally graded.
type Submission struct {
	ID           string        `yaml:"id,omitempty"`
	Student      string        `yaml:"student"`
	Assignment   string        `yaml:"assignment"`
	Content      string        `yaml:"content"`
	SubmittedAgo time.Duration `yaml:"submitted_ago"`
	Grade        *int          `yaml:"grade,omitempty"`
	Feedback     string        `yaml:"feedback,omitempty"`
}

// Performance is a student's score history. Subjects keep file order.
type Performance struct {
	Student  string          `yaml:"student"`
	Strength string          `yaml:"strength,omitempty"`
	Weakness string          `yaml:"weakness,omitempty"`
	Scores   []SubjectScores `yaml:"scores"`
}

// SubjectScores holds scores for one lowercase subject key, oldest first.
type SubjectScores struct {
	Subject string    `yaml:"subject"`
	Values  []float64 `yaml:"values,flow"`
}

// Load reads a roster from a YAML file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrReadRoster, path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a roster from YAML.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrReadRoster, err)
	}
	return &r, nil
}

// Write encodes the roster as YAML.
func (r *Roster) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}
