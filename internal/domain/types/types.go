// Package types contains the read models the dashboards render.
package types

import (
	"time"

	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/scoring"
)

// Directory lists everyone who can log in, teachers first.
type Directory struct {
	Teachers []model.User
	Students []model.User
}

// Stats counts what the process holds, for monitoring.
type Stats struct {
	Teachers        int
	Students        int
	Courses         int
	Assignments     int
	Submissions     int
	Graded          int
	Pending         int
	TrackedStudents int
}

// CourseSummary is a teacher's view of one course.
type CourseSummary struct {
	CourseID        string
	Name            string
	Subject         string
	GradeLevel      int
	StudentCount    int
	AssignmentCount int
}

// PendingSubmission is an ungraded submission awaiting a teacher.
type PendingSubmission struct {
	Assignment  model.Assignment
	Submission  model.Submission
	StudentName string
}

// GradedSubmission is the outcome of automatic grading after write-back.
type GradedSubmission struct {
	Assignment  model.Assignment
	Submission  model.Submission
	StudentName string
	Result      scoring.GradeResult
}

// NewAssignment is the input for creating an assignment.
type NewAssignment struct {
	CourseID    string `validate:"required"`
	Title       string `validate:"required"`
	Description string
	Points      int              `validate:"gte=0"`
	Difficulty  model.Difficulty `validate:"required,oneof=easy medium hard"`
	DueInDays   int              `validate:"gte=0"`
}

// Analytics summarises graded work across one or more courses.
type Analytics struct {
	Label        string
	Count        int
	Average      float64
	Highest      int
	Lowest       int
	Distribution Distribution
}

// Empty reports whether no graded submissions were found.
func (a Analytics) Empty() bool { return a.Count == 0 }

// AssignmentStatus is where a student stands on one assignment.
type AssignmentStatus string

// Assignment statuses, as shown on the student dashboard.
const (
	StatusGraded    AssignmentStatus = "graded"
	StatusSubmitted AssignmentStatus = "submitted"
	StatusOverdue   AssignmentStatus = "overdue"
	StatusDueSoon   AssignmentStatus = "due_soon"
	StatusOpen      AssignmentStatus = "open"
)

// AssignmentView pairs an assignment with the student's progress on it.
type AssignmentView struct {
	Assignment model.Assignment
	Status     AssignmentStatus
	DaysLeft   int
	Submission *model.Submission
}

// StudentCourse is an enrolled course with its assignments.
type StudentCourse struct {
	Course      model.Course
	Assignments []AssignmentView
}

// CourseAverage is a per-course grade average.
type CourseAverage struct {
	CourseName string
	Average    float64
	Count      int
}

// Progress is a student's graded history.
type Progress struct {
	Scores  []int
	Average float64
	Courses []CourseAverage
}

// CourseMaterials lists recommended materials for one enrolled course.
type CourseMaterials struct {
	CourseName string
	Subject    string
	Materials  []string
}

// Recommendations bundles the learning path and per-course materials.
type Recommendations struct {
	Path    []scoring.Recommendation
	Content []CourseMaterials
}

// UpcomingAssignment is an unsubmitted assignment with a score prediction.
type UpcomingAssignment struct {
	Assignment model.Assignment
	CourseName string
	DueDate    time.Time
	DaysLeft   int
	Prediction scoring.Prediction
}

// Overdue reports whether the due date has passed.
func (u UpcomingAssignment) Overdue() bool { return u.DaysLeft < 0 }
