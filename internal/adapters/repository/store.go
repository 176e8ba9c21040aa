// Package repository defines the LMS store interface and its in-memory
// implementation.
package repository

import (
	"context"

	"github.com/okian/k12lms/internal/domain/model"
)

// GradeUpdate is the write-back applied when a submission is graded.
type GradeUpdate struct {
	Grade    int
	AIScore  *int // nil for grades that did not come from the assistant
	Feedback string
}

// Store provides read/write access to the LMS collections. Values are
// copied on the way in and out; callers never alias stored state.
type Store interface {
	// PutUser adds a user. Returns ErrDuplicate if the ID is taken.
	PutUser(ctx context.Context, u model.User) error
	// User returns ErrNotFound for unknown IDs.
	User(ctx context.Context, id string) (model.User, error)
	// Users lists users in insertion order.
	Users(ctx context.Context) []model.User

	PutCourse(ctx context.Context, c model.Course) error
	Course(ctx context.Context, id string) (model.Course, error)
	Courses(ctx context.Context) []model.Course
	// Enroll appends studentID to the course roster.
	Enroll(ctx context.Context, courseID, studentID string) error

	// AddAssignment stores a and appends it to its course. An empty ID is
	// replaced with "a{n+1}" where n is the current assignment count.
	AddAssignment(ctx context.Context, a model.Assignment) (model.Assignment, error)
	Assignment(ctx context.Context, id string) (model.Assignment, error)
	Assignments(ctx context.Context) []model.Assignment

	// PutSubmission stores a new submission, generating its ID when empty.
	// Returns ErrDuplicate if the student already submitted the assignment.
	PutSubmission(ctx context.Context, s model.Submission) (model.Submission, error)
	Submission(ctx context.Context, key model.SubmissionKey) (model.Submission, error)
	// Submissions lists submissions in insertion order.
	Submissions(ctx context.Context) []model.Submission
	// RecordGrade writes a grade and feedback onto an existing submission.
	RecordGrade(ctx context.Context, key model.SubmissionKey, g GradeUpdate) (model.Submission, error)

	// Performance returns a copy of the student's record, or nil.
	Performance(ctx context.Context, studentID string) *model.PerformanceRecord
	// PerformanceBook returns a copy of every record.
	PerformanceBook(ctx context.Context) model.PerformanceBook
	SetPerformance(ctx context.Context, studentID string, rec *model.PerformanceRecord) error
	// AppendScore adds a score under subject, creating the record if needed.
	AppendScore(ctx context.Context, studentID, subject string, score float64) error
}
